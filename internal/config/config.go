package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	NATS        NATSConfig
	Log         LogConfig
	Platforms   PlatformsConfig
	Trend       TrendConfig
	Analyze     AnalyzeConfig
	AgeGroups   AgeGroupsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// NATSConfig holds NATS configuration. An empty URL disables the event
// bus entirely; snapshot publishing and the websocket relay degrade to
// no-ops.
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	File  string
}

// PlatformsConfig holds per-platform collaborator configuration
type PlatformsConfig struct {
	YouTubeAPIKey        string
	YouTubeRegion        string
	YouTubeRPS           float64
	InstagramAccessToken string
	SearchTrendsRPS      float64
}

// TrendConfig holds trend aggregation configuration
type TrendConfig struct {
	EventsTopic       string
	DefaultMaxResults int
}

// AnalyzeConfig holds timeframe-analysis defaults
type AnalyzeConfig struct {
	TimeframeDays       int
	ShortFormMaxSeconds int
	MaxPerChannel       int
	MaxPerKeyword       int
}

// AgeGroupsConfig holds age-group analysis configuration
type AgeGroupsConfig struct {
	ProfilesFile string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", ""),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Platforms: PlatformsConfig{
			YouTubeAPIKey:        getEnv("YOUTUBE_API_KEY", ""),
			YouTubeRegion:        getEnv("YOUTUBE_REGION", "KR"),
			YouTubeRPS:           getEnvAsFloat("YOUTUBE_RPS", 5.0),
			InstagramAccessToken: getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
			SearchTrendsRPS:      getEnvAsFloat("SEARCH_TRENDS_RPS", 1.0),
		},
		Trend: TrendConfig{
			EventsTopic:       getEnv("TREND_EVENTS_TOPIC", "trend.keywords"),
			DefaultMaxResults: getEnvAsInt("TREND_DEFAULT_MAX_RESULTS", 50),
		},
		Analyze: AnalyzeConfig{
			TimeframeDays:       getEnvAsInt("ANALYZE_TIMEFRAME_DAYS", 7),
			ShortFormMaxSeconds: getEnvAsInt("ANALYZE_SHORT_FORM_MAX_SECONDS", 180),
			MaxPerChannel:       getEnvAsInt("ANALYZE_MAX_PER_CHANNEL", 30),
			MaxPerKeyword:       getEnvAsInt("ANALYZE_MAX_PER_KEYWORD", 30),
		},
		AgeGroups: AgeGroupsConfig{
			ProfilesFile: getEnv("AGE_PROFILES_FILE", ""),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Platforms.YouTubeAPIKey == "" && config.Environment != "development" {
		return fmt.Errorf("YOUTUBE_API_KEY must be set in non-development environments")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
