package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"trendlens/internal/config"
	"trendlens/internal/domain/content"
	"trendlens/internal/domain/trend"
	"trendlens/internal/logger"
	"trendlens/internal/server"
	"trendlens/internal/service/agegroup"
	"trendlens/internal/service/aggregate"
	"trendlens/internal/service/platform"
	"trendlens/internal/service/timeframe"
)

func main() {
	// Load .env when present; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Connect the event bus when configured; without it snapshot
	// publishing and the websocket stream are disabled
	natsConn, err := initNATS(cfg.NATS, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to NATS")
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	// Initialize platform collaborators
	youtube := platform.NewYouTubeClient(platform.YouTubeConfig{
		APIKey:            cfg.Platforms.YouTubeAPIKey,
		Region:            cfg.Platforms.YouTubeRegion,
		RequestsPerSecond: cfg.Platforms.YouTubeRPS,
	}, appLog)
	tiktok := platform.NewTikTokClient(appLog)
	instagram := platform.NewInstagramClient(platform.InstagramConfig{
		AccessToken: cfg.Platforms.InstagramAccessToken,
	}, appLog)
	searchTrends := platform.NewSearchTrendsClient(platform.SearchTrendsConfig{
		Region:            cfg.Platforms.YouTubeRegion,
		RequestsPerSecond: cfg.Platforms.SearchTrendsRPS,
	}, appLog)

	// Initialize services
	aggregator := aggregate.NewService(
		[]content.PlatformCollaborator{youtube, tiktok, instagram},
		natsConn,
		aggregate.Config{
			EventsTopic:       cfg.Trend.EventsTopic,
			DefaultMaxResults: cfg.Trend.DefaultMaxResults,
		},
		appLog,
	)

	profiles, err := loadAgeProfiles(cfg.AgeGroups, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to load age-group profiles")
	}
	ageAnalyzer := agegroup.NewService(aggregator, profiles, appLog)

	timeframeAnalyzer := timeframe.NewService(youtube, timeframe.Config{
		TimeframeDays:       cfg.Analyze.TimeframeDays,
		ShortFormMaxSeconds: cfg.Analyze.ShortFormMaxSeconds,
		MaxPerChannel:       cfg.Analyze.MaxPerChannel,
		MaxPerKeyword:       cfg.Analyze.MaxPerKeyword,
		Region:              cfg.Platforms.YouTubeRegion,
	}, appLog)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, server.Dependencies{
		Registry:     aggregator,
		Aggregator:   aggregator,
		AgeAnalyzer:  ageAnalyzer,
		Timeframe:    timeframeAnalyzer,
		SearchTrends: searchTrends,
		Video:        youtube,
		EventBus:     natsConn,
		EventsTopic:  cfg.Trend.EventsTopic,
		Region:       cfg.Platforms.YouTubeRegion,
	}, appLog)

	// Start HTTP server
	go func() {
		appLog.WithFields(logrus.Fields{
			"host": cfg.Server.Host,
			"port": cfg.Server.Port,
		}).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Fatal("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	appLog.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Warn("HTTP server shutdown error")
	}

	appLog.Info("Shutdown complete")
}

// Initialize NATS connection. An empty URL means no event bus.
func initNATS(cfg config.NATSConfig, appLog *logrus.Logger) (*nats.Conn, error) {
	if cfg.URL == "" {
		appLog.Info("NATS_URL not set, event publishing disabled")
		return nil, nil
	}

	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			appLog.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			appLog.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			appLog.Info("NATS connection closed")
		}),
	}

	return nats.Connect(cfg.URL, options...)
}

// loadAgeProfiles loads the age-group dictionaries, falling back to the
// built-in tables when no file is configured.
func loadAgeProfiles(cfg config.AgeGroupsConfig, appLog *logrus.Logger) ([]trend.AgeGroupProfile, error) {
	if cfg.ProfilesFile == "" {
		return nil, nil
	}

	profiles, err := agegroup.LoadProfiles(cfg.ProfilesFile)
	if err != nil {
		return nil, err
	}
	appLog.WithFields(logrus.Fields{
		"file":     cfg.ProfilesFile,
		"profiles": len(profiles),
	}).Info("Loaded age-group profiles")
	return profiles, nil
}
