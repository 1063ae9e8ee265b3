package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"trendlens/internal/config"
	"trendlens/internal/domain/content"
	"trendlens/internal/domain/trend"
	"trendlens/internal/server/handlers"
)

// Dependencies bundles the services the HTTP layer exposes.
type Dependencies struct {
	Registry     handlers.CollaboratorRegistry
	Aggregator   trend.Aggregator
	AgeAnalyzer  trend.AgeAnalyzer
	Timeframe    trend.TimeframeAnalyzer
	SearchTrends handlers.SearchTrendsSource
	Video        content.VideoCollaborator
	EventBus     *nats.Conn
	EventsTopic  string
	Region       string
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, deps Dependencies, log *logrus.Logger) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	platformHandler := handlers.NewPlatformHandler(deps.Registry, deps.Video, log)
	trendHandler := handlers.NewTrendHandler(deps.Aggregator, deps.SearchTrends, deps.Region, log)
	ageGroupHandler := handlers.NewAgeGroupHandler(deps.AgeAnalyzer, log)
	analyzeHandler := handlers.NewAnalyzeHandler(deps.Timeframe, log)
	dashboardHandler := handlers.NewDashboardHandler(deps.Video, log)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Per-platform facade API
			r.Route("/{platform}", func(r chi.Router) {
				r.Get("/trends", platformHandler.GetTrending)
				r.Get("/search", platformHandler.Search)
				r.Get("/hashtags", platformHandler.GetHashtags)
			})

			// Video-platform channel API
			r.Get("/youtube/channels/{id}", platformHandler.GetChannelInfo)

			// Integrated cross-platform API
			r.Route("/trends", func(r chi.Router) {
				r.Get("/global", trendHandler.GetGlobalTrends)
				r.Get("/keywords", trendHandler.GetTrendingKeywords)
				r.Get("/realtime", trendHandler.GetRealtimeSearches)
			})
			r.Get("/search/global", trendHandler.GlobalSearch)

			// Age-group affinity API
			r.Route("/age-groups", func(r chi.Router) {
				r.Get("/keywords", ageGroupHandler.GetKeywordsByAgeGroup)
				r.Get("/{group}/trends", ageGroupHandler.GetAgeGroupTrends)
			})
			r.Get("/keywords/{keyword}/analysis", ageGroupHandler.AnalyzeKeyword)

			// Timeframe analysis API
			r.Post("/analyze", analyzeHandler.Analyze)
		})
	})

	// WebSocket endpoint for live keyword snapshots
	router.Get("/ws/trends", handlers.TrendsWebSocketHandler(deps.EventBus, deps.EventsTopic, log))

	// HTML dashboard
	router.Get("/web", dashboardHandler.Render)

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
