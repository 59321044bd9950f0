// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skraper/internal/adapter/events"
	"skraper/internal/config"
	"skraper/internal/domain/scrape"
	"skraper/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	Scraper       handlers.ScrapeService
	Detector      scrape.Detector
	Invoker       scrape.Invoker
	Bus           events.Bus
	EventsSubject string
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, deps Dependencies) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(metricsMiddleware)
	router.Use(recoverer)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Create handler dependencies
	metaHandler := handlers.NewMetaHandler(deps.Detector, deps.Invoker)
	scrapeHandler := handlers.NewScrapeHandler(deps.Scraper)

	// Routes
	router.Get("/", metaHandler.Index)
	router.Get("/health", metaHandler.Health)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/platforms", metaHandler.Platforms)

		r.Route("/scrape", func(r chi.Router) {
			r.Post("/", scrapeHandler.Scrape)
			r.Post("/enhanced", scrapeHandler.ScrapeEnhanced)
			r.Get("/status", metaHandler.Status)
		})

		r.Post("/ai-agent/brand-analysis", scrapeHandler.BrandAnalysis)
	})

	// WebSocket endpoint for live scrape events
	if deps.Bus != nil {
		router.Get("/ws/scrapes", handlers.EventsWebSocketHandler(deps.Bus, deps.EventsSubject, cfg.CorsOrigins))
	}

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

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
