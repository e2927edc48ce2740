package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/api/middleware"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/chat"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/handlers"
	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/store"
)

// NewRouter creates and configures the HTTP router. The Redis client is
// optional; without it rate limiting is disabled.
func NewRouter(logger zerolog.Logger, ds store.DataStore, rdb *redis.Client) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(8 * 1024)) // 8KB max body
	r.Use(middleware.RequireJSON)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// Rate limiting (only when Redis is configured)
	if rdb != nil {
		limiter := middleware.NewRateLimiter(rdb, logger)
		r.Use(limiter.Middleware)
	}

	// CORS - allow all origins (clients poll from anywhere)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "participant"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Wire core components and handlers
	registry := chat.NewRegistry(ds)
	log := chat.NewLog(ds)
	h := handlers.NewHandler(registry, log, ds)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", h.Health)

	r.Post("/participants", h.Join)
	r.Get("/participants", h.ListParticipants)
	r.Post("/messages", h.PostMessage)
	r.Get("/messages", h.ListMessages)
	r.Post("/status", h.Status)

	return r
}
