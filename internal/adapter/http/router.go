package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/goreceipts/internal/adapter/http/handler"
	"github.com/iho/goreceipts/internal/adapter/http/middleware"
	"github.com/iho/goreceipts/internal/infrastructure/metrics"
	"github.com/iho/goreceipts/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	RecordHandler   *handler.RecordHandler
	DocumentHandler *handler.DocumentHandler
	HealthHandler   *handler.HealthHandler

	// Optional
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	Gatherer         prometheus.Gatherer
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Idempotency middleware for creating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Records
		r.Route("/records", func(r chi.Router) {
			r.Get("/", cfg.RecordHandler.List)
			r.Post("/", cfg.RecordHandler.Create)
			r.Get("/{id}", cfg.RecordHandler.Get)
			r.Patch("/{id}", cfg.RecordHandler.Update)
			r.Delete("/{id}", cfg.RecordHandler.Delete)
			r.Post("/{id}/shift", cfg.RecordHandler.Shift)
		})

		// Documents
		r.Post("/print", cfg.DocumentHandler.Print)
		r.Get("/export", cfg.DocumentHandler.Export)
	})

	return r
}
