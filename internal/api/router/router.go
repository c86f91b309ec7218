package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/presq/leadcapture/internal/http/handlers"
	httpmiddleware "github.com/presq/leadcapture/internal/http/middleware"
	"github.com/presq/leadcapture/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Contact            *handlers.ContactHandler
	AdminResend        *handlers.AdminResendHandler
	Health             *handlers.HealthHandler
	MetricsHandler     http.Handler
	AdminAuthSecret    string
	CORSAllowedOrigins []string
	RateLimitPerSec    float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		if cfg.Health != nil {
			public.Get("/health", cfg.Health.Liveness)
			public.Get("/health/email", cfg.Health.Email)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.Contact != nil {
			public.Route("/contact", func(r chi.Router) {
				if cfg.RateLimitPerSec > 0 {
					r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSec, cfg.RateLimitBurst))
				}
				r.Post("/", cfg.Contact.Submit)
			})
		}
	})

	// Admin routes (protected by JWT)
	if cfg.AdminResend != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Post("/notifications/resend", cfg.AdminResend.Resend)
		})
	}

	return r
}
