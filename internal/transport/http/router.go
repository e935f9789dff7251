package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "moviecli/internal/errors"
	"moviecli/internal/middleware"
)

// RouterConfig collects the handlers and middleware the router mounts.
// Optional fields may be nil.
type RouterConfig struct {
	Analysis *AnalysisHandler
	Health   *HealthHandler
	Metrics  http.Handler

	OTel        *middleware.OTelMiddleware
	RateLimiter *middleware.RateLimiter
	Logger      *slog.Logger
}

// NewRouter builds the HTTP routes:
//
//	/healthz                   liveness and readiness probes
//	/metrics                   Prometheus exposition
//	/api/v1/version            build information
//	/api/v1/...                analysis routes (see AnalysisHandler.Routes)
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.OTel != nil {
		r.Use(cfg.OTel.Handler)
	}
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.StripSlashes)

	// Set before mounting so subrouters inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.NotFoundError(r.URL.Path)))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")))
	})

	if cfg.Health != nil {
		r.Mount("/healthz", cfg.Health.Routes())
	}
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Handler)
		}
		if cfg.Health != nil {
			r.With(render.SetContentType(render.ContentTypeJSON)).Get("/version", cfg.Health.Version)
		}
		if cfg.Analysis != nil {
			r.Mount("/", cfg.Analysis.Routes())
		}
	})

	return r
}
