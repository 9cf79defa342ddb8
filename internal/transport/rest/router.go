package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/transport/middleware"
)

// Handlers groups the route handlers.
type Handlers struct {
	Page    *PageHandler
	Entries *EntryHandler
	Health  *HealthHandler
}

// NewRouter wires routes and middleware. Health probes skip the rate limit.
func NewRouter(cfg *config.Config, h Handlers, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Standard(logger, cfg.Server.TrustProxy))
	r.Use(chimiddleware.CleanPath)
	r.Use(chimiddleware.Compress(5, "text/html", "application/json"))

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Limit(cfg.RateLimit.RequestsPerMinute))

		r.Get("/", h.Page.Index)

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middleware.CORS(cfg.CORS))
			r.Options("/*", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
			// CleanPath strips the trailing slash, so an empty word arrives here.
			r.Get("/entries", h.Entries.Get)
			r.Get("/entries/", h.Entries.Get)
			r.Get("/entries/{word}", h.Entries.Get)
		})
	})

	return r
}
