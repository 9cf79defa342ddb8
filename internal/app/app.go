package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/heartmarshall/wordlookup/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/render"
	"github.com/heartmarshall/wordlookup/internal/service/lookup"
	"github.com/heartmarshall/wordlookup/internal/transport/middleware"
	"github.com/heartmarshall/wordlookup/internal/transport/rest"
)

// NewDictionary builds the dictionary client from configuration.
func NewDictionary(cfg config.DictionaryConfig, logger *slog.Logger) *freedict.Provider {
	return freedict.NewProvider(logger,
		freedict.WithBaseURL(cfg.BaseURL),
		freedict.WithTimeout(cfg.Timeout),
		freedict.WithRetry(cfg.RetryOnServerError),
		freedict.WithRateLimit(cfg.RequestsPerSecond),
		freedict.WithUserAgent(cfg.UserAgent+"/"+Version),
	)
}

// NewLookupService builds the lookup service on top of the dictionary client.
func NewLookupService(cfg *config.Config, logger *slog.Logger) (*lookup.Service, *freedict.Provider) {
	dict := NewDictionary(cfg.Dictionary, logger)
	return lookup.NewService(logger, dict), dict
}

// NewHandler assembles the HTTP handler. The returned limiter must be
// stopped on shutdown.
func NewHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, *middleware.RateLimiter, error) {
	svc, dict := NewLookupService(cfg, logger)

	html, err := render.NewHTML()
	if err != nil {
		return nil, nil, err
	}

	version := BuildVersion()
	handlers := rest.Handlers{
		Page:    rest.NewPageHandler(svc, html, cfg.UI.Theme, cfg.UI.DefaultFont(), version, logger),
		Entries: rest.NewEntryHandler(svc, cfg.UI.Preferences(false), logger),
		Health:  rest.NewHealthHandler(dict, version),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	return rest.NewRouter(cfg, handlers, limiter, logger), limiter, nil
}

// Run is the HTTP server entry point. It loads configuration, initializes
// the logger, serves until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("dictionary", cfg.Dictionary.BaseURL),
	)

	handler, limiter, err := NewHandler(cfg, logger)
	if err != nil {
		return err
	}
	defer limiter.Stop()

	ln, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("app: listen %s: %w", cfg.Server.Addr(), err)
	}

	return Serve(ctx, ln, handler, cfg.Server, logger)
}

// Serve runs an http.Server on ln until ctx is canceled.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, cfg config.ServerConfig, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("app: serve: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
