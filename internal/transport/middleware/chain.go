package middleware

import (
	"log/slog"
	"net/http"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middleware into a single Middleware.
// Middleware are applied in the order given: Chain(mw1, mw2)(handler)
// results in mw1(mw2(handler)), so mw1 executes first (outermost).
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// Standard is the stack every route shares: request ID, client IP, access
// log, then panic recovery innermost so the log sees the 500.
func Standard(logger *slog.Logger, trustProxy bool) Middleware {
	return Chain(
		RequestID(),
		ClientIP(trustProxy),
		Logger(logger),
		Recovery(logger),
	)
}
