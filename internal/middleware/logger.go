package middleware

import (
	"context"
	"log/slog"
	"net/http"
)

const loggerKey contextKey = "logger"

// sessionLogPrefix is how much of a session ID goes into logs. The full ID
// is a bearer credential.
const sessionLogPrefix = 8

// WithRequestLogger stores a request-scoped logger in the context. It
// carries the method, path, request ID and client IP; Session and WithUser
// add the visitor session and user further down the chain.
func WithRequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			if id := GetRequestID(r.Context()); id != "" {
				logger = logger.With(slog.String("request_id", id))
			}
			if ip := GetClientIPFromContext(r.Context()); ip != "" {
				logger = logger.With(slog.String("client_ip", ip))
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loggerKey, logger)))
		})
	}
}

// withLogAttrs adds attrs to the request logger, if there is one.
func withLogAttrs(ctx context.Context, attrs ...any) context.Context {
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		return ctx
	}
	return context.WithValue(ctx, loggerKey, logger.With(attrs...))
}

func sessionLogValue(id string) string {
	if len(id) <= sessionLogPrefix {
		return id
	}
	return id[:sessionLogPrefix]
}

// GetLogger returns the request-scoped logger, else the first non-nil
// fallback, else slog.Default().
func GetLogger(ctx context.Context, fallback ...*slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	if len(fallback) > 0 && fallback[0] != nil {
		return fallback[0]
	}
	return slog.Default()
}
