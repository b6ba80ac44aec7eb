package middleware

import (
	"context"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/zjoart/paises/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestID returns the request id stored by RequestIDMiddleware, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// RequestIDMiddleware propagates an incoming X-Request-ID or mints a new one
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// LoggingMiddleware writes one access log line per request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		logger.Info("http request", logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      m.Code,
			"bytes":       m.Written,
			"duration_ms": m.Duration.Milliseconds(),
			"request_id":  RequestID(r.Context()),
		})
	})
}
