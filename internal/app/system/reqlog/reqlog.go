// Package reqlog logs one structured line per HTTP request and tags every
// request with an ID.
package reqlog

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/strataexercise/internal/app/system/network"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

type ctxKey int

const ctxKeyRequestID ctxKey = iota

// maxClientIDLen bounds a client-supplied request ID.
const maxClientIDLen = 128

// Config holds configuration for the request logging middleware.
type Config struct {
	Logger *zap.Logger

	// ExcludePaths is a list of path prefixes that are not logged.
	// Requests on them still get a request ID.
	ExcludePaths []string
}

// DefaultConfig skips health checks, scrapes and static files.
func DefaultConfig(logger *zap.Logger) Config {
	return Config{
		Logger: logger,
		ExcludePaths: []string{
			"/health",
			"/ready",
			"/livez",
			"/metrics",
			"/static",
			"/favicon.ico",
		},
	}
}

// Middleware assigns a request ID (reusing a sane client-supplied
// X-Request-ID) and logs method, path, status, size and duration.
// 5xx responses log at Error, 4xx at Warn, the rest at Info.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" || len(id) > maxClientIDLen {
				id = uuid.New().String()
			}
			w.Header().Set(HeaderRequestID, id)
			r = r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, id))

			for _, prefix := range cfg.ExcludePaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_ip", network.ClientIP(r)),
			}
			switch {
			case status >= 500:
				cfg.Logger.Error("request", fields...)
			case status >= 400:
				cfg.Logger.Warn("request", fields...)
			default:
				cfg.Logger.Info("request", fields...)
			}
		})
	}
}

// RequestID returns the ID assigned by Middleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// Logger returns base annotated with the request's ID.
func Logger(base *zap.Logger, r *http.Request) *zap.Logger {
	if id := RequestID(r.Context()); id != "" {
		return base.With(zap.String("request_id", id))
	}
	return base
}
