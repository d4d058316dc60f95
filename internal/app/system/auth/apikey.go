// Package auth guards the API's write endpoints with an optional shared key.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dalemusser/strataexercise/internal/app/system/jsonutil"
	"github.com/dalemusser/strataexercise/internal/app/system/network"
	"github.com/dalemusser/strataexercise/internal/app/system/reqlog"
	"go.uber.org/zap"
)

// APIKeyAuth returns middleware that checks "Authorization: Bearer <api-key>".
//
// An empty validKey disables the check and every request passes through;
// that is the default so the landing page forms work without a key.
//
// Usage in routes.go:
//
//	r.With(auth.APIKeyAuth(cfg.APIKey, logger)).Post("/", h.createUser)
func APIKeyAuth(validKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	if validKey == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	want := []byte(validKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("API request rejected: missing Authorization header",
					zap.String("path", r.URL.Path))
				jsonutil.Unauthorized(w, "Missing Authorization header")
				return
			}

			scheme, key, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				logger.Debug("API request rejected: invalid Authorization format",
					zap.String("path", r.URL.Path))
				jsonutil.Unauthorized(w, "Invalid Authorization format (expected: Bearer <api-key>)")
				return
			}

			if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(key)), want) != 1 {
				logger.Warn("API request rejected: invalid API key",
					zap.String("path", r.URL.Path),
					zap.String("remote_ip", network.ClientIP(r)),
					zap.String("request_id", reqlog.RequestID(r.Context())))
				jsonutil.Unauthorized(w, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
