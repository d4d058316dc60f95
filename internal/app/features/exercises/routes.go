package exercises

import (
	"net/http"

	"github.com/dalemusser/strataexercise/internal/app/system/apicors"
	"github.com/dalemusser/strataexercise/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes returns the router to mount at /api/users.
//
// Writes go through the API key check (a no-op when apiKey is empty);
// reads are open. CORS applies to every route.
func Routes(h *Handler, apiKey string, corsOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(apicors.Middleware(corsOrigins...))

	requireKey := auth.APIKeyAuth(apiKey, logger)

	r.Get("/", h.ListUsers)
	r.With(requireKey).Post("/", h.CreateUser)
	r.With(requireKey).Post("/{_id}/exercises", h.AddExercise)
	r.Get("/{_id}/logs", h.GetLogs)

	return r
}
