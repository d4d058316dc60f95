// Package exercises serves the exercise tracker JSON API.
//
// Endpoints (mounted at /api/users):
//   - POST /                - create a user from "username"
//   - GET  /                - list users
//   - POST /{_id}/exercises - append an exercise to a user's log
//   - GET  /{_id}/logs      - the user's log, filtered by from/to/limit
//
// Write bodies may be form-encoded (the landing page forms) or JSON.
// Errors are {"error": message} with the status chosen by apperr.Status.
package exercises

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/strataexercise/internal/app/features/errors"
	userstore "github.com/dalemusser/strataexercise/internal/app/store/users"
	"github.com/dalemusser/strataexercise/internal/app/system/apperr"
	"github.com/dalemusser/strataexercise/internal/app/system/jsonutil"
	"github.com/dalemusser/strataexercise/internal/app/system/logquery"
	"github.com/dalemusser/strataexercise/internal/app/system/metrics"
	"github.com/dalemusser/strataexercise/internal/app/system/timeouts"
	"github.com/dalemusser/strataexercise/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// users is the part of userstore.Store the handler needs.
type users interface {
	Create(ctx context.Context, username string) (models.UserRef, error)
	List(ctx context.Context) ([]models.UserRef, error)
	AddExercise(ctx context.Context, in userstore.ExerciseInput) (models.ExerciseRecord, error)
	GetLogs(ctx context.Context, userID string, raw logquery.RawFilters) (*models.LogSummary, error)
}

// Handler serves the /api/users endpoints.
type Handler struct {
	users  users
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a Handler backed by store.
func NewHandler(store *userstore.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{users: store, errLog: errLog, logger: logger}
}

// CreateUser handles POST /api/users.
//
// Response (200): {"_id": "...", "username": "..."}
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "create user")
	defer cancel()

	ref, err := h.users.Create(ctx, f.get("username"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	metrics.RecordUserCreated()

	h.logger.Debug("user created", zap.String("user_id", ref.ID))
	jsonutil.OK(w, ref)
}

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Query(), h.logger, "list users")
	defer cancel()

	list, err := h.users.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonutil.OK(w, list)
}

// AddExercise handles POST /api/users/{_id}/exercises.
//
// The user id comes from the path; a body "_id" (sent by the landing
// page form) is ignored.
//
// Response (200):
//
//	{"_id": "...", "username": "...", "description": "run", "duration": 30, "date": "Mon Aug 01 2022"}
func (h *Handler) AddExercise(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "add exercise")
	defer cancel()

	rec, err := h.users.AddExercise(ctx, userstore.ExerciseInput{
		UserID:      chi.URLParam(r, "_id"),
		Description: f.get("description"),
		Duration:    f.get("duration"),
		Date:        f.get("date"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	metrics.RecordExerciseLogged()

	jsonutil.OK(w, rec)
}

// GetLogs handles GET /api/users/{_id}/logs?from=&to=&limit=.
func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	raw := logquery.RawFilters{
		From:  query.Get(r, "from"),
		To:    query.Get(r, "to"),
		Limit: query.Get(r, "limit"),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Query(), h.logger, "get logs")
	defer cancel()

	summary, err := h.users.GetLogs(ctx, chi.URLParam(r, "_id"), raw)
	count := 0
	if summary != nil {
		count = summary.Count
	}
	metrics.RecordLogQuery(metrics.LogQueryOutcome(count, err))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonutil.OK(w, summary)
}

// fail writes err as a JSON error. Only 500s are logged here; their
// detail never reaches the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		h.errLog.LogWithFields(r, "request failed", err, zap.Int("status", status))
	}
	jsonutil.Error(w, status, apperr.Message(err))
}
