package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/strataexercise/internal/app/system/apperr"
	"github.com/go-chi/chi/v5"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogQueryOutcome(t *testing.T) {
	tests := []struct {
		name  string
		count int
		err   error
		want  string
	}{
		{"rows", 3, nil, OutcomeOK},
		{"no rows", 0, nil, OutcomeEmpty},
		{"bad input", 0, apperr.InvalidLimit(), OutcomeBadInput},
		{"not found", 0, apperr.NotFound("abc"), OutcomeNotFound},
		{"store", 0, apperr.Store("aggregate exercise log", errors.New("down")), OutcomeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogQueryOutcome(tt.count, tt.err))
		})
	}
}

func TestRecorders(t *testing.T) {
	users := promtestutil.ToFloat64(usersCreated)
	exercises := promtestutil.ToFloat64(exercisesLogged)
	empty := promtestutil.ToFloat64(logQueries.WithLabelValues(OutcomeEmpty))

	RecordUserCreated()
	RecordExerciseLogged()
	RecordExerciseLogged()
	RecordLogQuery(OutcomeEmpty)

	assert.Equal(t, users+1, promtestutil.ToFloat64(usersCreated))
	assert.Equal(t, exercises+2, promtestutil.ToFloat64(exercisesLogged))
	assert.Equal(t, empty+1, promtestutil.ToFloat64(logQueries.WithLabelValues(OutcomeEmpty)))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	matched := httpRequests.WithLabelValues(http.MethodGet, "/things/{id}", "418")
	unmatched := httpRequests.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	beforeMatched := promtestutil.ToFloat64(matched)
	beforeUnmatched := promtestutil.ToFloat64(unmatched)

	for _, path := range []string{"/things/1", "/things/2", "/nowhere"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, beforeMatched+2, promtestutil.ToFloat64(matched))
	assert.Equal(t, beforeUnmatched+1, promtestutil.ToFloat64(unmatched))
}

func TestHandler_Exposes(t *testing.T) {
	RecordUserCreated()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "strataexercise_users_created_total"))
}
