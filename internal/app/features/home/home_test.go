package home

import (
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/strataexercise/internal/testutil"
	"go.uber.org/zap"
)

func TestIndex_RendersForms(t *testing.T) {
	router := Routes(NewHandler(false, zap.NewNop()))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	rec.AssertContains(t, `action="/api/users"`)
	rec.AssertContains(t, `name="username"`)
	rec.AssertContains(t, `name="description"`)
	rec.AssertContains(t, `name="duration"`)
	rec.AssertContains(t, `name="date"`)
	rec.AssertContains(t, "/exercises")

	if strings.Contains(rec.Body.String(), "Bearer") {
		t.Error("key note should be hidden when no API key is configured")
	}
}

func TestIndex_APIKeyNote(t *testing.T) {
	router := Routes(NewHandler(true, zap.NewNop()))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Bearer")
}

func TestIndex_OnlyGet(t *testing.T) {
	router := Routes(NewHandler(false, zap.NewNop()))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodPost, "/"))

	rec.AssertStatus(t, http.StatusMethodNotAllowed)
}
