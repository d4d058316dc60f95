package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/strataexercise/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNotFound(t *testing.T) {
	h := NewHandler(zap.NewNop())

	for _, target := range []string{"/nope", "/api/users/abc/unknown", "/api"} {
		t.Run(target, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.NotFound(rec, testutil.NewRequest(http.MethodGet, target))

			rec.AssertStatus(t, http.StatusNotFound)
			if got := rec.Body.String(); got != "Not Found" {
				t.Errorf("body = %q, want %q", got, "Not Found")
			}
			if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := NewHandler(zap.NewNop())

	rec := testutil.NewRecorder()
	h.MethodNotAllowed(rec, testutil.NewRequest(http.MethodDelete, "/api/users"))

	rec.AssertStatus(t, http.StatusMethodNotAllowed)
	rec.AssertContains(t, "Method Not Allowed")
}

func TestErrorLogger_LogWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	el := NewErrorLogger(zap.New(core))

	req := testutil.NewRequest(http.MethodGet, "/api/users")
	el.LogWithFields(req, "list users failed", errors.New("boom"), zap.String("extra", "x"))

	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["path"] != "/api/users" || fields["method"] != http.MethodGet {
		t.Errorf("missing request fields: %v", fields)
	}
	if fields["extra"] != "x" {
		t.Errorf("extra field not carried: %v", fields)
	}
	if fields["error"] != "boom" {
		t.Errorf("error field = %v, want boom", fields["error"])
	}
}
