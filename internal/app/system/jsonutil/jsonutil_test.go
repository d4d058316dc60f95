package jsonutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		data     any
		wantBody string
	}{
		{"object", http.StatusOK, map[string]string{"username": "ann"}, `{"username":"ann"}`},
		{"empty list", http.StatusOK, []string{}, `[]`},
		{"nil data", http.StatusOK, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSON(rec, tt.status, tt.data)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if body := strings.TrimSpace(rec.Body.String()); body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name    string
		write   func(http.ResponseWriter)
		status  int
		message string
	}{
		{"error", func(w http.ResponseWriter) { Error(w, http.StatusNotFound, "User not found") }, 404, "User not found"},
		{"bad request", func(w http.ResponseWriter) { Error(w, http.StatusBadRequest, `Invalid "limit"`) }, 400, `Invalid "limit"`},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "Invalid API key") }, 401, "Invalid API key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var got map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("json unmarshal error: %v", err)
			}
			if got["error"] != tt.message {
				t.Errorf("error = %q, want %q", got["error"], tt.message)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"duration": 30, "description": "run"}`))
	var got map[string]any
	if err := Decode(httptest.NewRecorder(), req, &got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if n, ok := got["duration"].(json.Number); !ok || n.String() != "30" {
		t.Errorf("duration = %#v, want json.Number 30", got["duration"])
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := Decode(httptest.NewRecorder(), req, &got); err != ErrEmptyBody {
		t.Errorf("Decode() empty error = %v, want ErrEmptyBody", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	if err := Decode(httptest.NewRecorder(), req, &got); err == nil {
		t.Error("Decode() malformed body should fail")
	}
}
