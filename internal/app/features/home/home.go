// internal/app/features/home/home.go
package home

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.gohtml"))

// Handler serves the landing page.
type Handler struct {
	apiKeyRequired bool
	logger         *zap.Logger
}

// NewHandler creates a home Handler. apiKeyRequired only changes the page
// text; the key itself is enforced by the exercises routes.
func NewHandler(apiKeyRequired bool, logger *zap.Logger) *Handler {
	return &Handler{apiKeyRequired: apiKeyRequired, logger: logger}
}

// IndexVM is the view model for the landing page.
type IndexVM struct {
	Title          string
	APIKeyRequired bool
	LogsPath       string
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the landing page with the create-user and add-exercise forms.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	vm := IndexVM{
		Title:          "Exercise Tracker",
		APIKeyRequired: h.apiKeyRequired,
		LogsPath:       "/api/users/:_id/logs?[from][&to][&limit]",
	}

	// render to a buffer so a template error can still produce a clean 500
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, vm); err != nil {
		h.logger.Error("render landing page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
