package handler

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/joestump/cuecard/internal/coach"
	"github.com/joestump/cuecard/internal/session"
)

// SettingsHandler lets a visitor supply their own model API key when the
// server has none configured. The key lives only in the session.
type SettingsHandler struct {
	sessions *session.Store
	coach    *coach.Service
	log      *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(ss *session.Store, cs *coach.Service, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{sessions: ss, coach: cs, log: log}
}

// SetAPIKey handles POST /settings/api-key.
func (h *SettingsHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	if h.coach.Configured() {
		http.Error(w, "the server already has an API key", http.StatusConflict)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	key := strings.TrimSpace(r.FormValue("api_key"))
	if key == "" {
		http.Error(w, "api_key is required", http.StatusBadRequest)
		return
	}

	if err := h.sessions.SetAPIKey(r.Context(), key); err != nil {
		h.log.Error("store session api key", zap.Error(err))
		http.Error(w, "could not save key", http.StatusInternalServerError)
		return
	}
	h.done(w, r)
}

// ClearAPIKey handles DELETE /settings/api-key.
func (h *SettingsHandler) ClearAPIKey(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearAPIKey(r.Context())
	h.done(w, r)
}

func (h *SettingsHandler) done(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
