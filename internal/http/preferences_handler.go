package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/preferences"
)

type PreferencesHandler struct {
	responder
	theme *preferences.ThemePreference
}

func NewPreferencesHandler(theme *preferences.ThemePreference, log *zap.Logger) *PreferencesHandler {
	return &PreferencesHandler{responder: responder{log: log}, theme: theme}
}

type ThemeResponseDTO struct {
	Theme domain.Theme `json:"theme"`
}

// GET /api/v1/preferences/theme
func (h *PreferencesHandler) GetTheme(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, ThemeResponseDTO{Theme: h.theme.Theme()})
}

// POST /api/v1/preferences/theme/toggle
func (h *PreferencesHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	// the toggle applies even if it could not be persisted
	theme, _ := h.theme.Toggle(r.Context())
	h.respondJSON(w, http.StatusOK, ThemeResponseDTO{Theme: theme})
}
