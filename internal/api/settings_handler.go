package api

import (
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
)

// SettingsHandler serves the per-user provider settings.
type SettingsHandler struct {
	settings SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settings SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /api/settings. Keys are returned only as masked hints.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	view, err := h.settings.Get(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// Update handles PUT /api/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.settings.Update(r.Context(), userID, req.toUpdate())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}
