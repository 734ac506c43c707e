package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/export"
)

// SessionHandler serves the generation history.
type SessionHandler struct {
	sessions SessionService
	now      func() time.Time
	logger   *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions SessionService, log *slog.Logger) *SessionHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{
		sessions: sessions,
		now:      time.Now,
		logger:   log.With(slog.String("component", "session_handler")),
	}
}

// List handles GET /api/sessions.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sessions, err := h.sessions.ListRecent(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionListResponse{Sessions: sessions})
}

// Cards handles GET /api/sessions/{id}/cards.
func (h *SessionHandler) Cards(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	cards, err := h.sessions.Cards(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load session cards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionCardsResponse{
		SessionID:  sessionID,
		Flashcards: cards,
	})
}

// Export handles GET /api/sessions/{id}/export.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.sessions.Get(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export session")
		return
	}

	cards, err := h.sessions.Cards(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export session")
		return
	}

	writeExport(w, r, export.NewDocument(session.Topic, cards, h.now()))
}

// Delete handles DELETE /api/sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sessions.Delete(r.Context(), userID, sessionID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
