package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// SessionService exposes a user's generation history.
type SessionService struct {
	sessions store.SessionStore
	logger   *slog.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(sessions store.SessionStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "session_service")),
	}
}

// ListRecent returns the user's newest sessions, at most domain.MaxRecentSessions.
func (s *SessionService) ListRecent(ctx context.Context, userID uuid.UUID) ([]domain.Session, error) {
	sessions, err := s.sessions.ListRecent(ctx, userID, domain.MaxRecentSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// Get returns one session owned by userID.
func (s *SessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// Cards returns a session's cards in canonical shape, oldest first.
// Unknown or foreign sessions yield an empty list.
func (s *SessionService) Cards(ctx context.Context, userID, sessionID uuid.UUID) ([]domain.Flashcard, error) {
	rows, err := s.sessions.GetCards(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session cards: %w", err)
	}
	return domain.FlashcardsFromSessionCards(rows), nil
}

// Delete removes a session together with all of its cards.
func (s *SessionService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, userID, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("session deleted",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sessionID.String()))
	return nil
}
