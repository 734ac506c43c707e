package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// SessionStore persists generation sessions and their cards.
// Every method is scoped to userID; rows owned by other users are invisible
// and reported as ErrSessionNotFound.
type SessionStore interface {
	// CreateWithCards writes the session row and all card rows atomically.
	// session.UserID must equal userID.
	CreateWithCards(ctx context.Context, userID uuid.UUID, session *domain.Session, cards []domain.SessionCard) error

	// ListRecent returns at most limit sessions, newest first.
	// limit is clamped to domain.MaxRecentSessions.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Session, error)

	// Get returns a single session.
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)

	// GetCards returns the session's cards in creation order. A session that
	// does not exist or belongs to someone else yields an empty slice.
	GetCards(ctx context.Context, userID, sessionID uuid.UUID) ([]domain.SessionCard, error)

	// Delete removes the session and, by cascade, all of its cards.
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
}
