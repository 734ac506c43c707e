package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// ProfileStore persists user profiles. The profile ID is the user ID.
type ProfileStore interface {
	Create(ctx context.Context, profile *domain.Profile) error

	// Get returns ErrProfileNotFound when the user has no profile.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	Update(ctx context.Context, profile *domain.Profile) error

	WithTx(tx *sql.Tx) ProfileStore
}
