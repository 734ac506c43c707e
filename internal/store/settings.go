package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// SettingsStore persists per-user settings. Implementations seal API keys at rest.
type SettingsStore interface {
	// Get returns ErrSettingsNotFound when nothing has been saved yet.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)

	// Upsert creates or replaces the settings row for settings.UserID.
	Upsert(ctx context.Context, settings *domain.UserSettings) error
}
