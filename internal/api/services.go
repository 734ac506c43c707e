package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
)

// AccountService is the subset of service.AccountService used by AuthHandler.
type AccountService interface {
	Register(ctx context.Context, email, password, fullName string) (*service.TokenPair, error)
	Login(ctx context.Context, email, password string) (*service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error)
}

// GenerationService runs flashcard generation for a user.
type GenerationService interface {
	Generate(ctx context.Context, userID uuid.UUID, req domain.GenerationRequest) (*service.GenerationResult, error)
}

// SessionService reads and deletes a user's generation history.
type SessionService interface {
	ListRecent(ctx context.Context, userID uuid.UUID) ([]domain.Session, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)
	Cards(ctx context.Context, userID, sessionID uuid.UUID) ([]domain.Flashcard, error)
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
}

// SettingsService reads and updates provider settings.
type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID) (*service.SettingsView, error)
	Update(ctx context.Context, userID uuid.UUID, update service.SettingsUpdate) (*service.SettingsView, error)
}

// ProfileService reads and renames profiles.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Rename(ctx context.Context, userID uuid.UUID, fullName string) (*domain.Profile, error)
}

var (
	_ AccountService    = (*service.AccountService)(nil)
	_ GenerationService = (*service.GenerationService)(nil)
	_ SessionService    = (*service.SessionService)(nil)
	_ SettingsService   = (*service.SettingsService)(nil)
	_ ProfileService    = (*service.ProfileService)(nil)
)
