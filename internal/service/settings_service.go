package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// SettingsView is the client-safe projection of domain.UserSettings.
// API keys are only ever exposed as masked hints.
type SettingsView struct {
	OpenAIKeyHint   string `json:"openai_api_key_hint"`
	GeminiKeyHint   string `json:"gemini_api_key_hint"`
	HasOpenAIKey    bool   `json:"has_openai_api_key"`
	HasGeminiKey    bool   `json:"has_gemini_api_key"`
	DefaultProvider string `json:"default_provider"`
	DefaultModel    string `json:"default_model"`
}

// SettingsUpdate describes a partial update. Nil fields are left untouched;
// a pointer to "" clears an API key.
type SettingsUpdate struct {
	OpenAIAPIKey    *string
	GeminiAPIKey    *string
	DefaultProvider *string
	DefaultModel    *string
}

// SettingsService manages per-user provider settings.
type SettingsService struct {
	settings store.SettingsStore
	logger   *slog.Logger
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(settings store.SettingsStore, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{
		settings: settings,
		logger:   logger.With(slog.String("component", "settings_service")),
	}
}

// Get returns the user's settings, or empty defaults when none are saved.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*SettingsView, error) {
	settings, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return viewOf(settings), nil
}

// Update applies a partial update and returns the new view.
func (s *SettingsService) Update(
	ctx context.Context,
	userID uuid.UUID,
	update SettingsUpdate,
) (*SettingsView, error) {
	settings, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.OpenAIAPIKey != nil {
		if err := settings.SetAPIKey(domain.ProviderOpenAI, strings.TrimSpace(*update.OpenAIAPIKey)); err != nil {
			return nil, err
		}
	}
	if update.GeminiAPIKey != nil {
		if err := settings.SetAPIKey(domain.ProviderGemini, strings.TrimSpace(*update.GeminiAPIKey)); err != nil {
			return nil, err
		}
	}

	var provider, model string
	if update.DefaultProvider != nil {
		provider = strings.ToLower(strings.TrimSpace(*update.DefaultProvider))
	}
	if update.DefaultModel != nil {
		model = strings.TrimSpace(*update.DefaultModel)
	}
	if err := settings.SetDefaults(provider, model); err != nil {
		return nil, err
	}

	if err := s.settings.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info("settings updated", slog.String("user_id", userID.String()))
	return viewOf(settings), nil
}

func (s *SettingsService) load(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	settings, err := s.settings.Get(ctx, userID)
	if errors.Is(err, store.ErrSettingsNotFound) {
		return domain.NewUserSettings(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func viewOf(settings *domain.UserSettings) *SettingsView {
	return &SettingsView{
		OpenAIKeyHint:   domain.MaskAPIKey(settings.OpenAIAPIKey),
		GeminiKeyHint:   domain.MaskAPIKey(settings.GeminiAPIKey),
		HasOpenAIKey:    settings.OpenAIAPIKey != "",
		HasGeminiKey:    settings.GeminiAPIKey != "",
		DefaultProvider: settings.DefaultProvider,
		DefaultModel:    settings.DefaultModel,
	}
}
