package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/platform/secretbox"
	"github.com/phrazzld/flashdeck/internal/store"
)

var settingsColumns = []string{
	"id", "user_id", "openai_api_key", "gemini_api_key",
	"default_provider", "default_model", "created_at", "updated_at",
}

// PostgresSettingsStore implements the store.SettingsStore interface.
// API keys are sealed with a secretbox.Box before they reach the database.
type PostgresSettingsStore struct {
	db     store.DBTX
	box    *secretbox.Box
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the SettingsStore interface.
func NewPostgresSettingsStore(
	db store.DBTX,
	box *secretbox.Box,
	logger *slog.Logger,
) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if box == nil {
		panic("box cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSettingsStore{
		db:     db,
		box:    box,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure PostgresSettingsStore implements store.SettingsStore interface
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// Get implements store.SettingsStore.Get.
func (s *PostgresSettingsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(settingsColumns...).
		From("user_settings").
		Where(squirrel.Eq{"user_id": userID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build settings query: %w", err)
	}

	var (
		settings                   domain.UserSettings
		sealedOpenAI, sealedGemini string
	)
	err = withUserScope(ctx, s.db, userID, func(ctx context.Context, q store.DBTX) error {
		return q.QueryRowContext(ctx, query, args...).Scan(
			&settings.ID,
			&settings.UserID,
			&sealedOpenAI,
			&sealedGemini,
			&settings.DefaultProvider,
			&settings.DefaultModel,
			&settings.CreatedAt,
			&settings.UpdatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSettingsNotFound
		}
		log.Error("failed to get settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	if settings.OpenAIAPIKey, err = s.box.Open(sealedOpenAI); err != nil {
		log.Error("failed to open sealed openai key", slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to open stored api key: %w", err)
	}
	if settings.GeminiAPIKey, err = s.box.Open(sealedGemini); err != nil {
		log.Error("failed to open sealed gemini key", slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to open stored api key: %w", err)
	}

	return &settings, nil
}

// Upsert implements store.SettingsStore.Upsert.
func (s *PostgresSettingsStore) Upsert(ctx context.Context, settings *domain.UserSettings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sealedOpenAI, err := s.box.Seal(settings.OpenAIAPIKey)
	if err != nil {
		return fmt.Errorf("failed to seal api key: %w", err)
	}
	sealedGemini, err := s.box.Seal(settings.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to seal api key: %w", err)
	}

	query, args, err := psql.Insert("user_settings").
		Columns(settingsColumns...).
		Values(settings.ID, settings.UserID, sealedOpenAI, sealedGemini,
			settings.DefaultProvider, settings.DefaultModel, settings.CreatedAt, settings.UpdatedAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			openai_api_key = EXCLUDED.openai_api_key,
			gemini_api_key = EXCLUDED.gemini_api_key,
			default_provider = EXCLUDED.default_provider,
			default_model = EXCLUDED.default_model,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build settings upsert: %w", err)
	}

	err = withUserScope(ctx, s.db, settings.UserID, func(ctx context.Context, q store.DBTX) error {
		_, err := q.ExecContext(ctx, query, args...)
		return MapError(err)
	})
	if err != nil {
		log.Error("failed to save settings",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return err
	}

	log.Info("settings saved",
		slog.String("user_id", settings.UserID.String()),
		slog.Bool("openai_key_set", settings.OpenAIAPIKey != ""),
		slog.Bool("gemini_key_set", settings.GeminiAPIKey != ""))
	return nil
}
