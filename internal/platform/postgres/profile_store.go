package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the ProfileStore interface.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// WithTx implements store.ProfileStore.WithTx.
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{db: tx, logger: s.logger}
}

// Create implements store.ProfileStore.Create.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO profiles (id, email, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	err := withUserScope(ctx, s.db, profile.ID, func(ctx context.Context, q store.DBTX) error {
		_, err := q.ExecContext(ctx, query,
			profile.ID, profile.Email, profile.FullName, profile.CreatedAt, profile.UpdatedAt)
		return MapError(err)
	})
	if err != nil {
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.ID.String()))
		return err
	}

	log.Debug("profile created", slog.String("user_id", profile.ID.String()))
	return nil
}

// Get implements store.ProfileStore.Get.
func (s *PostgresProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, full_name, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	var profile domain.Profile
	err := withUserScope(ctx, s.db, userID, func(ctx context.Context, q store.DBTX) error {
		return q.QueryRowContext(ctx, query, userID).Scan(
			&profile.ID,
			&profile.Email,
			&profile.FullName,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return &profile, nil
}

// Update implements store.ProfileStore.Update. Only the display name is mutable.
func (s *PostgresProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE profiles
		SET full_name = $1, updated_at = $2
		WHERE id = $3
	`
	err := withUserScope(ctx, s.db, profile.ID, func(ctx context.Context, q store.DBTX) error {
		result, err := q.ExecContext(ctx, query, profile.FullName, profile.UpdatedAt, profile.ID)
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(result, store.ErrProfileNotFound)
	})
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			log.Error("failed to update profile",
				slog.String("error", err.Error()),
				slog.String("user_id", profile.ID.String()))
		}
		return err
	}

	log.Info("profile updated", slog.String("user_id", profile.ID.String()))
	return nil
}
