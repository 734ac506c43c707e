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
	"github.com/phrazzld/flashdeck/internal/store"
)

var (
	sessionColumns = []string{"id", "user_id", "topic", "difficulty", "card_count", "created_at"}
	cardColumns    = []string{
		"id", "session_id", "front", "back", "additional_info", "difficulty", "position", "created_at",
	}
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// CreateWithCards implements store.SessionStore.CreateWithCards.
// The session row and all card rows are written in a single transaction.
func (s *PostgresSessionStore) CreateWithCards(
	ctx context.Context,
	userID uuid.UUID,
	session *domain.Session,
	cards []domain.SessionCard,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if session.UserID != userID {
		return fmt.Errorf("%w: session owner does not match acting user", store.ErrInvalidEntity)
	}

	sessionQuery, sessionArgs, err := psql.Insert("sessions").
		Columns(sessionColumns...).
		Values(session.ID, session.UserID, session.Topic, string(session.Difficulty),
			session.CardCount, session.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build session insert: %w", err)
	}

	err = withUserScope(ctx, s.db, userID, func(ctx context.Context, q store.DBTX) error {
		if _, err := q.ExecContext(ctx, sessionQuery, sessionArgs...); err != nil {
			return MapError(err)
		}

		if len(cards) == 0 {
			return nil
		}

		insert := psql.Insert("session_cards").Columns(cardColumns...)
		for _, c := range cards {
			if c.SessionID != session.ID {
				return fmt.Errorf("%w: card %s belongs to another session", store.ErrInvalidEntity, c.ID)
			}
			insert = insert.Values(c.ID, c.SessionID, c.Front, c.Back, c.AdditionalInfo,
				string(c.Difficulty), c.Position, c.CreatedAt)
		}

		cardQuery, cardArgs, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build card insert: %w", err)
		}
		if _, err := q.ExecContext(ctx, cardQuery, cardArgs...); err != nil {
			return MapError(err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.String("user_id", userID.String()),
			slog.Int("card_count", len(cards)))
		return err
	}

	log.Info("session created successfully",
		slog.String("session_id", session.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("card_count", len(cards)))
	return nil
}

// ListRecent implements store.SessionStore.ListRecent.
func (s *PostgresSessionStore) ListRecent(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 || limit > domain.MaxRecentSessions {
		limit = domain.MaxRecentSessions
	}

	query, args, err := psql.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"user_id": userID.String()}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build session list query: %w", err)
	}

	sessions := make([]domain.Session, 0, limit)
	err = withUserScope(ctx, s.db, userID, func(ctx context.Context, q store.DBTX) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return MapError(err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			session, err := scanSession(rows)
			if err != nil {
				return err
			}
			sessions = append(sessions, *session)
		}
		return rows.Err()
	})
	if err != nil {
		log.Error("failed to list sessions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	log.Debug("listed recent sessions",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(sessions)))
	return sessions, nil
}

// Get implements store.SessionStore.Get.
func (s *PostgresSessionStore) Get(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": sessionID.String(), "user_id": userID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build session query: %w", err)
	}

	var session *domain.Session
	err = withUserScope(ctx, s.db, userID, func(ctx context.Context, q store.DBTX) error {
		var scanErr error
		session, scanErr = scanSession(q.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found",
				slog.String("session_id", sessionID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, MapError(err)
	}

	return session, nil
}

// GetCards implements store.SessionStore.GetCards.
// Cards are ordered by creation time, ties broken by their position in the generated set.
func (s *PostgresSessionStore) GetCards(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) ([]domain.SessionCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(prefixed("c", cardColumns)...).
		From("session_cards c").
		Join("sessions s ON s.id = c.session_id").
		Where(squirrel.Eq{"c.session_id": sessionID.String(), "s.user_id": userID.String()}).
		OrderBy("c.created_at ASC", "c.position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build card query: %w", err)
	}

	cards := []domain.SessionCard{}
	err = withUserScope(ctx, s.db, userID, func(ctx context.Context, q store.DBTX) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return MapError(err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var (
				card       domain.SessionCard
				difficulty string
			)
			if err := rows.Scan(
				&card.ID,
				&card.SessionID,
				&card.Front,
				&card.Back,
				&card.AdditionalInfo,
				&difficulty,
				&card.Position,
				&card.CreatedAt,
			); err != nil {
				return err
			}
			card.Difficulty = domain.ParseCardDifficulty(difficulty)
			cards = append(cards, card)
		}
		return rows.Err()
	})
	if err != nil {
		log.Error("failed to load session cards",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, err
	}

	return cards, nil
}

// Delete implements store.SessionStore.Delete.
// Child cards are removed by the ON DELETE CASCADE foreign key in the same statement.
func (s *PostgresSessionStore) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Delete("sessions").
		Where(squirrel.Eq{"id": sessionID.String(), "user_id": userID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build session delete: %w", err)
	}

	err = withUserScope(ctx, s.db, userID, func(ctx context.Context, q store.DBTX) error {
		result, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(result, store.ErrSessionNotFound)
	})
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			log.Debug("session not found for delete",
				slog.String("session_id", sessionID.String()),
				slog.String("user_id", userID.String()))
			return err
		}
		log.Error("failed to delete session",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return err
	}

	log.Info("session deleted successfully",
		slog.String("session_id", sessionID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		session    domain.Session
		difficulty string
	)
	if err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Topic,
		&difficulty,
		&session.CardCount,
		&session.CreatedAt,
	); err != nil {
		return nil, err
	}
	session.Difficulty = domain.RequestDifficulty(difficulty)
	return &session, nil
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
