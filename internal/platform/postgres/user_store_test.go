package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockUserStore(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log, _ := logger.NewTestLogger(t)
	return NewPostgresUserStore(db, log), mock
}

func TestUserStore_Create(t *testing.T) {
	user, err := domain.NewUser("learner@example.com", "a-long-enough-password")
	require.NoError(t, err)

	t.Run("requires hash", func(t *testing.T) {
		s, _ := newMockUserStore(t)
		assert.ErrorIs(t, s.Create(context.Background(), user), domain.ErrEmptyHashedPassword)
	})

	user.HashedPassword = "$2a$10$hash"

	t.Run("success", func(t *testing.T) {
		s, mock := newMockUserStore(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(user.ID.String(), "learner@example.com", "$2a$10$hash", user.CreatedAt, user.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		s, mock := newMockUserStore(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		assert.ErrorIs(t, s.Create(context.Background(), user), store.ErrEmailExists)
	})
}

func TestUserStore_GetByEmail(t *testing.T) {
	s, mock := newMockUserStore(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("learner@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at", "updated_at"}).
			AddRow(id.String(), "learner@example.com", "hash", now, now))

	user, err := s.GetByEmail(context.Background(), " Learner@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hash", user.HashedPassword)
	assert.NoError(t, mock.ExpectationsWereMet())

	s, mock = newMockUserStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = s.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
