package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountFixture struct {
	svc      *AccountService
	users    *MockUserStore
	profiles *MockProfileStore
	jwt      auth.JWTService
	hasher   auth.PasswordHasher
	sqlMock  sqlmock.Sqlmock
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	jwtSvc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "account-test-secret-at-least-32-chars",
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	f := &accountFixture{
		users:    &MockUserStore{},
		profiles: &MockProfileStore{},
		jwt:      jwtSvc,
		hasher:   auth.NewBcryptHasher(4),
		sqlMock:  sqlMock,
	}
	f.svc = NewAccountService(db, f.users, f.profiles, f.jwt, f.hasher, 15*time.Minute, nil)
	return f
}

func TestAccountService_Register(t *testing.T) {
	f := newAccountFixture(t)

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" && u.Password == "" &&
			f.hasher.Compare(u.HashedPassword, "a-very-long-password") == nil
	})).Return(nil).Once()
	f.profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.Email == "new@example.com" && p.FullName == "New Learner"
	})).Return(nil).Once()

	pair, err := f.svc.Register(context.Background(), " New@Example.com", "a-very-long-password", "New Learner")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := f.jwt.ValidateToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, pair.UserID, claims.UserID)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestAccountService_RegisterDuplicateRollsBack(t *testing.T) {
	f := newAccountFixture(t)

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()
	f.users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

	_, err := f.svc.Register(context.Background(), "dup@example.com", "a-very-long-password", "")
	assert.ErrorIs(t, err, store.ErrEmailExists)
	f.profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestAccountService_RegisterValidation(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.Register(context.Background(), "not-an-email", "a-very-long-password", "")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = f.svc.Register(context.Background(), "ok@example.com", "short", "")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestAccountService_Login(t *testing.T) {
	f := newAccountFixture(t)

	hashed, err := f.hasher.Hash("a-very-long-password")
	require.NoError(t, err)
	user := &domain.User{ID: uuid.New(), Email: "learner@example.com", HashedPassword: hashed}

	f.users.On("GetByEmail", mock.Anything, "learner@example.com").Return(user, nil)
	f.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, store.ErrUserNotFound)
	f.users.On("GetByEmail", mock.Anything, "broken@example.com").Return(nil, errors.New("db down"))

	pair, err := f.svc.Login(context.Background(), "learner@example.com", "a-very-long-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, pair.UserID)

	_, err = f.svc.Login(context.Background(), "learner@example.com", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), "broken@example.com", "whatever")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAccountService_Refresh(t *testing.T) {
	f := newAccountFixture(t)
	userID := uuid.New()

	refresh, err := f.jwt.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)
	access, err := f.jwt.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	f.users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

	pair, err := f.svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, pair.UserID)

	_, err = f.svc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)

	deleted := uuid.New()
	orphan, err := f.jwt.GenerateRefreshToken(context.Background(), deleted)
	require.NoError(t, err)
	f.users.On("GetByID", mock.Anything, deleted).Return(nil, store.ErrUserNotFound)

	_, err = f.svc.Refresh(context.Background(), orphan)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestProfileService_Rename(t *testing.T) {
	profiles := &MockProfileStore{}
	svc := NewProfileService(profiles)
	userID := uuid.New()

	profiles.On("Get", mock.Anything, userID).
		Return(&domain.Profile{ID: userID, Email: "a@example.com", FullName: "Old"}, nil)
	profiles.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.FullName == "New Name"
	})).Return(nil).Once()

	profile, err := svc.Rename(context.Background(), userID, "  New Name ")
	require.NoError(t, err)
	assert.Equal(t, "New Name", profile.FullName)
	profiles.AssertExpectations(t)
}
