package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/store"
)

// TokenPair is issued on successful authentication.
type TokenPair struct {
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AccountService registers users and issues tokens.
type AccountService struct {
	db            *sql.DB
	users         store.UserStore
	profiles      store.ProfileStore
	jwt           auth.JWTService
	hasher        auth.PasswordHasher
	tokenLifetime time.Duration
	logger        *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(
	db *sql.DB,
	users store.UserStore,
	profiles store.ProfileStore,
	jwt auth.JWTService,
	hasher auth.PasswordHasher,
	tokenLifetime time.Duration,
	logger *slog.Logger,
) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		db:            db,
		users:         users,
		profiles:      profiles,
		jwt:           jwt,
		hasher:        hasher,
		tokenLifetime: tokenLifetime,
		logger:        logger.With(slog.String("component", "account_service")),
	}
}

// Register creates the user and their profile in one transaction and signs them in.
func (s *AccountService) Register(
	ctx context.Context,
	email, password, fullName string,
) (*TokenPair, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, err
	}

	user.HashedPassword, err = s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.profiles.WithTx(tx).Create(ctx, domain.NewProfile(user, fullName))
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("registration with existing email")
		} else {
			s.logger.Error("failed to register user", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", slog.String("user_id", user.ID.String()))
	return s.issue(ctx, user.ID)
}

// Login verifies credentials and issues a new token pair.
func (s *AccountService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return s.issue(ctx, user.ID)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return s.issue(ctx, claims.UserID)
}

func (s *AccountService) issue(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := s.jwt.GenerateToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().UTC().Add(s.tokenLifetime),
	}, nil
}
