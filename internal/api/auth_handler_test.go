package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenPair(userID uuid.UUID) *service.TokenPair {
	return &service.TokenPair{
		UserID:       userID,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	accounts := &MockAccountService{
		RegisterFn: func(_ context.Context, email, password, fullName string) (*service.TokenPair, error) {
			switch email {
			case "taken@example.com":
				return nil, store.ErrEmailExists
			case "weird@example.com":
				return nil, domain.ErrInvalidEmail
			}
			assert.Equal(t, "Ada Lovelace", fullName)
			return tokenPair(userID), nil
		},
	}
	handler := NewAuthHandler(accounts, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"valid registration", `{"email":"ada@example.com","password":"correct-horse-battery","full_name":"Ada Lovelace"}`, http.StatusCreated, ""},
		{"invalid email", `{"email":"invalid-email","password":"correct-horse-battery"}`, http.StatusBadRequest, "Invalid email: invalid email format"},
		{"password too short", `{"email":"ada@example.com","password":"short"}`, http.StatusBadRequest, "Invalid password: too short"},
		{"missing email", `{"password":"correct-horse-battery"}`, http.StatusBadRequest, "Invalid email: required field"},
		{"email exists", `{"email":"taken@example.com","password":"correct-horse-battery"}`, http.StatusConflict, "Email already exists"},
		{"domain rejects email", `{"email":"weird@example.com","password":"correct-horse-battery"}`, http.StatusBadRequest, "Invalid email format"},
		{"empty body", ``, http.StatusBadRequest, "Request body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			handler.Register(rr, newRequest(http.MethodPost, "/api/auth/register", tt.body, uuid.Nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var resp AuthResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, userID, resp.UserID)
				assert.Equal(t, "access-token", resp.AccessToken)
				assert.Equal(t, "refresh-token", resp.RefreshToken)
				assert.Equal(t, "2026-10-16T12:00:00Z", resp.ExpiresAt)
				return
			}
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	accounts := &MockAccountService{
		LoginFn: func(_ context.Context, email, password string) (*service.TokenPair, error) {
			if password != "correct-horse-battery" {
				return nil, auth.ErrInvalidCredentials
			}
			return tokenPair(userID), nil
		},
	}
	handler := NewAuthHandler(accounts, nil)

	rr := httptest.NewRecorder()
	handler.Login(rr, newRequest(http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"correct-horse-battery"}`, uuid.Nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.Login(rr, newRequest(http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"wrong"}`, uuid.Nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid email or password")
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	accounts := &MockAccountService{
		RefreshFn: func(_ context.Context, token string) (*service.TokenPair, error) {
			switch token {
			case "good-refresh":
				return tokenPair(userID), nil
			case "access-token":
				return nil, auth.ErrWrongTokenType
			}
			return nil, auth.ErrExpiredRefreshToken
		},
	}
	handler := NewAuthHandler(accounts, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid refresh", `{"refresh_token":"good-refresh"}`, http.StatusOK},
		{"access token", `{"refresh_token":"access-token"}`, http.StatusUnauthorized},
		{"expired", `{"refresh_token":"old"}`, http.StatusUnauthorized},
		{"missing token", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			handler.RefreshToken(rr, newRequest(http.MethodPost, "/api/auth/refresh", tt.body, uuid.Nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&MockAccountService{}, nil)

	rr := httptest.NewRecorder()
	handler.Logout(rr, newRequest(http.MethodPost, "/api/auth/logout", "", uuid.New()))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	handler.Logout(rr, newRequest(http.MethodPost, "/api/auth/logout", "", uuid.Nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
