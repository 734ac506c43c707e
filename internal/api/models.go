package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=12,max=72"`
	FullName string `json:"full_name" validate:"max=200"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	// ExpiresAt is the RFC 3339 expiry of the access token.
	ExpiresAt string `json:"expires_at"`
}

func authResponseOf(pair *service.TokenPair) AuthResponse {
	return AuthResponse{
		UserID:       pair.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// GenerateRequest defines the payload of POST /api/flashcards/generate.
// Count, difficulty and mode are checked by domain.GenerationRequest.Validate.
type GenerateRequest struct {
	Topic             string `json:"topic"              validate:"required,max=500"`
	Count             int    `json:"count"              validate:"required"`
	Difficulty        string `json:"difficulty"         validate:"required"`
	Category          string `json:"category"           validate:"max=100"`
	AdditionalContext string `json:"additional_context" validate:"max=2000"`
	Mode              string `json:"mode"               validate:"max=32"`
	Provider          string `json:"provider"           validate:"max=32"`
	Model             string `json:"model"              validate:"max=100"`
	// APIKey overrides the saved key for this request only. Never logged.
	APIKey string `json:"api_key" validate:"max=512"`
}

// ToDomain converts the payload into a domain.GenerationRequest.
func (r GenerateRequest) ToDomain() domain.GenerationRequest {
	return domain.GenerationRequest{
		Topic:             r.Topic,
		Count:             r.Count,
		Difficulty:        domain.RequestDifficulty(r.Difficulty),
		Category:          r.Category,
		AdditionalContext: r.AdditionalContext,
		Mode:              domain.GenerationMode(r.Mode),
		Provider:          r.Provider,
		Model:             r.Model,
		APIKey:            r.APIKey,
	}
}

// GenerateResponse is returned by a successful generation. Warning is set
// when the cards could not be saved to the user's history.
type GenerateResponse struct {
	SessionID  *uuid.UUID         `json:"session_id,omitempty"`
	Flashcards []domain.Flashcard `json:"flashcards"`
	Warning    string             `json:"warning,omitempty"`
}

// ExportRequest defines the payload of POST /api/flashcards/export.
type ExportRequest struct {
	Topic      string             `json:"topic"      validate:"max=500"`
	Flashcards []domain.Flashcard `json:"flashcards" validate:"required,min=1"`
}

// SessionListResponse lists the newest sessions first.
type SessionListResponse struct {
	Sessions []domain.Session `json:"sessions"`
}

// SessionCardsResponse holds a session's cards, oldest first.
type SessionCardsResponse struct {
	SessionID  uuid.UUID          `json:"session_id"`
	Flashcards []domain.Flashcard `json:"flashcards"`
}

// UpdateSettingsRequest is a partial update; omitted fields are unchanged
// and "" clears an API key.
type UpdateSettingsRequest struct {
	OpenAIAPIKey    *string `json:"openai_api_key"   validate:"omitempty,max=512"`
	GeminiAPIKey    *string `json:"gemini_api_key"   validate:"omitempty,max=512"`
	DefaultProvider *string `json:"default_provider" validate:"omitempty,max=32"`
	DefaultModel    *string `json:"default_model"    validate:"omitempty,max=100"`
}

func (r UpdateSettingsRequest) toUpdate() service.SettingsUpdate {
	return service.SettingsUpdate{
		OpenAIAPIKey:    r.OpenAIAPIKey,
		GeminiAPIKey:    r.GeminiAPIKey,
		DefaultProvider: r.DefaultProvider,
		DefaultModel:    r.DefaultModel,
	}
}

// UpdateProfileRequest defines the payload of PUT /api/profile.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"max=200"`
}
