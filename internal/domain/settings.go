package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Provider names understood by the generation registry.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// IsKnownProvider reports whether name identifies a supported provider.
func IsKnownProvider(name string) bool {
	return name == ProviderOpenAI || name == ProviderGemini
}

// UserSettings is the per-user configuration record.
// API key fields hold plaintext in memory; stores seal them at rest.
type UserSettings struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	OpenAIAPIKey    string    `json:"-"`
	GeminiAPIKey    string    `json:"-"`
	DefaultProvider string    `json:"default_provider"`
	DefaultModel    string    `json:"default_model"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewUserSettings creates an empty settings record for userID.
func NewUserSettings(userID uuid.UUID) *UserSettings {
	now := time.Now().UTC()
	return &UserSettings{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// APIKeyFor returns the stored key for provider, or "".
func (s *UserSettings) APIKeyFor(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return s.OpenAIAPIKey
	case ProviderGemini:
		return s.GeminiAPIKey
	}
	return ""
}

// SetAPIKey stores key for provider. An empty key clears it; keys may not
// contain whitespace.
func (s *UserSettings) SetAPIKey(provider, key string) error {
	if strings.IndexFunc(key, unicode.IsSpace) >= 0 {
		return NewValidationError("api_key", "must not contain whitespace")
	}
	switch provider {
	case ProviderOpenAI:
		s.OpenAIAPIKey = key
	case ProviderGemini:
		s.GeminiAPIKey = key
	default:
		return NewValidationError("provider", "unknown provider "+provider)
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// SetDefaults updates the default provider and model. Empty values leave
// the current value untouched.
func (s *UserSettings) SetDefaults(provider, model string) error {
	if provider != "" {
		if !IsKnownProvider(provider) {
			return NewValidationError("default_provider", "unknown provider "+provider)
		}
		s.DefaultProvider = provider
	}
	if model != "" {
		s.DefaultModel = model
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// MaskAPIKey returns a display hint such as "sk-...9f3a". Short keys are fully masked.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:3] + "..." + key[len(key)-4:]
}
