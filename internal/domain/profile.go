package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile holds the display details of a user. Its ID is the user ID.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile creates the profile that accompanies a freshly registered user.
func NewProfile(user *User, fullName string) *Profile {
	return &Profile{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  strings.TrimSpace(fullName),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// Rename updates the display name.
func (p *Profile) Rename(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if len(fullName) > 200 {
		return NewValidationError("full_name", "must be at most 200 characters")
	}
	p.FullName = fullName
	p.UpdatedAt = time.Now().UTC()
	return nil
}
