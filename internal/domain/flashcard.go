package domain

import (
	"strings"

	"github.com/google/uuid"
)

// CardDifficulty is the per-card difficulty reported by the provider.
// It is a different scale from RequestDifficulty and the two are never reconciled.
type CardDifficulty string

const (
	CardDifficultyEasy   CardDifficulty = "easy"
	CardDifficultyMedium CardDifficulty = "medium"
	CardDifficultyHard   CardDifficulty = "hard"
)

// DefaultCardDifficulty is used whenever a card reports no usable difficulty.
const DefaultCardDifficulty = CardDifficultyMedium

// IsValid reports whether d is one of the known card difficulties.
func (d CardDifficulty) IsValid() bool {
	switch d {
	case CardDifficultyEasy, CardDifficultyMedium, CardDifficultyHard:
		return true
	}
	return false
}

// ParseCardDifficulty normalizes s, falling back to DefaultCardDifficulty
// when the value is absent or unrecognized.
func ParseCardDifficulty(s string) CardDifficulty {
	d := CardDifficulty(strings.ToLower(strings.TrimSpace(s)))
	if d.IsValid() {
		return d
	}
	return DefaultCardDifficulty
}

// Flashcard is the canonical card shape shared by generation, export and
// session history.
type Flashcard struct {
	ID             string         `json:"id"`
	Front          string         `json:"front"`
	Back           string         `json:"back"`
	AdditionalInfo string         `json:"additional_info"`
	Difficulty     CardDifficulty `json:"difficulty"`
}

// NewFlashcard builds a Flashcard with a freshly generated id.
// Provider-supplied ids are never used since they are neither unique nor guaranteed.
func NewFlashcard(front, back, additionalInfo string, difficulty CardDifficulty) (Flashcard, error) {
	card := Flashcard{
		ID:             uuid.NewString(),
		Front:          strings.TrimSpace(front),
		Back:           strings.TrimSpace(back),
		AdditionalInfo: strings.TrimSpace(additionalInfo),
		Difficulty:     difficulty,
	}
	if !card.Difficulty.IsValid() {
		card.Difficulty = DefaultCardDifficulty
	}
	if err := card.Validate(); err != nil {
		return Flashcard{}, err
	}
	return card, nil
}

// Validate checks that both sides of the card carry content.
func (c Flashcard) Validate() error {
	var errs ValidationErrors
	if c.Front == "" {
		errs = append(errs, NewValidationError("front", "cannot be empty"))
	}
	if c.Back == "" {
		errs = append(errs, NewValidationError("back", "cannot be empty"))
	}
	return errs.orNil()
}
