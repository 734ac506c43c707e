package domain

import (
	"fmt"
	"slices"
	"strings"
)

// RequestDifficulty is the difficulty level a user asks for when generating.
type RequestDifficulty string

const (
	DifficultyBeginner     RequestDifficulty = "beginner"
	DifficultyIntermediate RequestDifficulty = "intermediate"
	DifficultyAdvanced     RequestDifficulty = "advanced"
)

// IsValid reports whether d is a known request difficulty.
func (d RequestDifficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// GenerationMode selects the card shape a provider is asked to produce.
type GenerationMode string

const (
	// ModeGeneric asks for front/back/additional_info cards.
	ModeGeneric GenerationMode = "generic"
	// ModeVocabulary asks for german_word/english_meaning/example_sentence cards.
	ModeVocabulary GenerationMode = "vocabulary"
)

// IsValid reports whether m is a known generation mode.
func (m GenerationMode) IsValid() bool {
	return m == ModeGeneric || m == ModeVocabulary
}

// AllowedCardCounts is the fixed set of card counts a request may ask for.
var AllowedCardCounts = []int{5, 10, 15, 20, 25}

// GenerationRequest is built once per generate action and never persisted.
type GenerationRequest struct {
	Topic             string            `json:"topic"`
	Count             int               `json:"count"`
	Difficulty        RequestDifficulty `json:"difficulty"`
	Category          string            `json:"category,omitempty"`
	AdditionalContext string            `json:"additional_context,omitempty"`
	Mode              GenerationMode    `json:"mode,omitempty"`
	Provider          string            `json:"provider,omitempty"`
	Model             string            `json:"model,omitempty"`
	APIKey            string            `json:"-"`
}

// Normalize trims free-text fields and applies the default mode.
func (r *GenerationRequest) Normalize() {
	r.Topic = strings.TrimSpace(r.Topic)
	r.Category = strings.TrimSpace(r.Category)
	r.AdditionalContext = strings.TrimSpace(r.AdditionalContext)
	r.APIKey = strings.TrimSpace(r.APIKey)
	r.Provider = strings.ToLower(strings.TrimSpace(r.Provider))
	r.Model = strings.TrimSpace(r.Model)
	r.Difficulty = RequestDifficulty(strings.ToLower(strings.TrimSpace(string(r.Difficulty))))
	r.Mode = GenerationMode(strings.ToLower(strings.TrimSpace(string(r.Mode))))
	if r.Mode == "" {
		r.Mode = ModeGeneric
	}
}

// Validate rejects requests that must never reach a provider.
// Every returned error satisfies errors.Is(err, ErrValidation).
func (r GenerationRequest) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(r.Topic) == "" {
		errs = append(errs, NewValidationError("topic", "cannot be empty"))
	}
	if strings.TrimSpace(r.APIKey) == "" {
		errs = append(errs, NewValidationError("api_key", "is required"))
	}
	if !slices.Contains(AllowedCardCounts, r.Count) {
		errs = append(errs, NewValidationError("count",
			fmt.Sprintf("must be one of %v", AllowedCardCounts)))
	}
	if !r.Difficulty.IsValid() {
		errs = append(errs, NewValidationError("difficulty",
			"must be one of beginner, intermediate, advanced"))
	}
	if r.Mode != "" && !r.Mode.IsValid() {
		errs = append(errs, NewValidationError("mode", "must be generic or vocabulary"))
	}
	return errs.orNil()
}
