package generation

import (
	"github.com/phrazzld/flashdeck/internal/domain"
)

// EnvelopeKey is the top-level key under which providers must return cards.
const EnvelopeKey = "flashcards"

// Provider-facing field names.
const (
	FieldFront           = "front"
	FieldBack            = "back"
	FieldAdditionalInfo  = "additional_info"
	FieldDifficulty      = "difficulty"
	FieldGermanWord      = "german_word"
	FieldEnglishMeaning  = "english_meaning"
	FieldExampleSentence = "example_sentence"
)

// FieldMapping lists, for each canonical field, the provider keys to try in order.
// The first key of each list is the one advertised in the prompt.
type FieldMapping struct {
	Front          []string
	Back           []string
	AdditionalInfo []string
	Difficulty     []string
}

// Mappings holds the mapping table per generation mode.
var Mappings = map[domain.GenerationMode]FieldMapping{
	domain.ModeGeneric: {
		Front:          []string{FieldFront},
		Back:           []string{FieldBack},
		AdditionalInfo: []string{FieldAdditionalInfo},
		Difficulty:     []string{FieldDifficulty},
	},
	domain.ModeVocabulary: {
		Front:          []string{FieldGermanWord, FieldFront},
		Back:           []string{FieldEnglishMeaning, FieldBack},
		AdditionalInfo: []string{FieldExampleSentence, FieldAdditionalInfo},
		Difficulty:     []string{FieldDifficulty},
	},
}

// MappingFor returns the table for mode, defaulting to the generic table.
func MappingFor(mode domain.GenerationMode) FieldMapping {
	if m, ok := Mappings[mode]; ok {
		return m
	}
	return Mappings[domain.ModeGeneric]
}
