package generation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// MapCards converts raw provider cards onto canonical flashcards using the
// mapping table for mode. Cards without both a front and a back value are
// dropped. Every returned card gets a fresh id. ErrEmptyResult is returned
// when nothing usable remains.
func MapCards(mode domain.GenerationMode, raw []RawCard) ([]domain.Flashcard, error) {
	cards, _ := mapCards(mode, raw)
	if len(cards) == 0 {
		return nil, emptyResult(len(raw))
	}
	return cards, nil
}

func emptyResult(received int) error {
	return fmt.Errorf("%w: %d card objects received", ErrEmptyResult, received)
}

// mapCards also reports how many objects were dropped.
func mapCards(mode domain.GenerationMode, raw []RawCard) ([]domain.Flashcard, int) {
	m := MappingFor(mode)
	cards := make([]domain.Flashcard, 0, len(raw))
	dropped := 0
	for _, rc := range raw {
		card, err := domain.NewFlashcard(
			rc.first(m.Front),
			rc.first(m.Back),
			rc.first(m.AdditionalInfo),
			domain.ParseCardDifficulty(rc.first(m.Difficulty)),
		)
		if err != nil {
			dropped++
			continue
		}
		cards = append(cards, card)
	}
	return cards, dropped
}

// first returns the first non-empty string value among keys.
func (rc RawCard) first(keys []string) string {
	for _, k := range keys {
		if s := stringValue(rc[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
