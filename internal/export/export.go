// Package export renders flashcard decks as downloadable JSON documents.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/phrazzld/flashdeck/internal/domain"
)

const (
	// ContentType of a rendered Document.
	ContentType = "application/json; charset=utf-8"

	filenamePrefix  = "flashcards"
	fallbackSlug    = "deck"
	maxSlugLength   = 50
	timestampLayout = "20060102-150405"
)

// Document is the exported form of a deck.
type Document struct {
	ExportedAt time.Time          `json:"exported_at"`
	Topic      string             `json:"topic"`
	CardCount  int                `json:"card_count"`
	Flashcards []domain.Flashcard `json:"flashcards"`
}

// NewDocument builds a Document stamped with exportedAt in UTC.
func NewDocument(topic string, cards []domain.Flashcard, exportedAt time.Time) *Document {
	if cards == nil {
		cards = []domain.Flashcard{}
	}
	return &Document{
		ExportedAt: exportedAt.UTC(),
		Topic:      strings.TrimSpace(topic),
		CardCount:  len(cards),
		Flashcards: cards,
	}
}

// Marshal renders the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export document: %w", err)
	}
	return data, nil
}

// Filename returns e.g. "flashcards-spanish-verbs-20261016-142501.json".
func (d *Document) Filename() string {
	return fmt.Sprintf("%s-%s-%s.json", filenamePrefix, Slug(d.Topic), d.ExportedAt.Format(timestampLayout))
}

// ContentDisposition returns the attachment header value for the document.
func (d *Document) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", d.Filename())
}

// Slug reduces topic to lowercase ASCII letters, digits and single dashes.
func Slug(topic string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(topic) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}
