package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxRecentSessions caps the history listing.
const MaxRecentSessions = 10

var (
	// ErrSessionIDEmpty is returned when a session ID is empty.
	ErrSessionIDEmpty = errors.New("session ID cannot be empty")

	// ErrSessionUserIDEmpty is returned when a session has no owner.
	ErrSessionUserIDEmpty = errors.New("session user ID cannot be empty")

	// ErrSessionTopicEmpty is returned when a session has no topic.
	ErrSessionTopicEmpty = errors.New("session topic cannot be empty")
)

// Session records one successful generation for one user.
type Session struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	Topic      string            `json:"topic"`
	Difficulty RequestDifficulty `json:"difficulty"`
	CardCount  int               `json:"card_count"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewSession creates a Session for the given owner and generation request.
func NewSession(userID uuid.UUID, topic string, difficulty RequestDifficulty, cardCount int) (*Session, error) {
	s := &Session{
		ID:         uuid.New(),
		UserID:     userID,
		Topic:      strings.TrimSpace(topic),
		Difficulty: difficulty,
		CardCount:  cardCount,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the Session has valid data.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}
	if s.UserID == uuid.Nil {
		return ErrSessionUserIDEmpty
	}
	if s.Topic == "" {
		return ErrSessionTopicEmpty
	}
	return nil
}

// SessionCard is the persisted form of a Flashcard inside a Session.
type SessionCard struct {
	ID             uuid.UUID      `json:"id"`
	SessionID      uuid.UUID      `json:"session_id"`
	Front          string         `json:"front"`
	Back           string         `json:"back"`
	AdditionalInfo string         `json:"additional_info"`
	Difficulty     CardDifficulty `json:"difficulty"`
	Position       int            `json:"position"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewSessionCards maps flashcards onto rows of the given session, keeping
// their order in Position. Card ids that are not UUIDs are replaced.
func NewSessionCards(sessionID uuid.UUID, cards []Flashcard, createdAt time.Time) []SessionCard {
	rows := make([]SessionCard, 0, len(cards))
	for i, c := range cards {
		id, err := uuid.Parse(c.ID)
		if err != nil {
			id = uuid.New()
		}
		rows = append(rows, SessionCard{
			ID:             id,
			SessionID:      sessionID,
			Front:          c.Front,
			Back:           c.Back,
			AdditionalInfo: c.AdditionalInfo,
			Difficulty:     c.Difficulty,
			Position:       i,
			CreatedAt:      createdAt,
		})
	}
	return rows
}

// Flashcard maps a stored row back onto the canonical card shape.
func (sc SessionCard) Flashcard() Flashcard {
	return Flashcard{
		ID:             sc.ID.String(),
		Front:          sc.Front,
		Back:           sc.Back,
		AdditionalInfo: sc.AdditionalInfo,
		Difficulty:     sc.Difficulty,
	}
}

// FlashcardsFromSessionCards converts rows in order.
func FlashcardsFromSessionCards(rows []SessionCard) []Flashcard {
	cards := make([]Flashcard, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, r.Flashcard())
	}
	return cards
}
