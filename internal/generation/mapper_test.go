package generation_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAndMapSingleCard(t *testing.T) {
	t.Parallel()

	raw, err := generation.Normalize(`{"flashcards":[{"front":"Hund","back":"dog","difficulty":"easy"}]}`)
	require.NoError(t, err)

	cards, err := generation.MapCards(domain.ModeGeneric, raw)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	c := cards[0]
	assert.Equal(t, "Hund", c.Front)
	assert.Equal(t, "dog", c.Back)
	assert.Equal(t, "", c.AdditionalInfo)
	assert.Equal(t, domain.CardDifficultyEasy, c.Difficulty)
	_, err = uuid.Parse(c.ID)
	assert.NoError(t, err, "cards get locally generated UUIDs")
}

func TestMapCardsGeneric(t *testing.T) {
	t.Parallel()

	raw := []generation.RawCard{
		{"front": " What is a goroutine? ", "back": "A lightweight thread", "additional_info": "Started with go", "difficulty": "HARD"},
		{"front": "Zero value of int", "back": 0.0, "difficulty": "impossible"},
		{"front": "Missing back"},
		{"back": "Missing front"},
		{"front": "   ", "back": "blank front"},
		{"id": "provider-id", "front": "Closed channel receive", "back": true},
	}

	cards, err := generation.MapCards(domain.ModeGeneric, raw)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, "What is a goroutine?", cards[0].Front)
	assert.Equal(t, "Started with go", cards[0].AdditionalInfo)
	assert.Equal(t, domain.CardDifficultyHard, cards[0].Difficulty)

	assert.Equal(t, "0", cards[1].Back)
	assert.Equal(t, domain.CardDifficultyMedium, cards[1].Difficulty, "unknown difficulty defaults to medium")

	assert.Equal(t, "true", cards[2].Back)
	assert.NotEqual(t, "provider-id", cards[2].ID, "provider ids are ignored")
}

func TestMapCardsVocabulary(t *testing.T) {
	t.Parallel()

	raw := []generation.RawCard{
		{"german_word": "der Hund", "english_meaning": "the dog", "example_sentence": "Der Hund bellt."},
		{"front": "die Katze", "back": "the cat", "additional_info": "Die Katze schläft."},
		{"german_word": "das Pferd", "back": "the horse", "difficulty": "medium"},
		{"english_meaning": "the bird", "example_sentence": "no front at all"},
	}

	cards, err := generation.MapCards(domain.ModeVocabulary, raw)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, "der Hund", cards[0].Front)
	assert.Equal(t, "the dog", cards[0].Back)
	assert.Equal(t, "Der Hund bellt.", cards[0].AdditionalInfo)

	assert.Equal(t, "die Katze", cards[1].Front)
	assert.Equal(t, "Die Katze schläft.", cards[1].AdditionalInfo)

	assert.Equal(t, "das Pferd", cards[2].Front)
	assert.Equal(t, "the horse", cards[2].Back)
}

func TestMapCardsGenericIgnoresVocabularyKeys(t *testing.T) {
	t.Parallel()

	_, err := generation.MapCards(domain.ModeGeneric, []generation.RawCard{
		{"german_word": "der Hund", "english_meaning": "the dog"},
	})
	require.ErrorIs(t, err, generation.ErrEmptyResult)
}

func TestMapCardsEmptyResult(t *testing.T) {
	t.Parallel()

	tests := map[string][]generation.RawCard{
		"no cards":           nil,
		"only card unusable": {{"back": "dog", "difficulty": "easy"}},
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			cards, err := generation.MapCards(domain.ModeVocabulary, raw)
			require.ErrorIs(t, err, generation.ErrEmptyResult)
			assert.Nil(t, cards)
		})
	}
}

func TestMapCardsUniqueIDs(t *testing.T) {
	t.Parallel()

	raw := make([]generation.RawCard, 25)
	for i := range raw {
		raw[i] = generation.RawCard{"id": "1", "front": "same", "back": "same"}
	}

	cards, err := generation.MapCards(domain.ModeGeneric, raw)
	require.NoError(t, err)

	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}
