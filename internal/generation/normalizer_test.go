package generation_test

import (
	"testing"

	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantCards int
		wantErr   error
	}{
		{
			name:      "direct JSON",
			raw:       `{"flashcards":[{"front":"Hund","back":"dog","difficulty":"easy"}]}`,
			wantCards: 1,
		},
		{
			name:      "direct JSON with surrounding whitespace",
			raw:       "\n  {\"flashcards\":[{\"front\":\"a\",\"back\":\"b\"},{\"front\":\"c\",\"back\":\"d\"}]}  \n",
			wantCards: 2,
		},
		{
			name:      "fenced block tagged json",
			raw:       "Here you go:\n```json\n{\"flashcards\":[{\"front\":\"a\",\"back\":\"b\"}]}\n```",
			wantCards: 1,
		},
		{
			name:      "untagged fenced block with trailing prose",
			raw:       "Sure!\n```\n{\"flashcards\":[{\"front\":\"a\",\"back\":\"b\"}]}\n```\nGood luck studying.",
			wantCards: 1,
		},
		{
			name:      "only the first fenced block is used",
			raw:       "```json\n{\"flashcards\":[{\"front\":\"a\",\"back\":\"b\"}]}\n```\n```json\n{\"flashcards\":[]}\n```",
			wantCards: 1,
		},
		{
			name:      "non-object elements are skipped",
			raw:       `{"flashcards":["oops", 3, null, {"front":"a","back":"b"}]}`,
			wantCards: 1,
		},
		{
			name:      "empty array is a valid shape",
			raw:       `{"flashcards":[]}`,
			wantCards: 0,
		},
		{
			name:    "plain prose",
			raw:     "I cannot help with that.",
			wantErr: generation.ErrMalformedResponse,
		},
		{
			name:    "fenced block with invalid JSON",
			raw:     "```json\n{\"flashcards\": [\n```",
			wantErr: generation.ErrMalformedResponse,
		},
		{
			name:    "empty text",
			raw:     "",
			wantErr: generation.ErrMalformedResponse,
		},
		{
			name:    "missing flashcards key",
			raw:     `{"cards":[{"front":"a","back":"b"}]}`,
			wantErr: generation.ErrUnexpectedResponseShape,
		},
		{
			name:    "flashcards is not an array",
			raw:     `{"flashcards":{"front":"a","back":"b"}}`,
			wantErr: generation.ErrUnexpectedResponseShape,
		},
		{
			name:    "top-level array",
			raw:     `[{"front":"a","back":"b"}]`,
			wantErr: generation.ErrUnexpectedResponseShape,
		},
		{
			name:    "fenced block with wrong shape",
			raw:     "```json\n{\"result\":\"ok\"}\n```",
			wantErr: generation.ErrUnexpectedResponseShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cards, err := generation.Normalize(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cards)
				return
			}
			require.NoError(t, err)
			assert.Len(t, cards, tt.wantCards)
		})
	}
}

func TestNormalizeKeepsFieldValues(t *testing.T) {
	t.Parallel()

	cards, err := generation.Normalize(`{"flashcards":[{"front":"Hund","back":"dog","id":7}]}`)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Hund", cards[0]["front"])
	assert.Equal(t, "dog", cards[0]["back"])
	assert.InDelta(t, 7.0, cards[0]["id"], 0)
}
