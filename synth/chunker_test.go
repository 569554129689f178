package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentenceChunker(t *testing.T) {
	chunk := SentenceChunker(2)

	t.Run("groups sentences", func(t *testing.T) {
		chunks, err := chunk("One. Two. Three. Four. Five.")
		require.NoError(t, err)
		assert.Equal(t, []string{"One. Two.", "Three. Four.", "Five."}, chunks)
	})

	t.Run("handles mixed punctuation", func(t *testing.T) {
		chunks, err := chunk("Really? Yes! Fine.")
		require.NoError(t, err)
		assert.Equal(t, []string{"Really? Yes!", "Fine."}, chunks)
	})

	t.Run("empty text", func(t *testing.T) {
		chunks, err := chunk("   ")
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("invalid chunk size", func(t *testing.T) {
		_, err := SentenceChunker(0)("text")
		assert.Error(t, err)
	})
}

func TestParagraphChunker(t *testing.T) {
	chunk := ParagraphChunker()

	chunks, err := chunk("First paragraph.\n\nSecond paragraph.\n\n\n\nThird.")
	require.NoError(t, err)
	assert.Equal(t, []string{"First paragraph.", "Second paragraph.", "Third."}, chunks)
}
