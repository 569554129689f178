package synth

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/embedeval/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		g, err := NewGenerator(mock.NewMockQuestionGenerator(), WithQuestionsPerChunk(3))
		require.NoError(t, err)
		assert.Equal(t, 3, g.perChunk)
	})

	t.Run("nil question generator", func(t *testing.T) {
		_, err := NewGenerator(nil)
		assert.Equal(t, ErrGeneratorRequired, err)
	})

	t.Run("invalid questions per chunk", func(t *testing.T) {
		_, err := NewGenerator(mock.NewMockQuestionGenerator(), WithQuestionsPerChunk(0))
		assert.Error(t, err)
	})

	t.Run("nil chunker", func(t *testing.T) {
		_, err := NewGenerator(mock.NewMockQuestionGenerator(), WithChunker(nil))
		assert.Error(t, err)
	})
}

func TestGenerate(t *testing.T) {
	questions := mock.NewMockQuestionGenerator()
	g, err := NewGenerator(questions, WithChunker(SentenceChunker(1)), WithQuestionsPerChunk(2))
	require.NoError(t, err)

	ds, err := g.Generate(context.Background(), []string{"Cats are mammals. Stocks rose today."})
	require.NoError(t, err)

	assert.Len(t, ds.Corpus, 2)
	assert.Len(t, ds.Queries, 4)
	assert.Len(t, ds.RelevantDocs, 4)
	assert.Equal(t, 2, questions.CallCount())

	// Every query points at exactly one corpus document.
	for queryID, relevant := range ds.RelevantDocs {
		require.Len(t, relevant, 1, "query %s", queryID)
		assert.Contains(t, ds.Corpus, relevant[0])
	}

	require.NoError(t, ds.Validate())
}

func TestGenerateDeterministicIDs(t *testing.T) {
	sources := []string{"Cats are mammals. Dogs are loyal."}

	build := func() map[string]string {
		g, err := NewGenerator(mock.NewMockQuestionGenerator(), WithChunker(SentenceChunker(1)))
		require.NoError(t, err)
		ds, err := g.Generate(context.Background(), sources)
		require.NoError(t, err)
		return ds.Queries
	}

	assert.Equal(t, build(), build())
}

func TestGenerateQuestionFailurePropagates(t *testing.T) {
	questions := mock.NewMockQuestionGenerator()
	questions.GenerateQuestionsFunc = func(ctx context.Context, text string, n int) ([]string, error) {
		return nil, fmt.Errorf("model unavailable")
	}

	g, err := NewGenerator(questions)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), []string{"Some text."})
	assert.ErrorContains(t, err, "model unavailable")
}

func TestGenerateNoChunks(t *testing.T) {
	g, err := NewGenerator(mock.NewMockQuestionGenerator())
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), []string{"  ", ""})
	assert.Equal(t, ErrNoChunks, err)
}
