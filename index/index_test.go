package index

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/poiesic/embedeval/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// axisEmbedder maps known texts onto fixed unit vectors so similarity
// ordering is fully controlled by the test.
func axisEmbedder(vectors map[string][]float32) *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	lookup := func(text string) []float32 {
		if v, ok := vectors[text]; ok {
			return v
		}
		return []float32{0, 0, 1}
	}
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return lookup(text), nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, t := range texts {
			out[i] = lookup(t)
		}
		return out, nil
	}
	return embedder
}

func TestBuildRequiresEmbedder(t *testing.T) {
	_, err := Build(context.Background(), nil, map[string]string{})
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestBuildEmptyCorpus(t *testing.T) {
	idx, err := Build(context.Background(), mock.NewMockEmbedder(), map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Size())

	matches, err := idx.Query(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestQueryRanksBySimilarity(t *testing.T) {
	embedder := axisEmbedder(map[string][]float32{
		"cats are mammals":             {1, 0, 0},
		"stocks rose today":            {0, 1, 0},
		"what kind of animal is a cat": {0.95, 0.05, 0},
	})

	corpus := map[string]string{
		"d1": "cats are mammals",
		"d2": "stocks rose today",
	}

	idx, err := Build(context.Background(), embedder, corpus)
	require.NoError(t, err)
	require.Equal(t, 2, idx.Size())

	t.Run("top-1 returns the nearest document", func(t *testing.T) {
		matches, err := idx.Query(context.Background(), "what kind of animal is a cat", 1)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "d1", matches[0].DocID)
		assert.Equal(t, "cats are mammals", matches[0].Content)
	})

	t.Run("k is capped at index size", func(t *testing.T) {
		matches, err := idx.Query(context.Background(), "what kind of animal is a cat", 10)
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("results ordered by similarity", func(t *testing.T) {
		matches, err := idx.Query(context.Background(), "what kind of animal is a cat", 2)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "d1", matches[0].DocID)
		assert.Equal(t, "d2", matches[1].DocID)
		assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
	})

	t.Run("rejects non-positive k", func(t *testing.T) {
		_, err := idx.Query(context.Background(), "query", 0)
		assert.Error(t, err)
	})
}

func TestBuildBatchesWholeCorpus(t *testing.T) {
	corpus := make(map[string]string)
	for i := 0; i < 10; i++ {
		corpus[string(rune('a'+i))] = "document " + string(rune('a'+i))
	}

	idx, err := Build(context.Background(), mock.NewMockEmbedder(), corpus,
		WithBatchSize(3), WithPoolSize(2))
	require.NoError(t, err)
	assert.Equal(t, 10, idx.Size())
}

func TestBuildSurfacesEmbeddingFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	boom := errors.New("embedding service unreachable")
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, boom
	}

	_, err := Build(context.Background(), embedder, map[string]string{"d1": "text"})
	assert.ErrorIs(t, err, boom)
}

func TestBuildRejectsInvalidBatchSize(t *testing.T) {
	_, err := Build(context.Background(), mock.NewMockEmbedder(), nil, WithBatchSize(0))
	assert.Error(t, err)
}

func TestProgressTracker(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 5)

	tracker.Start()
	tracker.Increment(5)
	tracker.Increment(5)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "10/10")
	assert.Contains(t, output, "100.0%")
}

func TestProgressTrackerIgnoredBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Increment(5)
	tracker.Finish()
	assert.Empty(t, buf.String())
}
