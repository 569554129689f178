package eval

import (
	"testing"
	"time"

	"github.com/poiesic/embedeval/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labeledResults(hits, misses int) []core.QueryResult {
	var results []core.QueryResult
	for i := 0; i < hits; i++ {
		results = append(results, core.QueryResult{QueryID: "h", Expected: "d", Retrieved: []string{"d"}, Hit: true})
	}
	for i := 0; i < misses; i++ {
		results = append(results, core.QueryResult{QueryID: "m", Expected: "d", Retrieved: []string{"x"}, Hit: false})
	}
	return results
}

func TestHitRate(t *testing.T) {
	t.Run("all hits", func(t *testing.T) {
		rate, err := HitRate(labeledResults(3, 0))
		require.NoError(t, err)
		assert.Equal(t, 1.0, rate)
	})

	t.Run("mixed", func(t *testing.T) {
		rate, err := HitRate(labeledResults(1, 3))
		require.NoError(t, err)
		assert.Equal(t, 0.25, rate)
	})

	t.Run("all misses", func(t *testing.T) {
		rate, err := HitRate(labeledResults(0, 2))
		require.NoError(t, err)
		assert.Equal(t, 0.0, rate)
	})

	t.Run("empty results are undefined", func(t *testing.T) {
		_, err := HitRate(nil)
		assert.ErrorIs(t, err, ErrNoResults)
	})
}

func TestSummarize(t *testing.T) {
	summary, err := Summarize("baseline", "openai/embeddinggemma", labeledResults(2, 2))
	require.NoError(t, err)

	assert.Equal(t, "baseline", summary.Label)
	assert.Equal(t, "openai/embeddinggemma", summary.Provider)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Hits)
	assert.Equal(t, 0.5, summary.HitRate)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize("baseline", "mock", nil)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSummarizeRunMatchesSummarize(t *testing.T) {
	// The same results must yield the same aggregate whether summarized
	// live or from a persisted record.
	results := labeledResults(3, 1)
	live, err := Summarize("run-a", "mock", results)
	require.NoError(t, err)

	record := &core.RunRecord{
		Name:      "run-a",
		Provider:  "mock",
		TopK:      5,
		Results:   results,
		HitRate:   live.HitRate,
		CreatedAt: time.Now(),
	}
	stored := SummarizeRun(record)
	assert.Equal(t, live, stored)
}

func TestCompare(t *testing.T) {
	a := Summary{Label: "alpha", HitRate: 0.5}
	b := Summary{Label: "beta", HitRate: 0.9}
	c := Summary{Label: "gamma", HitRate: 0.5}

	merged := Compare(a, b, c)

	require.Len(t, merged, 3)
	assert.Equal(t, "beta", merged[0].Label)
	assert.Equal(t, "alpha", merged[1].Label)
	assert.Equal(t, "gamma", merged[2].Label)
}
