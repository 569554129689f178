package eval

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/embedeval/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResultsCSV(t *testing.T) {
	dir := t.TempDir()
	path := ResultsPath(dir, "baseline")

	results := []core.QueryResult{
		{QueryID: "q1", Expected: "d1", Retrieved: []string{"d1", "d2"}, Hit: true},
		{QueryID: "q2", Expected: "d2", Retrieved: []string{"d1"}, Hit: false},
	}
	require.NoError(t, WriteResultsCSV(path, results))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"query_id", "expected", "retrieved", "hit"}, rows[0])
	assert.Equal(t, []string{"q1", "d1", "d1;d2", "true"}, rows[1])
	assert.Equal(t, []string{"q2", "d2", "d1", "false"}, rows[2])
}

func TestWriteResultsCSVCreatesDirectory(t *testing.T) {
	path := ResultsPath(filepath.Join(t.TempDir(), "nested", "results"), "run")
	require.NoError(t, WriteResultsCSV(path, nil))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteSummaryCSV(t *testing.T) {
	path := SummaryPath(t.TempDir())

	summaries := []Summary{
		{Label: "tuned", Provider: "local/model", Total: 4, Hits: 3, HitRate: 0.75},
		{Label: "baseline", Provider: "openai/embeddinggemma", Total: 4, Hits: 2, HitRate: 0.5},
	}
	require.NoError(t, WriteSummaryCSV(path, summaries))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"label", "provider", "total", "hits", "hit_rate"}, rows[0])
	assert.Equal(t, []string{"tuned", "local/model", "4", "3", "0.7500"}, rows[1])
	assert.Equal(t, []string{"baseline", "openai/embeddinggemma", "4", "2", "0.5000"}, rows[2])
}

func TestReportPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "baseline_results.csv"), ResultsPath("out", "baseline"))
	assert.Equal(t, filepath.Join("out", "summary.csv"), SummaryPath("out"))
}
