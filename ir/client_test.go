package ir

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/poiesic/embedeval/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalDataset() *core.Dataset {
	return &core.Dataset{
		Corpus:       map[string]string{"d1": "cats are mammals"},
		Queries:      map[string]string{"q1": "what is a cat"},
		RelevantDocs: map[string][]string{"q1": {"d1"}},
	}
}

func TestNewClient(t *testing.T) {
	t.Run("valid host", func(t *testing.T) {
		client, err := NewClient("http://localhost:9000/")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000", client.host)
	})

	t.Run("empty host", func(t *testing.T) {
		_, err := NewClient("  ")
		assert.Equal(t, ErrHostRequired, err)
	})
}

func TestClientRun(t *testing.T) {
	var received evaluationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/evaluate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(evaluationResponse{
			Metrics: Metrics{"accuracy@1": 0.8, "mrr@10": 0.65},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	metrics, err := client.Run(context.Background(), evalDataset(), "models/tuned", "run-a")
	require.NoError(t, err)

	assert.Equal(t, "run-a", received.RunName)
	assert.Equal(t, "models/tuned", received.Model)
	assert.Equal(t, "cats are mammals", received.Corpus["d1"])
	assert.Equal(t, []string{"d1"}, received.RelevantDocs["q1"])

	assert.Equal(t, 0.8, metrics["accuracy@1"])
	assert.Equal(t, 0.65, metrics["mrr@10"])
}

func TestClientRunServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Run(context.Background(), evalDataset(), "models/missing", "run-a")
	assert.ErrorIs(t, err, ErrEvaluationFailed)
	assert.Contains(t, err.Error(), "model not found")
}

func TestClientRunUnreachableService(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = client.Run(context.Background(), evalDataset(), "models/tuned", "run-a")
	assert.ErrorIs(t, err, ErrEvaluationFailed)
}

func TestClientRunValidation(t *testing.T) {
	client, err := NewClient("http://localhost:9000")
	require.NoError(t, err)

	t.Run("empty model reference", func(t *testing.T) {
		_, err := client.Run(context.Background(), evalDataset(), "", "run-a")
		assert.Equal(t, ErrModelRefRequired, err)
	})

	t.Run("empty run name", func(t *testing.T) {
		_, err := client.Run(context.Background(), evalDataset(), "models/tuned", "")
		assert.Equal(t, core.ErrEmptyRunName, err)
	})

	t.Run("invalid dataset", func(t *testing.T) {
		ds := evalDataset()
		delete(ds.RelevantDocs, "q1")
		_, err := client.Run(context.Background(), ds, "models/tuned", "run-a")
		assert.Error(t, err)
	})
}

func TestMetricsNames(t *testing.T) {
	m := Metrics{"ndcg@10": 0.7, "accuracy@1": 0.8, "mrr@10": 0.6}
	assert.Equal(t, []string{"accuracy@1", "mrr@10", "ndcg@10"}, m.Names())
}

func TestWriteMetricsCSV(t *testing.T) {
	path := MetricsPath(t.TempDir(), "run-a")
	metrics := Metrics{"mrr@10": 0.65, "accuracy@1": 0.8}
	require.NoError(t, WriteMetricsCSV(path, "run-a", metrics))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"run_name", "accuracy@1", "mrr@10"}, rows[0])
	assert.Equal(t, []string{"run-a", "0.800000", "0.650000"}, rows[1])
}
