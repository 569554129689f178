package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetValidate(t *testing.T) {
	t.Run("valid dataset", func(t *testing.T) {
		assert.NoError(t, testDataset().Validate())
	})

	t.Run("empty corpus and queries are valid", func(t *testing.T) {
		ds := &Dataset{}
		assert.NoError(t, ds.Validate())
	})

	t.Run("ground truth may be absent from corpus", func(t *testing.T) {
		ds := testDataset()
		ds.RelevantDocs["q1"] = []string{"d3"}
		assert.NoError(t, ds.Validate())
	})

	t.Run("query without relevant docs", func(t *testing.T) {
		ds := testDataset()
		delete(ds.RelevantDocs, "q1")
		err := ds.Validate()
		assert.ErrorIs(t, err, ErrInvalidDataset)
		assert.ErrorIs(t, err, ErrMissingGroundTruth)
	})

	t.Run("empty document identifier", func(t *testing.T) {
		ds := testDataset()
		ds.Corpus[""] = "orphan text"
		assert.ErrorIs(t, ds.Validate(), ErrEmptyDocID)
	})

	t.Run("empty query identifier", func(t *testing.T) {
		ds := testDataset()
		ds.Queries[""] = "orphan query"
		ds.RelevantDocs[""] = []string{"d1"}
		assert.ErrorIs(t, ds.Validate(), ErrEmptyQueryID)
	})

	t.Run("empty relevant document identifier", func(t *testing.T) {
		ds := testDataset()
		ds.RelevantDocs["q1"] = []string{""}
		assert.ErrorIs(t, ds.Validate(), ErrEmptyDocID)
	})
}

func TestRunRecordValidate(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		record := &RunRecord{Name: "baseline", TopK: 5}
		assert.NoError(t, record.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		record := &RunRecord{TopK: 5}
		assert.ErrorIs(t, record.Validate(), ErrEmptyRunName)
	})

	t.Run("non-positive top-k", func(t *testing.T) {
		record := &RunRecord{Name: "baseline"}
		assert.Error(t, record.Validate())
	})
}
