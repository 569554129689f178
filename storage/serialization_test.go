package storage

import (
	"testing"
	"time"

	"github.com/poiesic/embedeval/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRecordSerialization(t *testing.T) {
	record := &core.RunRecord{
		Name:               "baseline",
		Provider:           "openai/embeddinggemma",
		DatasetFingerprint: "abcd1234",
		TopK:               5,
		Results: []core.QueryResult{
			{QueryID: "q1", Expected: "d1", Retrieved: []string{"d1", "d2"}, Hit: true},
			{QueryID: "q2", Expected: "d2", Retrieved: []string{"d3"}, Hit: false},
		},
		HitRate:   0.5,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := MarshalRunRecord(record)
	require.NoError(t, err)

	decoded, err := UnmarshalRunRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestUnmarshalRunRecordMalformed(t *testing.T) {
	_, err := UnmarshalRunRecord([]byte("not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
