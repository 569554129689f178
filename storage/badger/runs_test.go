package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/embedeval/core"
	"github.com/poiesic/embedeval/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(name string) *core.RunRecord {
	return &core.RunRecord{
		Name:               name,
		Provider:           "mock/deterministic",
		DatasetFingerprint: "abcd1234",
		TopK:               5,
		Results: []core.QueryResult{
			{QueryID: "q1", Expected: "d1", Retrieved: []string{"d1"}, Hit: true},
		},
		HitRate: 1.0,
	}
}

func setupRepo(t *testing.T) storage.RunRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestSaveAndGetRun(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	record := testRecord("baseline")
	require.NoError(t, repo.SaveRun(ctx, record))
	assert.False(t, record.CreatedAt.IsZero(), "SaveRun must stamp CreatedAt")

	loaded, err := repo.GetRun(ctx, "baseline")
	require.NoError(t, err)
	assert.Equal(t, record.Name, loaded.Name)
	assert.Equal(t, record.Provider, loaded.Provider)
	assert.Equal(t, record.Results, loaded.Results)
	assert.Equal(t, record.HitRate, loaded.HitRate)
}

func TestSaveRunOverwrites(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first := testRecord("baseline")
	require.NoError(t, repo.SaveRun(ctx, first))

	second := testRecord("baseline")
	second.HitRate = 0.0
	second.Results[0].Hit = false
	second.Results[0].Retrieved = []string{"d2"}
	require.NoError(t, repo.SaveRun(ctx, second))

	loaded, err := repo.GetRun(ctx, "baseline")
	require.NoError(t, err)
	assert.Equal(t, 0.0, loaded.HitRate)
}

func TestSaveRunPreservesCreatedAt(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	record := testRecord("baseline")
	record.CreatedAt = stamp
	require.NoError(t, repo.SaveRun(ctx, record))

	loaded, err := repo.GetRun(ctx, "baseline")
	require.NoError(t, err)
	assert.True(t, loaded.CreatedAt.Equal(stamp))
}

func TestSaveRunInvalidRecord(t *testing.T) {
	repo := setupRepo(t)

	record := testRecord("")
	err := repo.SaveRun(context.Background(), record)
	assert.Error(t, err)
}

func TestGetRunNotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetRunEmptyName(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetRun(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrEmptyRunName)
}

func TestListRuns(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	t.Run("empty repository", func(t *testing.T) {
		records, err := repo.ListRuns(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("sorted by name", func(t *testing.T) {
		for _, name := range []string{"tuned", "baseline", "mid"} {
			require.NoError(t, repo.SaveRun(ctx, testRecord(name)))
		}

		records, err := repo.ListRuns(ctx)
		require.NoError(t, err)

		require.Len(t, records, 3)
		assert.Equal(t, "baseline", records[0].Name)
		assert.Equal(t, "mid", records[1].Name)
		assert.Equal(t, "tuned", records[2].Name)
	})
}

func TestDeleteRun(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveRun(ctx, testRecord("baseline")))
	require.NoError(t, repo.DeleteRun(ctx, "baseline"))

	_, err := repo.GetRun(ctx, "baseline")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteRunNotFound(t *testing.T) {
	repo := setupRepo(t)

	err := repo.DeleteRun(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
