package persist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"botspot/schema"
)

func newTestRunStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*RunStoreImpl)
}

// TestRunStoreLifecycle verifies begin/end round-trips a full run record.
func TestRunStoreLifecycle(t *testing.T) {
	store := newTestRunStore(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Second)
	score := 17

	runID, err := store.BeginRun(start, "window-1", "scan", map[string]any{"workers": 4})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, runID)

	weights := schema.EnsembleWeights{Heuristic: 0.6, Model: 0.4, Threshold: 0.5}
	assert.NoError(t, store.EndRun(runID, end, 900, 12000, 73, string(schema.EnsembleMethod), weights, &score))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	if assert.Len(t, runs, 1) {
		record := runs[0]
		assert.EqualValues(t, 1, record.RunID)
		assert.True(t, record.StartTime.Equal(start))
		if assert.NotNil(t, record.EndTime) {
			assert.True(t, record.EndTime.Equal(end))
		}
		assert.Equal(t, "window-1", record.DatasetID)
		assert.Equal(t, "scan", record.Command)
		assert.EqualValues(t, 900, record.TotalUsers)
		assert.EqualValues(t, 12000, record.TotalPosts)
		assert.EqualValues(t, 73, record.Flagged)
		assert.Equal(t, string(schema.EnsembleMethod), record.Method)
		if assert.NotNil(t, record.Weights) {
			assert.Contains(t, *record.Weights, "0.6")
		}
		if assert.NotNil(t, record.Score) {
			assert.EqualValues(t, 17, *record.Score)
		}
	}
}

// TestRunStoreSequentialIDs verifies run ids increase monotonically.
func TestRunStoreSequentialIDs(t *testing.T) {
	store := newTestRunStore(t)
	now := time.Now().UTC()

	for want := int64(1); want <= 3; want++ {
		runID, err := store.BeginRun(now, "w", "scan", nil)
		assert.NoError(t, err)
		assert.Equal(t, want, runID)
	}
}

// TestRunStoreUnfinishedRun verifies a begun-but-unended run has nil
// completion fields.
func TestRunStoreUnfinishedRun(t *testing.T) {
	store := newTestRunStore(t)

	_, err := store.BeginRun(time.Now().UTC(), "w", "optimize", nil)
	assert.NoError(t, err)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	if assert.Len(t, runs, 1) {
		assert.Nil(t, runs[0].EndTime)
		assert.Nil(t, runs[0].Score)
		assert.EqualValues(t, 0, runs[0].Flagged)
	}
}

// TestRunStoreStatus verifies run counts and first/last run stamps.
func TestRunStoreStatus(t *testing.T) {
	store := newTestRunStore(t)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.True(t, status.Connected)
	assert.EqualValues(t, 0, status.TotalRuns)

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	runID, err := store.BeginRun(first, "w1", "scan", nil)
	assert.NoError(t, err)
	assert.NoError(t, store.EndRun(runID, first.Add(time.Second), 500, 0, 10, "heuristic", schema.HeuristicOnlyWeights(), nil))
	runID, err = store.BeginRun(second, "w2", "scan", nil)
	assert.NoError(t, err)
	assert.NoError(t, store.EndRun(runID, second.Add(time.Second), 400, 0, 9, "heuristic", schema.HeuristicOnlyWeights(), nil))

	status, err = store.GetStatus()
	assert.NoError(t, err)
	assert.EqualValues(t, 2, status.TotalRuns)
	assert.EqualValues(t, 2, status.LastRunID)
	assert.True(t, status.LastRunTime.Equal(second))
	assert.True(t, status.OldestRunTime.Equal(first))
	assert.EqualValues(t, 900, status.TotalUsersScanned)
	assert.EqualValues(t, 2, status.TableSizes[runsTable])
}

// TestRunStoreNoneBackend verifies the disabled store is a silent no-op.
func TestRunStoreNoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	assert.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), "w", "scan", nil)
	assert.NoError(t, err)
	assert.EqualValues(t, 0, runID)

	assert.NoError(t, store.EndRun(0, time.Now(), 0, 0, 0, "", schema.EnsembleWeights{}, nil))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}
