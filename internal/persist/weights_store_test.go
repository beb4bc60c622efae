package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"botspot/schema"
)

func newTestWeightsStore(t *testing.T) *WeightsStoreImpl {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.db")
	store, err := NewWeightsStore(schema.SQLiteBackend, path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*WeightsStoreImpl)
}

// TestWeightsStoreRoundTrip verifies put/get preserves weights and score.
func TestWeightsStoreRoundTrip(t *testing.T) {
	store := newTestWeightsStore(t)
	weights := schema.EnsembleWeights{Heuristic: 0.55, Model: 0.45, Threshold: 0.48}
	score := 42

	assert.NoError(t, store.PutWeights("en", weights, &score))

	entry, err := store.GetWeights("en")
	assert.NoError(t, err)
	if assert.NotNil(t, entry) {
		assert.Equal(t, "en", entry.Key)
		assert.InDelta(t, 0.55, entry.Weights.Heuristic, 0.0001)
		assert.InDelta(t, 0.45, entry.Weights.Model, 0.0001)
		assert.InDelta(t, 0.48, entry.Weights.Threshold, 0.0001)
		if assert.NotNil(t, entry.Score) {
			assert.Equal(t, 42, *entry.Score)
		}
		assert.False(t, entry.UpdatedAt.IsZero())
	}
}

// TestWeightsStoreNilScore verifies a missing score round-trips as nil.
func TestWeightsStoreNilScore(t *testing.T) {
	store := newTestWeightsStore(t)

	assert.NoError(t, store.PutWeights("pt", schema.DefaultEnsembleWeights(), nil))

	entry, err := store.GetWeights("pt")
	assert.NoError(t, err)
	if assert.NotNil(t, entry) {
		assert.Nil(t, entry.Score)
	}
}

// TestWeightsStoreAbsentKey verifies an unknown key is nil, not an error.
func TestWeightsStoreAbsentKey(t *testing.T) {
	store := newTestWeightsStore(t)

	entry, err := store.GetWeights("missing")

	assert.NoError(t, err)
	assert.Nil(t, entry)
}

// TestWeightsStoreUpsert verifies a second put replaces the first.
func TestWeightsStoreUpsert(t *testing.T) {
	store := newTestWeightsStore(t)
	first := 10
	second := 20

	assert.NoError(t, store.PutWeights("en", schema.EnsembleWeights{Heuristic: 0.5, Model: 0.5, Threshold: 0.45}, &first))
	assert.NoError(t, store.PutWeights("en", schema.EnsembleWeights{Heuristic: 0.7, Model: 0.3, Threshold: 0.5}, &second))

	entries, err := store.ListWeights()
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.InDelta(t, 0.7, entries[0].Weights.Heuristic, 0.0001)
	assert.Equal(t, 20, *entries[0].Score)
}

// TestWeightsStoreListOrdering verifies entries come back ordered by key.
func TestWeightsStoreListOrdering(t *testing.T) {
	store := newTestWeightsStore(t)
	for _, key := range []string{"pt", "default", "en"} {
		assert.NoError(t, store.PutWeights(key, schema.DefaultEnsembleWeights(), nil))
	}

	entries, err := store.ListWeights()

	assert.NoError(t, err)
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"default", "en", "pt"}, keys)
}

// TestWeightsStoreDelete verifies deletion and that missing keys are tolerated.
func TestWeightsStoreDelete(t *testing.T) {
	store := newTestWeightsStore(t)
	assert.NoError(t, store.PutWeights("en", schema.DefaultEnsembleWeights(), nil))

	assert.NoError(t, store.DeleteWeights("en"))
	entry, err := store.GetWeights("en")
	assert.NoError(t, err)
	assert.Nil(t, entry)

	assert.NoError(t, store.DeleteWeights("never-existed"))
}

// TestWeightsStoreStatus verifies entry counts and the last-updated stamp.
func TestWeightsStoreStatus(t *testing.T) {
	store := newTestWeightsStore(t)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.True(t, status.Connected)
	assert.EqualValues(t, 0, status.TotalEntries)

	assert.NoError(t, store.PutWeights("en", schema.DefaultEnsembleWeights(), nil))
	assert.NoError(t, store.PutWeights("pt", schema.DefaultEnsembleWeights(), nil))

	status, err = store.GetStatus()
	assert.NoError(t, err)
	assert.EqualValues(t, 2, status.TotalEntries)
	assert.False(t, status.LastUpdated.IsZero())
}

// TestWeightsStoreNoneBackend verifies the disabled store is a silent no-op.
func TestWeightsStoreNoneBackend(t *testing.T) {
	store, err := NewWeightsStore(schema.NoneBackend, "")
	assert.NoError(t, err)

	assert.NoError(t, store.PutWeights("en", schema.DefaultEnsembleWeights(), nil))

	entry, err := store.GetWeights("en")
	assert.NoError(t, err)
	assert.Nil(t, entry)

	entries, err := store.ListWeights()
	assert.NoError(t, err)
	assert.Nil(t, entries)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}
