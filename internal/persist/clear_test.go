package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"botspot/schema"
)

// TestClearWeightsSQLite verifies the database file is removed and that a
// missing file is not an error.
func TestClearWeightsSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.db")
	store, err := NewWeightsStore(schema.SQLiteBackend, path)
	assert.NoError(t, err)
	assert.NoError(t, store.PutWeights("en", schema.DefaultEnsembleWeights(), nil))
	assert.NoError(t, store.Close())

	assert.NoError(t, ClearWeights(schema.SQLiteBackend, path, ""))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing again is a no-op.
	assert.NoError(t, ClearWeights(schema.SQLiteBackend, path, ""))
}

// TestClearRunsSQLite verifies run history clearing mirrors weights clearing.
func TestClearRunsSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, path)
	assert.NoError(t, err)
	assert.NoError(t, store.Close())

	assert.NoError(t, ClearRuns(schema.SQLiteBackend, path, ""))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

// TestClearEmptyPathRejected verifies SQLite clearing refuses an empty path.
func TestClearEmptyPathRejected(t *testing.T) {
	assert.Error(t, ClearWeights(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearRuns(schema.SQLiteBackend, "", ""))
}

// TestClearNoneBackend verifies disabled persistence clears as a no-op.
func TestClearNoneBackend(t *testing.T) {
	assert.NoError(t, ClearWeights(schema.NoneBackend, "", ""))
	assert.NoError(t, ClearRuns(schema.NoneBackend, "", ""))
}
