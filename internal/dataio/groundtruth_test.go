package dataio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLoadGroundTruth verifies blank lines and whitespace are ignored.
func TestLoadGroundTruth(t *testing.T) {
	path := writeTempFile(t, "bots.txt", "u1\n  u2  \n\nu3\n")

	ids, err := LoadGroundTruth(path)

	assert.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"u1": {}, "u2": {}, "u3": {}}, ids)
}

// TestLoadGroundTruthMissingFile verifies a missing path is an error.
func TestLoadGroundTruthMissingFile(t *testing.T) {
	_, err := LoadGroundTruth(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

// TestWriteGroundTruth verifies the set is written sorted, one id per line.
func TestWriteGroundTruth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bots.txt")

	err := WriteGroundTruth(path, map[string]struct{}{"zulu": {}, "alpha": {}, "mike": {}})

	assert.NoError(t, err)
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "alpha\nmike\nzulu\n", string(data))
}

// TestWriteDetections verifies the submission artifact layout.
func TestWriteDetections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.detections.en.txt")

	err := WriteDetections(path, []string{"u1", "u2"})

	assert.NoError(t, err)
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "u1\nu2\n", string(data))
}

// TestLoadModelProbabilities verifies parsing and the [0,1] range check.
func TestLoadModelProbabilities(t *testing.T) {
	valid := writeTempFile(t, "probs.json", `{"u1": 0.92, "u2": 0.0, "u3": 1.0}`)

	probs, err := LoadModelProbabilities(valid)
	assert.NoError(t, err)
	assert.Len(t, probs, 3)
	assert.InDelta(t, 0.92, probs["u1"], 0.001)

	outOfRange := writeTempFile(t, "bad.json", `{"u1": 1.5}`)
	_, err = LoadModelProbabilities(outOfRange)
	assert.ErrorContains(t, err, "u1")

	negative := writeTempFile(t, "neg.json", `{"u2": -0.1}`)
	_, err = LoadModelProbabilities(negative)
	assert.Error(t, err)

	malformed := writeTempFile(t, "malformed.json", `not json`)
	_, err = LoadModelProbabilities(malformed)
	assert.Error(t, err)
}
