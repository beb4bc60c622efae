// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"botspot/schema"
)

// WeightsStore defines the interface for persisting calibrated ensemble
// weights, keyed by calibration key (typically the dataset language).
// This allows the persistence layer to be mocked for testing.
type WeightsStore interface {
	// GetWeights returns the persisted weights for a key, or nil when absent.
	GetWeights(key string) (*schema.PersistedWeights, error)

	// PutWeights upserts the weights for a key.
	PutWeights(key string, weights schema.EnsembleWeights, score *int) error

	// DeleteWeights removes the weights for a key. Missing keys are not an error.
	DeleteWeights(key string) error

	// ListWeights returns all persisted entries ordered by key.
	ListWeights() ([]schema.PersistedWeights, error)

	// GetStatus returns status information about the weights store.
	GetStatus() (schema.WeightsStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// RunStore defines the interface for tracking scan and optimize runs.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, datasetID, command string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalUsers, totalPosts, flagged int, method string, weights schema.EnsembleWeights, score *int) error

	// GetAllRuns retrieves all recorded runs in insertion order.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for managing persistence stores.
type StoreManager interface {
	GetWeightsStore() WeightsStore
	GetRunStore() RunStore
}
