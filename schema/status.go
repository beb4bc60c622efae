package schema

import "time"

// PersistedWeights is one row of the calibrated-weights store.
type PersistedWeights struct {
	Key       string          `json:"key"`
	Weights   EnsembleWeights `json:"weights"`
	Score     *int            `json:"score,omitempty"` // fitness at calibration time, nil for manual writes
	UpdatedAt time.Time       `json:"updated_at"`
}

// WeightsStatus holds status information about the weights store.
type WeightsStatus struct {
	Backend      string
	Connected    bool
	TotalEntries int64
	LastUpdated  time.Time
}

// RunStatus holds status information about the run-history store.
type RunStatus struct {
	Backend           string
	Connected         bool
	TotalRuns         int64
	LastRunID         int64
	LastRunTime       time.Time
	OldestRunTime     time.Time
	TotalUsersScanned int64
	TableSizes        map[string]int64
}
