// Package persist stores calibrated weights and run history across backends.
package persist

import (
	"fmt"
	"sync"

	"botspot/internal/contract"
	"botspot/schema"
)

// Table names for persistence.
const (
	weightsTable = "botspot_weights"
	runsTable    = "botspot_runs"
)

// StoreManagerImpl manages the weights and run store instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	weights      contract.WeightsStore
	runs         contract.RunStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetWeightsStore returns the weights store.
func (mgr *StoreManagerImpl) GetWeightsStore() contract.WeightsStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.weights
}

// GetRunStore returns the run store.
func (mgr *StoreManagerImpl) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager with separate weights and
// run stores. Either backend can be empty to skip initialization.
func InitStores(weightsBackend schema.DatabaseBackend, weightsConnStr string, runsBackend schema.DatabaseBackend, runsConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		var err error

		var weightsStore contract.WeightsStore
		if weightsBackend != "" {
			weightsStore, err = NewWeightsStore(weightsBackend, weightsConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize weights store: %w", err)
				return
			}
		}

		var runStore contract.RunStore
		if runsBackend != "" {
			runStore, err = NewRunStore(runsBackend, runsConnStr)
			if err != nil {
				if weightsStore != nil {
					_ = weightsStore.Close()
				}
				initErr = fmt.Errorf("failed to initialize run store: %w", err)
				return
			}
		}

		Manager.weights = weightsStore
		Manager.runs = runStore
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.weights != nil {
			if err := Manager.weights.Close(); err != nil {
				contract.LogWarn("Failed to close weights store", err)
			}
			Manager.weights = nil
		}
		if Manager.runs != nil {
			if err := Manager.runs.Close(); err != nil {
				contract.LogWarn("Failed to close run store", err)
			}
			Manager.runs = nil
		}
	})
}

// GetWeightsDBFilePath returns the path to the SQLite DB file for weights storage.
func GetWeightsDBFilePath() string {
	return contract.GetWeightsDBFilePath()
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run-history storage.
func GetRunsDBFilePath() string {
	return contract.GetRunsDBFilePath()
}
