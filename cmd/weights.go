package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"botspot/internal/contract"
	"botspot/internal/outwriter"
	"botspot/internal/persist"
	"botspot/schema"
)

// weightsSetup loads minimal configuration needed for weights operations.
// This is used by commands that need weights access without full shared setup.
func weightsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get weights-related config values
	backend := schema.DatabaseBackend(viper.GetString("weights-backend"))
	connStr := viper.GetString("weights-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the weights store with the loaded config (no run tracking for weights commands)
	if err := persist.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize weights store: %w", err)
	}

	cfg.WeightsBackend = backend
	cfg.WeightsDBConnect = connStr
	cfg.CalibrationKey = viper.GetString("key")
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// weightsSetupWrapper wraps weightsSetup to provide PreRunE for weights commands.
func weightsSetupWrapper(_ *cobra.Command, _ []string) error {
	return weightsSetup()
}

// weightsCmd focused on calibrated weight management.
//
// Note: Weights subcommands use minimal initialization (weightsSetup) instead
// of the full sharedSetup used by detection commands. This avoids dataset
// validation and complex config processing for simple store operations.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Manage calibrated ensemble weights",
	Long: `Manage the store of calibrated ensemble weights.

Botspot persists the winning weights of each calibration under a key
(typically the dataset language), so later scans without ground truth can
reuse them instead of falling back to data-free defaults.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  show   - List all stored calibrations
  status - Show store statistics and connection info
  clear  - Remove stored calibrations

Examples:
  # See what has been calibrated so far
  botspot weights show

  # Check store status
  botspot weights status`,
}

// weightsShowCmd lists the stored calibrations.
var weightsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List all stored weight calibrations",
	Long: `List every stored calibration with its weights, threshold, score and
last-updated timestamp.

Examples:
  # Human-readable table
  botspot weights show

  # Machine-readable export
  botspot weights show --output json --output-file weights.json`,
	PreRunE: weightsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		entries, err := persist.Manager.GetWeightsStore().ListWeights()
		if err != nil {
			contract.LogFatal("Failed to list weights", err)
		}
		if err := outwriter.PrintWeightsEntries(entries, cfg); err != nil {
			contract.LogFatal("Failed to print weights", err)
		}
	},
}

// weightsClearCmd clears stored calibrations.
var weightsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove stored weight calibrations",
	Long: `Delete stored calibrations from the configured backend.

With --key, only the calibration for that key is removed. Without it, the
whole store is cleared.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the weights table

Examples:
  # Remove one calibration
  botspot weights clear --key en

  # Wipe the store entirely
  botspot weights clear`,
	PreRunE: weightsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.CalibrationKey != "" {
			if err := persist.Manager.GetWeightsStore().DeleteWeights(cfg.CalibrationKey); err != nil {
				contract.LogFatal("Failed to delete weights", err)
			}
			fmt.Printf("Weights for key %q cleared successfully.\n", cfg.CalibrationKey)
			return
		}
		if err := persist.ClearWeights(cfg.WeightsBackend, contract.GetWeightsDBFilePath(), cfg.WeightsDBConnect); err != nil {
			contract.LogFatal("Failed to clear weights", err)
		}
		fmt.Println("Weights cleared successfully.")
	},
}

// weightsStatusCmd shows weights store status.
var weightsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display weights store statistics and connection details",
	Long: `Show detailed information about the weights store.

Displays:
- Backend type and connection status
- Total number of stored calibrations
- Last update timestamp

Examples:
  # Check weights store status
  botspot weights status`,
	PreRunE: weightsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := persist.Manager.GetWeightsStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get weights status", err)
		}
		persist.PrintWeightsStatus(status)
	},
}
