// Package cmd defines the command-line interface for botspot.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"botspot/internal/contract"
	"botspot/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the weights subcommands to the parent weights command
	weightsCmd.AddCommand(weightsShowCmd)
	weightsCmd.AddCommand(weightsClearCmd)
	weightsCmd.AddCommand(weightsStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("bots", "b", "", "Path to a ground-truth file of known bot ids (one per line)")
	rootCmd.PersistentFlags().StringP("probs", "p", "", "Path to a JSON map of user id -> model bot probability")
	rootCmd.PersistentFlags().String("team", "", "Team name used for submission artifact names")
	rootCmd.PersistentFlags().StringP("key", "k", "", "Weights-store key (defaults to the dataset language)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("iterations", contract.DefaultIterations, "Number of hill-climbing iterations for calibration")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed for calibration (0 = time-seeded)")
	rootCmd.PersistentFlags().Float64("threshold", -1.0, "Decision threshold override (negative = use calibrated/default)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-user feature scores and reasoning")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("weights-backend", string(schema.SQLiteBackend), "Weights backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("weights-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runs-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for run tracking (must differ from weights-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of mergeCmd to Viper
	mergeCmd.Flags().String("merge-bots", "", "Comma-separated ground-truth files to union alongside the merged dataset")
	if err := viper.BindPFlags(mergeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding merge flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
