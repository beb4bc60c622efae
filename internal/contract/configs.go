package contract

import (
	"fmt"
	"maps"
	"os"
	"runtime"
	"strings"

	"botspot/schema"
)

// Default values for configuration.
const (
	DefaultIterations  = 100000
	MaxIterations      = 10000000
	DefaultResultLimit = 25
	MaxResultLimit     = 10000
	DefaultPrecision   = 2
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// SignalWeightsRaw holds custom heuristic signal weights from the YAML config
// file. Use float64 pointers so that absent fields fall through to defaults.
type SignalWeightsRaw struct {
	Hashtag     *float64 `mapstructure:"hashtag"`
	LengthCons  *float64 `mapstructure:"length_cons"`
	Temporal    *float64 `mapstructure:"temporal"`
	TweetVolume *float64 `mapstructure:"tweet_volume"`
	LowURL      *float64 `mapstructure:"low_url"`
	Mentions    *float64 `mapstructure:"mentions"`
	HourSpread  *float64 `mapstructure:"hour_spread"`
}

// Config holds the runtime configuration for detection and calibration.
// This struct remains the "final, validated" config.
type Config struct {
	DatasetPaths []string // positional args; scan uses the first, merge uses all
	BotsPath     string   // ground-truth file of known bot ids
	ProbsPath    string   // secondary-model probability map (JSON)

	// MergeBotsPaths lists ground-truth files whose ids are unioned by the
	// merge command alongside the datasets themselves.
	MergeBotsPaths []string

	Team           string // team name for submission artifacts
	CalibrationKey string // weights-store key; empty means "use dataset lang"

	Workers     int
	Iterations  int
	Seed        int64 // 0 means time-seeded
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)

	WeightsBackend   schema.DatabaseBackend
	WeightsDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	// ThresholdOverride forces the decision threshold, bypassing both
	// persisted and default thresholds. Nil means no override.
	ThresholdOverride *float64

	// CustomSignalWeights holds only the overridden signal weights.
	CustomSignalWeights map[schema.SignalKey]float64

	// SignalWeights is the final weights map, computed from defaults + overrides.
	SignalWeights map[schema.SignalKey]float64

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	DatasetPathArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Bots             string `mapstructure:"bots"`
	Probs            string `mapstructure:"probs"`
	Team             string `mapstructure:"team"`
	Key              string `mapstructure:"key"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Detail           bool   `mapstructure:"detail"`
	Width            int    `mapstructure:"width"`
	WeightsBackend   string `mapstructure:"weights-backend"`
	WeightsDBConnect string `mapstructure:"weights-db-connect"`
	RunsBackend      string `mapstructure:"runs-backend"`
	RunsDBConnect    string `mapstructure:"runs-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from optimizeCmd.Flags() ---
	Iterations int   `mapstructure:"iterations"`
	Seed       int64 `mapstructure:"seed"`

	// --- Fields from scanCmd.Flags() ---
	Threshold float64 `mapstructure:"threshold"` // <0 means unset

	// --- Fields from mergeCmd.Flags() ---
	MergeBots string `mapstructure:"merge-bots"` // comma-separated ground-truth files

	// --- Custom signal weights from config file ---
	Signals SignalWeightsRaw `mapstructure:"signals"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.DatasetPaths != nil {
		clone.DatasetPaths = make([]string, len(c.DatasetPaths))
		copy(clone.DatasetPaths, c.DatasetPaths)
	}
	if c.MergeBotsPaths != nil {
		clone.MergeBotsPaths = make([]string, len(c.MergeBotsPaths))
		copy(clone.MergeBotsPaths, c.MergeBotsPaths)
	}
	if c.ThresholdOverride != nil {
		t := *c.ThresholdOverride
		clone.ThresholdOverride = &t
	}
	if c.CustomSignalWeights != nil {
		clone.CustomSignalWeights = make(map[schema.SignalKey]float64)
		maps.Copy(clone.CustomSignalWeights, c.CustomSignalWeights)
	}
	if c.SignalWeights != nil {
		clone.SignalWeights = make(map[schema.SignalKey]float64)
		maps.Copy(clone.SignalWeights, c.SignalWeights)
	}
	return &clone
}

// DatasetPath returns the primary dataset path.
func (c *Config) DatasetPath() string {
	if len(c.DatasetPaths) == 0 {
		return ""
	}
	return c.DatasetPaths[0]
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processThresholdOverride(cfg, input); err != nil {
		return err
	}
	if err := processSignalWeights(cfg, input); err != nil {
		return err
	}
	return resolveInputPaths(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Team = strings.TrimSpace(input.Team)
	cfg.CalibrationKey = strings.TrimSpace(input.Key)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.Seed = input.Seed

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Iterations Validation ---
	if input.Iterations <= 0 || input.Iterations > MaxIterations {
		return fmt.Errorf("iterations must be greater than 0 and cannot exceed %d (received %d)", MaxIterations, input.Iterations)
	}
	cfg.Iterations = input.Iterations

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	return nil
}

// validateBackendConfigs validates weights and runs backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Weights Backend Validation ---
	cfg.WeightsBackend = schema.DatabaseBackend(strings.ToLower(input.WeightsBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.WeightsBackend]; !ok {
		return fmt.Errorf("invalid weights backend '%s'. must be sqlite, mysql, postgresql, none", input.WeightsBackend)
	}
	cfg.WeightsDBConnect = input.WeightsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.WeightsBackend, cfg.WeightsDBConnect); err != nil {
		return err
	}

	// --- Runs Backend Validation ---
	// Empty means run tracking is disabled.
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if cfg.RunsBackend == "" {
		cfg.RunsBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
		return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return err
	}

	// Validate that weights and runs use different databases
	if cfg.WeightsBackend == cfg.RunsBackend && cfg.WeightsBackend == schema.SQLiteBackend {
		weightsDBPath := cfg.WeightsDBConnect
		if weightsDBPath == "" {
			weightsDBPath = GetWeightsDBFilePath()
		}
		runsDBPath := cfg.RunsDBConnect
		if runsDBPath == "" {
			runsDBPath = GetRunsDBFilePath()
		}
		if weightsDBPath == runsDBPath {
			return fmt.Errorf("weights and run storage must use different SQLite database files. Both resolve to %q", weightsDBPath)
		}
	}

	return nil
}

// processThresholdOverride validates the optional decision-threshold override.
// A negative value is the "unset" sentinel from the flag default.
func processThresholdOverride(cfg *Config, input *ConfigRawInput) error {
	if input.Threshold < 0 {
		cfg.ThresholdOverride = nil
		return nil
	}
	if input.Threshold < schema.MinThreshold || input.Threshold > schema.MaxThreshold {
		return fmt.Errorf("threshold must be between %.1f and %.1f (received %.4f)", schema.MinThreshold, schema.MaxThreshold, input.Threshold)
	}
	t := input.Threshold
	cfg.ThresholdOverride = &t
	return nil
}

// ProcessSignalWeightsRawInput converts SignalWeightsRaw into an override map.
// Each override must stay within [-1, 1]; the mentions signal is the only one
// expected to be negative.
func ProcessSignalWeightsRawInput(raw SignalWeightsRaw) (map[schema.SignalKey]float64, error) {
	overrides := make(map[schema.SignalKey]float64)

	fields := map[schema.SignalKey]*float64{
		schema.SignalHashtag:     raw.Hashtag,
		schema.SignalLengthCons:  raw.LengthCons,
		schema.SignalTemporal:    raw.Temporal,
		schema.SignalTweetVolume: raw.TweetVolume,
		schema.SignalLowURL:      raw.LowURL,
		schema.SignalMentions:    raw.Mentions,
		schema.SignalHourSpread:  raw.HourSpread,
	}
	for key, ptr := range fields {
		if ptr == nil {
			continue
		}
		if *ptr < -1 || *ptr > 1 {
			return nil, fmt.Errorf("signal weight %s must be between -1.0 and 1.0 (received %.4f)", key, *ptr)
		}
		overrides[key] = *ptr
	}
	return overrides, nil
}

// processSignalWeights converts the raw input into cfg.CustomSignalWeights and
// computes the final cfg.SignalWeights from defaults + overrides.
func processSignalWeights(cfg *Config, input *ConfigRawInput) error {
	overrides, err := ProcessSignalWeightsRawInput(input.Signals)
	if err != nil {
		return err
	}
	cfg.CustomSignalWeights = overrides

	weights := schema.GetDefaultSignalWeights()
	maps.Copy(weights, overrides)
	cfg.SignalWeights = weights
	return nil
}

// resolveInputPaths validates the dataset, ground-truth and probability paths.
func resolveInputPaths(cfg *Config, input *ConfigRawInput) error {
	cfg.DatasetPaths = make([]string, 0, len(input.DatasetPathArgs))
	for _, p := range input.DatasetPathArgs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if err := requireFile(p, "dataset"); err != nil {
			return err
		}
		cfg.DatasetPaths = append(cfg.DatasetPaths, p)
	}

	cfg.BotsPath = strings.TrimSpace(input.Bots)
	if cfg.BotsPath != "" {
		if err := requireFile(cfg.BotsPath, "ground truth"); err != nil {
			return err
		}
	}

	cfg.ProbsPath = strings.TrimSpace(input.Probs)
	if cfg.ProbsPath != "" {
		if err := requireFile(cfg.ProbsPath, "probability map"); err != nil {
			return err
		}
	}

	cfg.MergeBotsPaths = nil
	if input.MergeBots != "" {
		for p := range strings.SplitSeq(input.MergeBots, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if err := requireFile(p, "ground truth"); err != nil {
				return err
			}
			cfg.MergeBotsPaths = append(cfg.MergeBotsPaths, p)
		}
	}

	return nil
}

// requireFile ensures that a path exists and is a regular file.
func requireFile(path, kind string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s file does not exist: %s", kind, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s path is a directory, expected a file: %s", kind, path)
	}
	return nil
}
