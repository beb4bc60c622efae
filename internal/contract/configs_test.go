package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"botspot/schema"
)

// validInput returns a raw input that passes validation unchanged.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:          DefaultResultLimit,
		Workers:        4,
		Iterations:     DefaultIterations,
		Precision:      DefaultPrecision,
		Output:         "text",
		WeightsBackend: "sqlite",
		RunsBackend:    "",
		Emoji:          "yes",
		Color:          "yes",
		Threshold:      -1.0,
	}
}

// TestProcessAndValidateDefaults verifies a default-shaped input produces a
// usable config.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}

	err := ProcessAndValidate(cfg, validInput())

	assert.NoError(t, err)
	assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.WeightsBackend)
	assert.Equal(t, schema.NoneBackend, cfg.RunsBackend)
	assert.Nil(t, cfg.ThresholdOverride)
	assert.True(t, cfg.UseEmojis)
	assert.Equal(t, schema.GetDefaultSignalWeights(), cfg.SignalWeights)
}

// TestProcessAndValidateRejections covers the validation failure branches.
func TestProcessAndValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{name: "zero limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }},
		{name: "limit too large", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{name: "zero workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }},
		{name: "zero iterations", mutate: func(in *ConfigRawInput) { in.Iterations = 0 }},
		{name: "iterations too large", mutate: func(in *ConfigRawInput) { in.Iterations = MaxIterations + 1 }},
		{name: "precision too low", mutate: func(in *ConfigRawInput) { in.Precision = 0 }},
		{name: "precision too high", mutate: func(in *ConfigRawInput) { in.Precision = 5 }},
		{name: "bad output mode", mutate: func(in *ConfigRawInput) { in.Output = "xml" }},
		{name: "bad weights backend", mutate: func(in *ConfigRawInput) { in.WeightsBackend = "oracle" }},
		{name: "bad runs backend", mutate: func(in *ConfigRawInput) { in.RunsBackend = "oracle" }},
		{name: "bad emoji flag", mutate: func(in *ConfigRawInput) { in.Emoji = "maybe" }},
		{name: "bad color flag", mutate: func(in *ConfigRawInput) { in.Color = "sometimes" }},
		{name: "threshold above max", mutate: func(in *ConfigRawInput) { in.Threshold = 0.95 }},
		{name: "threshold below min", mutate: func(in *ConfigRawInput) { in.Threshold = 0.05 }},
		{name: "missing dataset file", mutate: func(in *ConfigRawInput) {
			in.DatasetPathArgs = []string{"/nonexistent/dataset.json"}
		}},
		{name: "missing bots file", mutate: func(in *ConfigRawInput) { in.Bots = "/nonexistent/bots.txt" }},
		{name: "missing probs file", mutate: func(in *ConfigRawInput) { in.Probs = "/nonexistent/probs.json" }},
		{name: "mysql without connection string", mutate: func(in *ConfigRawInput) {
			in.WeightsBackend = "mysql"
		}},
		{name: "postgresql without connection string", mutate: func(in *ConfigRawInput) {
			in.WeightsBackend = "postgresql"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

// TestProcessAndValidateThresholdOverride verifies an in-range threshold is
// captured while the negative sentinel stays unset.
func TestProcessAndValidateThresholdOverride(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Threshold = 0.6

	assert.NoError(t, ProcessAndValidate(cfg, input))
	if assert.NotNil(t, cfg.ThresholdOverride) {
		assert.InDelta(t, 0.6, *cfg.ThresholdOverride, 0.001)
	}
}

// TestProcessAndValidateSignalOverrides verifies config-file signal weights
// override the defaults without touching other signals.
func TestProcessAndValidateSignalOverrides(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	temporal := 0.5
	mentions := -0.2
	input.Signals = SignalWeightsRaw{Temporal: &temporal, Mentions: &mentions}

	assert.NoError(t, ProcessAndValidate(cfg, input))
	assert.InDelta(t, 0.5, cfg.SignalWeights[schema.SignalTemporal], 0.001)
	assert.InDelta(t, -0.2, cfg.SignalWeights[schema.SignalMentions], 0.001)
	defaults := schema.GetDefaultSignalWeights()
	assert.InDelta(t, defaults[schema.SignalHashtag], cfg.SignalWeights[schema.SignalHashtag], 0.001)
	assert.Len(t, cfg.CustomSignalWeights, 2)
}

// TestProcessSignalWeightsRawInputRange verifies the [-1, 1] bound.
func TestProcessSignalWeightsRawInputRange(t *testing.T) {
	tooBig := 1.5
	_, err := ProcessSignalWeightsRawInput(SignalWeightsRaw{Hashtag: &tooBig})
	assert.Error(t, err)

	tooSmall := -1.5
	_, err = ProcessSignalWeightsRawInput(SignalWeightsRaw{Mentions: &tooSmall})
	assert.Error(t, err)
}

// TestProcessAndValidatePaths verifies dataset and sidecar paths resolve when
// the files exist.
func TestProcessAndValidatePaths(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "dataset.json")
	bots := filepath.Join(dir, "bots.txt")
	assert.NoError(t, os.WriteFile(dataset, []byte("{}"), 0o644))
	assert.NoError(t, os.WriteFile(bots, []byte("u1\n"), 0o644))

	cfg := &Config{}
	input := validInput()
	input.DatasetPathArgs = []string{dataset, "  "}
	input.Bots = bots

	assert.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{dataset}, cfg.DatasetPaths)
	assert.Equal(t, dataset, cfg.DatasetPath())
	assert.Equal(t, bots, cfg.BotsPath)
}

// TestProcessAndValidateMergeBots verifies the comma-separated ground-truth
// list is split and validated.
func TestProcessAndValidateMergeBots(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "bots1.txt")
	second := filepath.Join(dir, "bots2.txt")
	assert.NoError(t, os.WriteFile(first, []byte("a\n"), 0o644))
	assert.NoError(t, os.WriteFile(second, []byte("b\n"), 0o644))

	cfg := &Config{}
	input := validInput()
	input.MergeBots = first + ", " + second

	assert.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{first, second}, cfg.MergeBotsPaths)
}

// TestValidateDatabaseConnectionString covers per-backend format checks.
func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{name: "sqlite empty ok", backend: schema.SQLiteBackend, connStr: "", wantErr: false},
		{name: "none empty ok", backend: schema.NoneBackend, connStr: "", wantErr: false},
		{name: "mysql valid", backend: schema.MySQLBackend, connStr: "user:pass@tcp(localhost:3306)/botspot", wantErr: false},
		{name: "mysql missing tcp", backend: schema.MySQLBackend, connStr: "user:pass@localhost/botspot", wantErr: true},
		{name: "mysql empty", backend: schema.MySQLBackend, connStr: "", wantErr: true},
		{name: "postgres valid", backend: schema.PostgreSQLBackend, connStr: "host=localhost dbname=botspot sslmode=disable", wantErr: false},
		{name: "postgres missing host", backend: schema.PostgreSQLBackend, connStr: "dbname=botspot", wantErr: true},
		{name: "postgres missing dbname", backend: schema.PostgreSQLBackend, connStr: "host=localhost", wantErr: true},
		{name: "postgres empty", backend: schema.PostgreSQLBackend, connStr: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestSameSQLiteFileRejected verifies weights and runs cannot share one
// SQLite database file.
func TestSameSQLiteFileRejected(t *testing.T) {
	input := validInput()
	input.WeightsBackend = "sqlite"
	input.RunsBackend = "sqlite"
	input.WeightsDBConnect = "/tmp/shared.db"
	input.RunsDBConnect = "/tmp/shared.db"

	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input.RunsDBConnect = "/tmp/other.db"
	assert.NoError(t, ProcessAndValidate(&Config{}, input))
}

// TestConfigClone verifies the deep copy is independent of the original.
func TestConfigClone(t *testing.T) {
	threshold := 0.5
	original := &Config{
		DatasetPaths:        []string{"a.json"},
		MergeBotsPaths:      []string{"bots.txt"},
		ThresholdOverride:   &threshold,
		CustomSignalWeights: map[schema.SignalKey]float64{schema.SignalTemporal: 0.5},
		SignalWeights:       schema.GetDefaultSignalWeights(),
	}

	clone := original.Clone()
	clone.DatasetPaths[0] = "b.json"
	*clone.ThresholdOverride = 0.7
	clone.SignalWeights[schema.SignalTemporal] = 0.9

	assert.Equal(t, "a.json", original.DatasetPaths[0])
	assert.InDelta(t, 0.5, *original.ThresholdOverride, 0.001)
	assert.InDelta(t, schema.GetDefaultSignalWeights()[schema.SignalTemporal],
		original.SignalWeights[schema.SignalTemporal], 0.001)
}

// TestProcessProfilingConfig verifies the prefix flag toggles profiling.
func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	assert.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	assert.NoError(t, ProcessProfilingConfig(profile, "perf"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "perf", profile.Prefix)
}
