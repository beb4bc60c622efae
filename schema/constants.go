package schema

// Custom string types for type safety.
type (
	// SignalKey represents keys used in the heuristic signal weighting.
	SignalKey string

	// Method represents how a verdict was produced.
	Method string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string

	// WeightsSource names the outcome of the weight-source decision at scan start.
	WeightsSource string
)

// Signal keys used in the heuristic scoring logic.
const (
	SignalHashtag     SignalKey = "hashtag"      // hashtag density, normalized
	SignalLengthCons  SignalKey = "length_cons"  // post-length consistency
	SignalTemporal    SignalKey = "temporal"     // posting-cadence regularity
	SignalTweetVolume SignalKey = "tweet_volume" // profile tweet count, normalized
	SignalLowURL      SignalKey = "low_url"      // absence of links
	SignalMentions    SignalKey = "mentions"     // mention density (penalty term)
	SignalHourSpread  SignalKey = "hour_spread"  // hour-of-day entropy
)

// All verdict methods supported.
const (
	HeuristicMethod Method = "heuristic"
	EnsembleMethod  Method = "ensemble"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All persistence backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Outcomes of the weight-source decision (see core.ResolveWeightsSource).
const (
	OptimizeFresh     WeightsSource = "optimize"  // ground truth present, calibrate now
	ReusePersisted    WeightsSource = "persisted" // reuse previously calibrated weights
	HeuristicDefaults WeightsSource = "defaults"  // fall back to data-free defaults
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid persistence backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
