// Package schema has configs, models and shared constants for all parts of botspot.
package schema

import "time"

// Post is a single social-media post as supplied by the competition dataset.
// Posts are immutable inputs; each belongs to exactly one user via AuthorID.
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  string    `json:"author_id"`
	Lang      string    `json:"lang,omitempty"`
}

// UserProfile is the account-level record for one user.
// ZScore is an externally precomputed activity-anomaly statistic and may be absent.
type UserProfile struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	TweetCount  int      `json:"tweet_count"`
	ZScore      *float64 `json:"z_score,omitempty"`
}

// Dataset is one observation window of posts and user profiles plus
// descriptive metadata. Orphan posts (author not in Users) are tolerated;
// they simply contribute to no user's feature set.
type Dataset struct {
	ID         string        `json:"id"`
	Lang       string        `json:"lang,omitempty"`
	TotalUsers int           `json:"total_users,omitempty"`
	TotalPosts int           `json:"total_posts,omitempty"`
	Posts      []Post        `json:"posts"`
	Users      []UserProfile `json:"users"`
}

// PostsByAuthor groups the dataset's posts by author id.
func (d *Dataset) PostsByAuthor() map[string][]Post {
	grouped := make(map[string][]Post, len(d.Users))
	for _, p := range d.Posts {
		grouped[p.AuthorID] = append(grouped[p.AuthorID], p)
	}
	return grouped
}

// TemporalSignals captures posting-cadence regularity for one user.
type TemporalSignals struct {
	RegularityScore   float64 `json:"regularity_score"`   // 0..1, higher is more bot-like
	AverageInterval   float64 `json:"average_interval"`   // mean inter-post gap in seconds
	IntervalVariation float64 `json:"interval_variation"` // coefficient of variation of gaps
	NighttimeRatio    float64 `json:"nighttime_ratio"`    // fraction of posts in 01:00-05:59 UTC
}

// ContentSignals captures duplicate and near-duplicate content for one user.
type ContentSignals struct {
	DuplicateRatio    float64 `json:"duplicate_ratio"`
	AvgPairSimilarity float64 `json:"avg_pair_similarity"`
	SimilarityScore   float64 `json:"similarity_score"`
}

// ProfileSignals captures account-metadata red flags.
type ProfileSignals struct {
	HasGenericUsername bool    `json:"has_generic_username"`
	EmptyDescription   bool    `json:"empty_description"`
	EmptyLocation      bool    `json:"empty_location"`
	SuspiciousScore    float64 `json:"suspicious_score"`
}

// LinguisticSignals captures text-structure patterns across a user's posts.
type LinguisticSignals struct {
	LengthConsistencyScore float64 `json:"length_consistency_score"`
	HashtagDensity         float64 `json:"hashtag_density"`
	URLDensity             float64 `json:"url_density"`
	HashtagScore           float64 `json:"hashtag_score"`
	LowURLScore            float64 `json:"low_url_score"`
	Score                  float64 `json:"score"`
}

// ActivitySignals captures mention usage and hour-of-day spread.
type ActivitySignals struct {
	MentionDensity   float64 `json:"mention_density"`
	HourEntropy      float64 `json:"hour_entropy"`       // Shannon entropy, base 2
	HourEntropyScore float64 `json:"hour_entropy_score"` // entropy normalized to 0..1
}

// FeatureBundle is the per-user, per-scan summary of extractor outputs.
// Every field is in [0,1]. ModelProb is the secondary model's probability
// and is nil when no probability was supplied for the user.
type FeatureBundle struct {
	Temporal   float64  `json:"temporal"`
	Content    float64  `json:"content"`
	Profile    float64  `json:"profile"`
	Linguistic float64  `json:"linguistic"`
	ZScore     float64  `json:"z_score"`
	ModelProb  *float64 `json:"model_prob,omitempty"`
}

// Verdict is the per-user classification output of a scan.
// Recomputed on every scan; never treated as authoritative state.
type Verdict struct {
	UserID     string        `json:"user_id"`
	Username   string        `json:"username,omitempty"`
	IsBot      bool          `json:"is_bot"`
	Confidence float64       `json:"confidence"` // 0..0.99, not a calibrated probability
	Heuristic  float64       `json:"heuristic"`  // clamped heuristic score
	Hybrid     float64       `json:"hybrid"`     // blended score that was thresholded
	Reasoning  string        `json:"reasoning"`
	Method     Method        `json:"method"`
	Features   FeatureBundle `json:"features"`
}

// ScoreTally holds the competition tallies for one evaluated scan.
// Score follows the competition's asymmetric formula: 4*TP - 1*FN - 2*FP.
type ScoreTally struct {
	TruePositives  int `json:"true_positives"`
	FalseNegatives int `json:"false_negatives"`
	FalsePositives int `json:"false_positives"`
	Score          int `json:"score"`
}

// ScanOutput bundles everything a single scan produced.
type ScanOutput struct {
	Verdicts map[string]*Verdict
	Method   Method
	Weights  EnsembleWeights
	Lang     string      // dataset language, used for artifact naming
	Tally    *ScoreTally // nil when no ground truth was supplied
}

// OptimizeOutput is the result of a weight-optimization run.
type OptimizeOutput struct {
	Weights    EnsembleWeights
	Score      int
	Iterations int
}

// RunRecord is one row of the run-history store.
type RunRecord struct {
	RunID      int64
	StartTime  time.Time
	EndTime    *time.Time
	DatasetID  string
	Command    string
	TotalUsers int32
	TotalPosts int32
	Flagged    int32
	Method     string
	Weights    *string // JSON-encoded EnsembleWeights
	Score      *int32  // competition score, nil without ground truth
}
