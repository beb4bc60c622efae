package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"botspot/internal/contract"
	"botspot/schema"
)

func sampleVerdicts() []*schema.Verdict {
	return []*schema.Verdict{
		{
			UserID: "u1", Username: "bot1234", IsBot: true,
			Confidence: 0.91, Heuristic: 0.82, Hybrid: 0.82,
			Reasoning: "highly regular posting intervals",
			Method:    schema.HeuristicMethod,
		},
		{
			UserID: "u2", Username: "jane_doe", IsBot: false,
			Confidence: 0.21, Heuristic: 0.19, Hybrid: 0.19,
			Reasoning: "normal activity patterns",
			Method:    schema.HeuristicMethod,
		},
	}
}

func sampleScanOutput(ranked []*schema.Verdict) *schema.ScanOutput {
	verdicts := make(map[string]*schema.Verdict, len(ranked))
	for _, v := range ranked {
		verdicts[v.UserID] = v
	}
	return &schema.ScanOutput{
		Method:   schema.HeuristicMethod,
		Weights:  schema.HeuristicOnlyWeights(),
		Verdicts: verdicts,
	}
}

// TestWriteScanTable verifies the table contains the ranked rows and the
// summary line.
func TestWriteScanTable(t *testing.T) {
	ranked := sampleVerdicts()
	cfg := &contract.Config{Precision: 2, Workers: 4, Width: 80, WeightsBackend: schema.SQLiteBackend}
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeScanTable(sampleScanOutput(ranked), ranked, cfg, fmtFloat, 2*time.Second, &buf)

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "bot1234")
	assert.Contains(t, out, "jane_doe")
	assert.Contains(t, out, "BOT")
	assert.Contains(t, out, "human")
	assert.Contains(t, out, "Flagged 1 of 2 users")
	assert.Contains(t, out, "4 workers")
}

// TestWriteScanTableWithTally verifies the evaluation line appears when a
// tally is attached.
func TestWriteScanTableWithTally(t *testing.T) {
	ranked := sampleVerdicts()
	output := sampleScanOutput(ranked)
	output.Tally = &schema.ScoreTally{TruePositives: 1, FalsePositives: 0, FalseNegatives: 1, Score: 3}
	cfg := &contract.Config{Precision: 2, Workers: 1, Width: 80}
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeScanTable(output, ranked, cfg, fmtFloat, time.Second, &buf)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Score: 3 (TP: 1, FN: 1, FP: 0)")
}

// TestWriteCSVResultsForScan verifies header and row layout.
func TestWriteCSVResultsForScan(t *testing.T) {
	ranked := sampleVerdicts()
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	assert.NoError(t, writeCSVResultsForScan(w, ranked, fmtFloat))
	w.Flush()

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	assert.NoError(t, err)
	if assert.Len(t, records, 3) {
		assert.Equal(t, "rank", records[0][0])
		assert.Equal(t, []string{"1", "u1", "bot1234", "true", "0.91", "High", "0.82", "0.82", "heuristic", "highly regular posting intervals"}, records[1])
		assert.Equal(t, "false", records[2][3])
		assert.Equal(t, "Low", records[2][5])
	}
}

// TestWriteJSONResultsForScan verifies rank and label enrichment plus the
// scan-level metadata wrapper.
func TestWriteJSONResultsForScan(t *testing.T) {
	ranked := sampleVerdicts()

	var buf bytes.Buffer
	assert.NoError(t, writeJSONResultsForScan(&buf, sampleScanOutput(ranked), ranked))

	var decoded struct {
		Method   string `json:"method"`
		Verdicts []struct {
			Rank   int    `json:"rank"`
			Label  string `json:"label"`
			UserID string `json:"user_id"`
			IsBot  bool   `json:"is_bot"`
		} `json:"verdicts"`
	}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "heuristic", decoded.Method)
	if assert.Len(t, decoded.Verdicts, 2) {
		assert.Equal(t, 1, decoded.Verdicts[0].Rank)
		assert.Equal(t, "High", decoded.Verdicts[0].Label)
		assert.Equal(t, "u1", decoded.Verdicts[0].UserID)
		assert.True(t, decoded.Verdicts[0].IsBot)
		assert.Equal(t, 2, decoded.Verdicts[1].Rank)
	}
}

// TestDisplayName verifies the username-then-id fallback.
func TestDisplayName(t *testing.T) {
	assert.Equal(t, "bot1234", displayName(&schema.Verdict{UserID: "u1", Username: "bot1234"}))
	assert.Equal(t, "u1", displayName(&schema.Verdict{UserID: "u1"}))
}

// TestVerdictText verifies verdict rendering.
func TestVerdictText(t *testing.T) {
	assert.Equal(t, "BOT", verdictText(true))
	assert.Equal(t, "human", verdictText(false))
}

// TestVerdictLabel verifies plain vs colored labels both carry the text.
func TestVerdictLabel(t *testing.T) {
	v := &schema.Verdict{Confidence: 0.8}
	assert.Equal(t, contract.HighValue, verdictLabel(v, false))
	assert.Contains(t, verdictLabel(v, true), contract.HighValue)
}

// TestCreateFormatters verifies precision is honored.
func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(3)
	assert.Equal(t, "0.457", fmtFloat(0.4567))
	assert.Equal(t, "%d", intFmt)

	fmtFloat, _ = createFormatters(1)
	assert.Equal(t, "0.5", fmtFloat(0.4567))
}

// TestGetMaxTableNameWidth verifies the width override and its clamping.
func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *contract.Config
		expected int
	}{
		{name: "narrow terminal floors at 12", cfg: &contract.Config{Width: 40}, expected: 12},
		{name: "mid terminal uses available", cfg: &contract.Config{Width: 70}, expected: 30},
		{name: "wide terminal caps at 40", cfg: &contract.Config{Width: 200}, expected: 40},
		{name: "detail columns shrink available", cfg: &contract.Config{Width: 110, Detail: true}, expected: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getMaxTableNameWidth(tt.cfg))
		})
	}
}
