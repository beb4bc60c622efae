package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"botspot/core"
	"botspot/internal/contract"
	"botspot/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// applyThreshold copies an in-range threshold override into the config.
// Out-of-range values are rejected rather than clamped.
func applyThreshold(cfg *contract.Config, threshold float64) error {
	if threshold < 0 {
		return nil // unset
	}
	if threshold < schema.MinThreshold || threshold > schema.MaxThreshold {
		return fmt.Errorf("threshold must be between %.1f and %.1f (received %.4f)", schema.MinThreshold, schema.MaxThreshold, threshold)
	}
	cfg.ThresholdOverride = &threshold
	return nil
}

func (h *toolHandler) handleScanDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.DatasetPaths = []string{request.GetString("dataset_path", "")}
	cfg.BotsPath = request.GetString("bots_path", "")
	cfg.ProbsPath = request.GetString("probs_path", "")
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	if err := applyThreshold(cfg, request.GetFloat("threshold", -1)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scan parameters: %v", err)), nil
	}

	output, ranked, err := core.GetScanResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	result := struct {
		Method   schema.Method          `json:"method"`
		Weights  schema.EnsembleWeights `json:"weights"`
		Tally    *schema.ScoreTally     `json:"tally,omitempty"`
		Verdicts []*schema.Verdict      `json:"verdicts"`
	}{
		Method:   output.Method,
		Weights:  output.Weights,
		Tally:    output.Tally,
		Verdicts: ranked,
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleOptimizeWeights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.DatasetPaths = []string{request.GetString("dataset_path", "")}
	cfg.BotsPath = request.GetString("bots_path", "")
	cfg.ProbsPath = request.GetString("probs_path", "")
	if k := request.GetString("key", ""); k != "" {
		cfg.CalibrationKey = k
	}
	if i := request.GetInt("iterations", 0); i > 0 {
		if i > contract.MaxIterations {
			return mcp.NewToolResultError(fmt.Sprintf("iterations cannot exceed %d", contract.MaxIterations)), nil
		}
		cfg.Iterations = i
	}
	if s := request.GetInt("seed", 0); s != 0 {
		cfg.Seed = int64(s)
	}

	// Nil progress callback keeps protocol stdio clean.
	result, err := core.GetOptimizeResults(core.WithSuppressHeader(ctx), cfg, h.mgr, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("calibration failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.DatasetPaths = []string{request.GetString("dataset_path", "")}
	cfg.BotsPath = request.GetString("bots_path", "")
	cfg.ProbsPath = request.GetString("probs_path", "")
	if k := request.GetString("key", ""); k != "" {
		cfg.CalibrationKey = k
	}
	if err := applyThreshold(cfg, request.GetFloat("threshold", -1)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid evaluation parameters: %v", err)), nil
	}

	tally, weights, err := core.GetEvaluateResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	result := struct {
		Tally   schema.ScoreTally      `json:"tally"`
		Weights schema.EnsembleWeights `json:"weights"`
	}{Tally: tally, Weights: weights}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
