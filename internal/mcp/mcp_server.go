// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"botspot/internal/contract"
)

// NewMCPServer initializes and configures the Botspot MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Botspot Detection Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: scan_dataset ---
	s.AddTool(mcp.NewTool("scan_dataset",
		mcp.WithDescription("Score every account in a dataset and return the ranked bot verdicts."),
		mcp.WithString("dataset_path", mcp.Description("Path to the dataset JSON file."), mcp.Required()),
		mcp.WithString("bots_path", mcp.Description("Optional path to a ground-truth file of known bot ids; enables fresh calibration.")),
		mcp.WithString("probs_path", mcp.Description("Optional path to a JSON map of user id -> model bot probability.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked verdicts returned.")),
		mcp.WithNumber("threshold", mcp.Description("Decision threshold override in [0.1, 0.9].")),
	), h.handleScanDataset)

	// --- 2. Tool: optimize_weights ---
	s.AddTool(mcp.NewTool("optimize_weights",
		mcp.WithDescription("Calibrate ensemble weights against a labeled dataset and persist the winner."),
		mcp.WithString("dataset_path", mcp.Description("Path to the dataset JSON file."), mcp.Required()),
		mcp.WithString("bots_path", mcp.Description("Path to the ground-truth file of known bot ids."), mcp.Required()),
		mcp.WithString("probs_path", mcp.Description("Optional path to a JSON map of user id -> model bot probability.")),
		mcp.WithNumber("iterations", mcp.Description("Number of hill-climbing iterations.")),
		mcp.WithNumber("seed", mcp.Description("Random seed for a reproducible search (0 = time-seeded).")),
		mcp.WithString("key", mcp.Description("Weights-store key to persist under (defaults to the dataset language).")),
	), h.handleOptimizeWeights)

	// --- 3. Tool: evaluate_dataset ---
	s.AddTool(mcp.NewTool("evaluate_dataset",
		mcp.WithDescription("Score a labeled dataset with the current weights and return the competition tallies."),
		mcp.WithString("dataset_path", mcp.Description("Path to the dataset JSON file."), mcp.Required()),
		mcp.WithString("bots_path", mcp.Description("Path to the ground-truth file of known bot ids."), mcp.Required()),
		mcp.WithString("probs_path", mcp.Description("Optional path to a JSON map of user id -> model bot probability.")),
		mcp.WithString("key", mcp.Description("Weights-store key to evaluate (defaults to the dataset language).")),
		mcp.WithNumber("threshold", mcp.Description("Decision threshold override in [0.1, 0.9].")),
	), h.handleEvaluateDataset)

	return s
}

// StartMCPServer starts the Botspot MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
