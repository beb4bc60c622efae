// main is the entry point for the botspot CLI.
package main

import (
	"fmt"
	"os"

	"botspot/cmd"
	"botspot/internal/contract"
	"botspot/internal/persist"
)

func main() {
	// The cmd layer resolves config before any store exists, so hand it the
	// global manager up front; sharedSetup fills it in during PreRunE.
	cmd.SetStoreManager(persist.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	persist.CloseStores()

	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
