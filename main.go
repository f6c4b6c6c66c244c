// =============================================================================
// Deterioro Report - Main Entry Point
// =============================================================================
//
// This is the main entry point for the impairment report CLI. It initializes
// the Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   deterioro process       - Build the report from the accounting export
//   deterioro version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Loaders, analysis, writer and formatter
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/deterioro-report/cmd"
)

func main() {
	cmd.Execute()
}
