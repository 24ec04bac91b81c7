// Command ats scores résumé files from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ats-backend/internal/shared/telemetry"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ats",
		Short:         "ATS résumé scoring",
		Long:          "ats scores résumés for applicant tracking system compatibility and prints the analysis as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("taxonomy", "", "Path to a YAML skill taxonomy (defaults to TAXONOMY_FILE or the built-in catalog)")
	root.AddCommand(newAnalyzeCmd(), newTaxonomyCmd(), newVersionCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()
	// stdout carries the JSON result
	telemetry.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
