// Package cli wires the cobra command tree to the core services.
// Commands hold no business logic; they parse flags, call a driving
// port and render the result.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/formfill-labs/formfill-cli/internal/core/ports/driving"
	"github.com/formfill-labs/formfill-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services are injected by main before Execute. Commands check for nil
// so a partially wired binary fails with a clear message.
var (
	ingestService driving.IngestService
	searchService driving.SearchService
	fieldService  driving.FieldService
)

var rootCmd = &cobra.Command{
	Use:   "formfill",
	Short: "Local form-autofill retrieval engine",
	Long: `formfill ingests personal documents into a local index and
retrieves the right snippets for form fields: classify a field,
gather supporting evidence and propose a fill value. Everything
stays on disk; no document content leaves the machine.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the core services. Call before Execute.
func SetServices(ingest driving.IngestService, search driving.SearchService, field driving.FieldService) {
	ingestService = ingest
	searchService = search
	fieldService = field
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
