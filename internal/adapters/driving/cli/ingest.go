package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/formfill-labs/formfill-cli/internal/core/ports/driving"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest documents into the local index",
	Long: `Reads one or more plain-text files, chunks and embeds them, and
adds them to the local index. Re-ingesting a file replaces its
previous version instead of duplicating it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	failed := 0
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("Skipping %s: %v\n", path, err)
			failed++
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}

		result, err := ingestService.Ingest(ctx, driving.IngestRequest{
			Name:    filepath.Base(path),
			Path:    abs,
			Content: string(content),
		})
		if err != nil {
			cmd.PrintErrf("Skipping %s: %v\n", path, err)
			failed++
			continue
		}

		verb := "Ingested"
		if result.Replaced {
			verb = "Replaced"
		}
		cmd.Printf("%s %s (%d chunks)\n", verb, result.Document.Name, result.ChunkCount)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
