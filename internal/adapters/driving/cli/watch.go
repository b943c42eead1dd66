package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/formfill-labs/formfill-cli/internal/adapters/driving/watch"
)

var watchWorkers int

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Keep a directory in sync with the index",
	Long: `Ingests every eligible file under the directory, then watches for
changes: new and modified files are re-ingested, deleted files are
removed from the index. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&watchWorkers, "workers", "w", watch.DefaultWorkers, "concurrent ingestions during the initial scan")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	watcher, err := watch.New(ingestService, args[0], watch.WithWorkers(watchWorkers))
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", args[0])
	if err := watcher.Run(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
