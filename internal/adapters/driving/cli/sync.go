package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync [source-id]",
	Short: "Pull entities from a source",
	Long: `Validates the source's credentials, then pulls its entities and writes
them as one JSON document per line. Output goes to stdout unless --output
is given. Each run is recorded and visible via 'tapestry history'.`,
	Args: cobra.ExactArgs(1),
	RunE: runSyncCmd,
}

var historyCmd = &cobra.Command{
	Use:   "history [source-id]",
	Short: "Show recorded sync runs for a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var syncOutput string

func init() {
	syncCmd.Flags().StringVarP(&syncOutput, "output", "o", "", "write entities to a file instead of stdout")
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(historyCmd)
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	sourceID := args[0]
	out := cmd.OutOrStdout()
	if syncOutput != "" {
		file, err := os.Create(syncOutput)
		if err != nil {
			return fmt.Errorf("open output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	run, err := syncService.Run(context.Background(), sourceID, out)
	if err != nil {
		if run != nil && run.Total() > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Emitted %d entities before failing.\n", run.Total())
		}
		return fmt.Errorf("sync failed: %w", err)
	}

	// Entity lines go to out; the summary goes to stderr so piped output
	// stays clean JSON.
	summary := cmd.ErrOrStderr()
	fmt.Fprintf(summary, "Sync complete: %d entities in %s\n",
		run.Total(), run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	for _, kind := range sortedKinds(run.EntityCounts) {
		fmt.Fprintf(summary, "  %s: %d\n", kind, run.EntityCounts[kind])
	}
	return nil
}

func sortedKinds(counts map[string]int) []string {
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func runHistory(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	runs, err := syncService.History(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No recorded runs for this source.")
		return nil
	}

	for i := range runs {
		run := &runs[i]
		status := "ok"
		if run.Error != "" {
			status = "failed: " + run.Error
		}
		cmd.Printf("%s  %s  %d entities  %s\n",
			run.StartedAt.Format(time.RFC3339), run.ID, run.Total(), status)
	}
	return nil
}
