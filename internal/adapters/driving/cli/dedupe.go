package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Fold all parts into one deduplicated archive",
	Long: `Reads every part file, keeps one record per question description and
writes the consolidated archive.

Equivalent repeats are dropped. Repeats that differ are merged: a missing note or
tag is filled in from the other record, and two different solutions are joined.
When both records carry a different note or tag you are asked which one to keep.`,
	Args: cobra.NoArgs,
	RunE: runDedupe,
}

func init() {
	rootCmd.AddCommand(dedupeCmd)
}

func runDedupe(cmd *cobra.Command, _ []string) error {
	if dedupeService == nil {
		return errNotConfigured("dedupe")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := dedupeService.DedupeArchive(ctx)
	if err != nil {
		return fmt.Errorf("dedupe failed: %w", err)
	}

	printDedupeReport(cmd, report)
	return nil
}

func printDedupeReport(cmd *cobra.Command, r *driving.DedupeReport) {
	cmd.Printf("Run %s\n", r.RunID)
	cmd.Printf("  Records read:    %d\n", r.Stats.Inputs)
	cmd.Printf("  Unique records:  %d in %d parts\n", r.Stats.Unique, r.Stats.Parts)
	cmd.Printf("  Duplicates:      %d\n", r.Stats.Duplicates)
	cmd.Printf("  Merged:          %d\n", r.Stats.Merged)
	cmd.Printf("  Conflicts:       %d\n", r.Stats.Conflicts)
	if r.Output != "" {
		cmd.Printf("  Written to:      %s\n", r.Output)
	}
}
