package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

var historyLimit int

const historyTimeLayout = "2006-01-02 15:04:05"

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show past deduplication runs",
	Long: `Without arguments, lists recent deduplication runs, newest first.
With a run ID, shows every merge decision of that run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 1 {
		return showRun(ctx, cmd, args[0])
	}

	runs, err := historyService.Runs(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("listing runs failed: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		cmd.Printf("%s  %s  in=%d unique=%d dup=%d merged=%d conflicts=%d\n",
			r.ID, r.StartedAt.Local().Format(historyTimeLayout),
			r.Inputs, r.Unique, r.Duplicates, r.Merged, r.Conflicts)
	}
	return nil
}

func showRun(ctx context.Context, cmd *cobra.Command, id string) error {
	run, decisions, err := historyService.Run(ctx, id)
	if err != nil {
		return fmt.Errorf("loading run failed: %w", err)
	}

	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("  Started:  %s\n", run.StartedAt.Local().Format(historyTimeLayout))
	cmd.Printf("  Duration: %s\n", run.Duration())
	if run.Output != "" {
		cmd.Printf("  Output:   %s\n", run.Output)
	}
	cmd.Println()

	if len(decisions) == 0 {
		cmd.Println("No collisions.")
		return nil
	}
	for _, d := range decisions {
		cmd.Printf("  #%d %-10s %s\n", d.Seq, d.Kind, d.Description)
		cmd.Printf("      part: %s", d.Part)
		if len(d.Fields) > 0 {
			cmd.Printf("  fields: %s", strings.Join(d.Fields, ", "))
		}
		if d.Kind == domain.DecisionArbitrated {
			cmd.Printf("  kept: %s", d.Choice)
		}
		cmd.Println()
	}
	return nil
}
