package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search archived questions",
	Long: `Finds questions whose description contains the query, ignoring case.
Reads the deduplicated archive, or the part files when it does not exist yet.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "List archive parts with their question counts",
	Args:  cobra.NoArgs,
	RunE:  runParts,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(partsCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if archiveService == nil {
		return errNotConfigured("archive")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := archiveService.Search(ctx, args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchTable(cmd, results)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, results []driving.QuestionView) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []driving.QuestionView) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, q := range results {
		cmd.Printf("  [%d] %s\n", i+1, q.Description)
		cmd.Printf("      Part: %s (%s)\n", q.Part, q.Type)
		cmd.Printf("      Choices: %s\n", strings.Join(q.Choices, " | "))
		cmd.Printf("      Answer: %s\n", strings.Join(q.Answers, " | "))
		if q.Solution != nil {
			cmd.Printf("      Solution: %s\n", *q.Solution)
		}
		cmd.Println()
	}
}

func runParts(cmd *cobra.Command, _ []string) error {
	if archiveService == nil {
		return errNotConfigured("archive")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	parts, err := archiveService.Parts(ctx)
	if err != nil {
		return fmt.Errorf("listing parts failed: %w", err)
	}
	if len(parts) == 0 {
		cmd.Println("The archive is empty.")
		return nil
	}

	total := 0
	for _, p := range parts {
		cmd.Printf("  %4d  %s\n", p.Questions, p.Part)
		total += p.Questions
	}
	cmd.Printf("  %4d  questions in %d parts\n", total, len(parts))
	return nil
}
