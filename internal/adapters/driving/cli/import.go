package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/quizarc/internal/adapters/driving/inbox"
	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
	"github.com/custodia-labs/quizarc/internal/logger"
)

var (
	importPart      string
	importOverwrite bool
	importWatch     string
)

// stdinIsTerminal decides whether a missing part label may be asked for.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import raw question dumps into the archive",
	Long: `Import raw JSON dumps into per-part files in the archive directory.

A capture dump (with "summary" and "testId") is filed under the title looked up
for its test ID. A plain question array needs --part; on a terminal the label is
asked for when the flag is missing.

With --watch, the inbox directory is watched and every .json file dropped into
it is imported until interrupted.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if importWatch == "" && len(args) == 0 {
			return errors.New("requires at least one file, or --watch")
		}
		return nil
	},
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importPart, "part", "p", "", "part label for plain question arrays")
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "replace an existing part file")
	importCmd.Flags().StringVarP(&importWatch, "watch", "w", "", "watch an inbox directory and import new dumps")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := driving.ImportOptions{Part: importPart, Overwrite: importOverwrite}
	if importPart == "" && stdinIsTerminal() {
		opts.AskPart = partPrompt(cmd, bufio.NewReader(cmd.InOrStdin()))
	}

	if len(args) > 0 {
		results, err := importService.ImportFiles(ctx, args, opts)
		for i := range results {
			printImportResult(cmd, &results[i])
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
	}

	if importWatch != "" {
		return watchInbox(ctx, cmd, importWatch, opts)
	}
	return nil
}

// watchInbox imports each settled dump until ctx is done. Failures are
// reported and watching continues.
func watchInbox(ctx context.Context, cmd *cobra.Command, dir string, opts driving.ImportOptions) error {
	paths, err := inbox.New(dir, 0).Watch(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Watching %s for new dumps (Ctrl-C to stop)\n", dir)

	for path := range paths {
		result, err := importService.ImportFile(ctx, path, opts)
		if err != nil {
			logger.Warn("%v", err)
			continue
		}
		printImportResult(cmd, result)
	}
	return nil
}

func printImportResult(cmd *cobra.Command, r *driving.ImportResult) {
	kind := "question array"
	if r.FromCapture {
		kind = "capture dump"
	}
	cmd.Printf("%s -> %s (%d questions, %s)\n", r.Source, r.Part, r.Questions, kind)
	for _, w := range r.Warnings {
		cmd.Printf("  warning: %s\n", w)
	}
}

// partPrompt asks for a part label on the command's output.
func partPrompt(cmd *cobra.Command, reader *bufio.Reader) func(string) (string, error) {
	return func(source string) (string, error) {
		for {
			cmd.Printf("Part label for %s: ", source)
			line, err := reader.ReadString('\n')
			if label := strings.TrimSpace(line); label != "" {
				return label, nil
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					return "", io.ErrUnexpectedEOF
				}
				return "", err
			}
		}
	}
}
