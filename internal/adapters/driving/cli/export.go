package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive as rows, xlsx or markdown",
	Long: `Renders the deduplicated archive, or the part files when no deduplicated
archive exists yet.

Formats:
  rows      JSON array of 来源/描述/选项/正确答案/解释 rows
  xlsx      Excel workbook with the same columns
  markdown  printable document with YAML front matter

Without --out the result is written to standard output. An --out path without an
extension gets the format's extension.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// stdoutIsTerminal reports whether the command writes to a TTY.
var stdoutIsTerminal = func(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "xlsx", "output format")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}

	format := strings.ToLower(strings.TrimSpace(exportFormat))
	if formats := exportService.Formats(); !slices.Contains(formats, format) {
		return fmt.Errorf("unknown format %q (available: %s)", exportFormat, strings.Join(formats, ", "))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if exportOut == "" {
		if format == "xlsx" && stdoutIsTerminal(cmd) {
			return errors.New("refusing to write a workbook to the terminal; use --out")
		}
		if err := exportService.Export(ctx, format, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		return nil
	}

	if err := exportService.ExportFile(ctx, format, exportOut); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	cmd.PrintErrf("Exported %s to %s\n", format, exportOut)
	return nil
}
