// Package cli provides the cobra command tree of quizarc.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quizarc/internal/core/ports/driving"
	"github.com/custodia-labs/quizarc/internal/logger"
)

// version is set at build time through SetVersion.
var version = "dev"

// Options are the global flags handed to the bootstrap function.
type Options struct {
	// ConfigDir overrides the default configuration directory.
	ConfigDir string

	// Verbose enables debug output.
	Verbose bool
}

// Services are the driving ports the commands use. Any may be nil; commands
// that need a missing service fail with a "not configured" error.
type Services struct {
	Import   driving.ImportService
	Dedupe   driving.DedupeService
	Export   driving.ExportService
	Archive  driving.ArchiveQueryService
	History  driving.HistoryService
	Settings driving.SettingsService

	// Close releases resources such as the journal database.
	Close func() error
}

// Bootstrap builds the services once the global flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	configDir string
	verbose   bool

	bootstrap Bootstrap
	closer    func() error

	importService   driving.ImportService
	dedupeService   driving.DedupeService
	exportService   driving.ExportService
	archiveService  driving.ArchiveQueryService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "quizarc",
	Short: "Archive, deduplicate and export quiz questions",
	Long: `quizarc keeps an archive of quiz questions captured from online tests.

Import raw dumps into per-part files, fold them into one deduplicated archive,
and export it as JSON rows, an Excel workbook or a Markdown document.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if closer == nil {
			return nil
		}
		err := closer()
		closer = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.quizarc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands such as
// import --watch and mcp serve observe for cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that wires services from the global flags.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices injects services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	importService = s.Import
	dedupeService = s.Dedupe
	exportService = s.Export
	archiveService = s.Archive
	historyService = s.History
	settingsService = s.Settings
	closer = s.Close
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if bootstrap == nil {
		return nil
	}
	services, err := bootstrap(Options{ConfigDir: configDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	return nil
}

// errNotConfigured reports a missing service by name.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
