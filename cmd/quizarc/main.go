// Command quizarc archives, deduplicates and exports quiz questions.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/custodia-labs/quizarc/internal/adapters/driven/arbiter/console"
	"github.com/custodia-labs/quizarc/internal/adapters/driven/arbiter/tui"
	"github.com/custodia-labs/quizarc/internal/adapters/driven/config/file"
	"github.com/custodia-labs/quizarc/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/quizarc/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/quizarc/internal/adapters/driving/cli"
	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/core/services"
	"github.com/custodia-labs/quizarc/internal/exporters/markdown"
	"github.com/custodia-labs/quizarc/internal/exporters/rows"
	"github.com/custodia-labs/quizarc/internal/exporters/xlsx"
	"github.com/custodia-labs/quizarc/internal/logger"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap wires the adapters selected by the saved settings into services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locating config directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	archive := jsonfile.NewArchiveStore(settings.Archive.Dir, settings.Archive.Output)
	titles := &lazyTitles{path: settings.Import.IDMapPath}

	var journal driven.RunJournal
	closeFn := func() error { return nil }
	if settings.Dedupe.Journal {
		store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
		if err != nil {
			return nil, fmt.Errorf("opening run journal: %w", err)
		}
		journal = store.RunJournal()
		closeFn = store.Close
	}

	return &cli.Services{
		Import:   services.NewImportService(archive, titles, settings.Import.MarkIncomplete),
		Dedupe:   services.NewDedupeService(archive, newResolver(settings.Dedupe.Arbiter), journal),
		Export:   services.NewExportService(archive, rows.New(), xlsx.New(), markdown.New()),
		Archive:  services.NewArchiveQueryService(archive),
		History:  services.NewHistoryService(journal),
		Settings: settingsService,
		Close:    closeFn,
	}, nil
}

// newResolver returns the conflict arbiter for kind. Prompts go to stderr so
// piped stdout stays clean.
func newResolver(kind domain.ArbiterKind) driven.ConflictResolver {
	if kind == domain.ArbiterTUI {
		return tui.New(os.Stdin, os.Stderr)
	}
	return console.New(os.Stdin, os.Stderr)
}

// lazyTitles reads the test ID map on first use, so commands that never import
// do not warn about a missing map.
type lazyTitles struct {
	path string

	once   sync.Once
	titles *file.TitleFile
	err    error
}

func (l *lazyTitles) load() {
	l.once.Do(func() {
		l.titles, l.err = file.LoadTitleFile(l.path)
		if l.err != nil {
			logger.Warn("title map unusable, capture dumps will be labelled by test ID: %v", l.err)
		}
	})
}

func (l *lazyTitles) Title(testID string) (string, bool) {
	l.load()
	if l.err != nil {
		return "", false
	}
	return l.titles.Title(testID)
}

func (l *lazyTitles) Len() int {
	l.load()
	if l.err != nil {
		return 0
	}
	return l.titles.Len()
}
