package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quizarc/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/services"
	"github.com/custodia-labs/quizarc/internal/exporters/markdown"
	"github.com/custodia-labs/quizarc/internal/exporters/rows"
	"github.com/custodia-labs/quizarc/internal/exporters/xlsx"
	"github.com/custodia-labs/quizarc/internal/logger"
)

// testEnv holds the in-memory adapters behind the services under test.
type testEnv struct {
	archive *memory.ArchiveStore
	journal *memory.RunJournal
	config  *memory.ConfigStore
}

// setupTestServices wires real services over memory adapters and restores
// package state when the test ends.
func setupTestServices(t *testing.T, batches ...domain.ArchiveBatch) *testEnv {
	t.Helper()

	env := &testEnv{
		archive: memory.NewArchiveStore(batches...),
		journal: memory.NewRunJournal(),
		config:  memory.NewConfigStore(),
	}
	titles := memory.TitleMap{"t-1": "第二章 测验"}

	SetServices(&Services{
		Import:   services.NewImportService(env.archive, titles, true),
		Dedupe:   services.NewDedupeService(env.archive, nil, env.journal),
		Export:   services.NewExportService(env.archive, rows.New(), xlsx.New(), markdown.New()),
		Archive:  services.NewArchiveQueryService(env.archive),
		History:  services.NewHistoryService(env.journal),
		Settings: services.NewSettingsService(env.config),
	})

	t.Cleanup(func() {
		SetServices(nil)
		resetFlags()
		stdinIsTerminal = func() bool { return false }
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})
	return env
}

func resetFlags() {
	importPart, importOverwrite, importWatch = "", false, ""
	exportFormat, exportOut = "xlsx", ""
	searchLimit, searchJSON = 10, false
	historyLimit = 20
	verbose, configDir = false, ""
}

// execute runs the root command with args and stdin, returning combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func question(desc string) domain.QuestionRecord {
	return domain.QuestionRecord{
		Description: desc,
		Type:        domain.QuestionTypeSingle,
		Choices:     []string{"甲", "乙"},
		AnswerIndex: domain.SingleAnswer(0),
	}
}

func init() {
	stdinIsTerminal = func() bool { return false }
}
