package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

const plainArray = `[
	{"desc":"1 + 1 = ?","type":1,"choices":["1","2"],"answer_idx":1},
	{"desc":"地球是圆的","type":3,"choices":["对","错"],"answer_idx":0}
]`

const captureDump = `{
	"summary":{"max_score":100,"score":90},
	"validated":true,
	"testId":"t-1",
	"answerId":"a-1",
	"content":{"0":{"desc":"Q","type":1,"choices":["a","b"],"answer_idx":0}}
}`

func TestImportCmd_Flags(t *testing.T) {
	assert.Equal(t, "p", importCmd.Flags().Lookup("part").Shorthand)
	assert.Equal(t, "false", importCmd.Flags().Lookup("overwrite").DefValue)
	assert.Equal(t, "w", importCmd.Flags().Lookup("watch").Shorthand)
}

func TestImportCmd_RequiresFileOrWatch(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "import")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least one file")
}

func TestImportCmd_PlainArrayWithPart(t *testing.T) {
	env := setupTestServices(t)
	path := writeFile(t, "dump.json", plainArray)

	out, err := execute(t, "", "import", "--part", "第一章", path)

	require.NoError(t, err)
	assert.Contains(t, out, path+" -> 第一章 (2 questions, question array)")

	batches, err := env.archive.ListBatches(context.Background())
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "第一章", batches[0].Part)
}

func TestImportCmd_CaptureDumpWarnings(t *testing.T) {
	setupTestServices(t)
	path := writeFile(t, "capture.json", captureDump)

	out, err := execute(t, "", "import", path)

	require.NoError(t, err)
	assert.Contains(t, out, "-> [未满分]第二章 测验 (1 questions, capture dump)")
	assert.Contains(t, out, "warning: dump does not carry a full score")
}

func TestImportCmd_MissingPartWithoutTerminal(t *testing.T) {
	setupTestServices(t)
	path := writeFile(t, "dump.json", plainArray)

	_, err := execute(t, "", "import", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportCmd_PromptsForPartOnTerminal(t *testing.T) {
	env := setupTestServices(t)
	stdinIsTerminal = func() bool { return true }
	path := writeFile(t, "dump.json", plainArray)

	out, err := execute(t, "\n第五章\n", "import", path)

	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Part label for "+path+": "))

	batches, err := env.archive.ListBatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "第五章", batches[0].Part)
}

func TestImportCmd_ExistingPart(t *testing.T) {
	setupTestServices(t, domain.ArchiveBatch{Part: "第一章"})
	path := writeFile(t, "dump.json", plainArray)

	_, err := execute(t, "", "import", "-p", "第一章", path)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	importPart, importOverwrite = "", false
	_, err = execute(t, "", "import", "-p", "第一章", "--overwrite", path)
	assert.NoError(t, err)
}

func TestPartPrompt_EOF(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)

	ask := partPrompt(cmd, bufio.NewReader(strings.NewReader("  ")))
	_, err := ask("x.json")

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestPartPrompt_LastLineWithoutNewline(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)

	ask := partPrompt(cmd, bufio.NewReader(strings.NewReader("第六章")))
	label, err := ask("x.json")

	require.NoError(t, err)
	assert.Equal(t, "第六章", label)
}
