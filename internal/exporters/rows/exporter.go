// Package rows flattens archive batches into spreadsheet-ready rows.
package rows

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/jsonenc"
)

// Ensure Exporter implements the interface.
var _ driven.Exporter = (*Exporter)(nil)

// NoSolution fills the explanation column when a record has none.
const NoSolution = "无"

// Column headers, in output order.
var Headers = []string{"来源", "描述", "选项", "正确答案", "解释"}

// Row is one question flattened for a spreadsheet.
type Row struct {
	Source      string `json:"来源"`
	Description string `json:"描述"`
	Choices     string `json:"选项"`
	Answers     string `json:"正确答案"`
	Solution    string `json:"解释"`
}

// Values returns the row in Headers order.
func (r Row) Values() []string {
	return []string{r.Source, r.Description, r.Choices, r.Answers, r.Solution}
}

// CleanDescription strips a <p>…</p> wrapper and turns &nbsp; into spaces.
func CleanDescription(desc string) string {
	if strings.HasPrefix(desc, "<p>") && strings.HasSuffix(desc, "</p>") && len(desc) >= len("<p></p>") {
		desc = desc[len("<p>") : len(desc)-len("</p>")]
	}
	return strings.ReplaceAll(desc, "&nbsp;", " ")
}

// Builder turns batches into rows.
type Builder struct {
	clean func(string) string
}

// Option configures a Builder.
type Option func(*Builder)

// WithDescriptionCleaner replaces CleanDescription.
func WithDescriptionCleaner(fn func(string) string) Option {
	return func(b *Builder) {
		if fn != nil {
			b.clean = fn
		}
	}
}

// NewBuilder creates a row builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{clean: CleanDescription}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build flattens batches in order. Choices and answers are sorted and
// joined with newlines. Any invalid record fails the build.
func (b *Builder) Build(batches []domain.ArchiveBatch) ([]Row, error) {
	rows := make([]Row, 0, domain.CountQuestions(batches))
	for _, batch := range batches {
		for i, rec := range batch.Questions {
			q, err := domain.NewQuestion(rec)
			if err != nil {
				return nil, fmt.Errorf("part %q, question %d: %w", batch.Part, i+1, err)
			}
			solution := NoSolution
			if s := q.Solution(); s != nil {
				solution = *s
			}
			rows = append(rows, Row{
				Source:      batch.Part,
				Description: b.clean(q.Description()),
				Choices:     strings.Join(q.ChoiceTextSet().Sorted(), "\n"),
				Answers:     strings.Join(q.ResolvedAnswerSet().Sorted(), "\n"),
				Solution:    solution,
			})
		}
	}
	return rows, nil
}

// Exporter writes rows as one JSON array.
type Exporter struct {
	builder *Builder
}

// New creates a rows exporter.
func New(opts ...Option) *Exporter {
	return &Exporter{builder: NewBuilder(opts...)}
}

// Format returns "rows".
func (e *Exporter) Format() string {
	return "rows"
}

// Extension returns ".json".
func (e *Exporter) Extension() string {
	return ".json"
}

// Export writes the rows of batches to w.
func (e *Exporter) Export(_ context.Context, w io.Writer, batches []domain.ArchiveBatch) error {
	rows, err := e.builder.Build(batches)
	if err != nil {
		return err
	}
	data, err := jsonenc.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}
	_, err = w.Write(data)
	return err
}
