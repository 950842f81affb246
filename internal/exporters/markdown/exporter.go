// Package markdown renders archive batches as a printable Markdown document.
package markdown

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
	"github.com/custodia-labs/quizarc/internal/exporters/rows"
)

// Ensure Exporter implements the interface.
var _ driven.Exporter = (*Exporter)(nil)

// DefaultTitle heads the document when none is configured.
const DefaultTitle = "题库"

// DateLayout formats the front matter date.
const DateLayout = "2006 / 01 / 02"

// frontMatter is the YAML header of the document.
type frontMatter struct {
	Title     string `yaml:"title"`
	Date      string `yaml:"date"`
	Parts     int    `yaml:"parts"`
	Questions int    `yaml:"questions"`
}

// Exporter writes one section per part with numbered questions.
type Exporter struct {
	title string
	now   func() time.Time
	clean func(string) string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(e *Exporter) {
		if strings.TrimSpace(title) != "" {
			e.title = title
		}
	}
}

// WithClock replaces time.Now for the front matter date.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates a markdown exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{title: DefaultTitle, now: time.Now, clean: rows.CleanDescription}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Format returns "markdown".
func (e *Exporter) Format() string {
	return "markdown"
}

// Extension returns ".md".
func (e *Exporter) Extension() string {
	return ".md"
}

// Export renders batches to w. Records are validated before anything is written.
func (e *Exporter) Export(_ context.Context, w io.Writer, batches []domain.ArchiveBatch) error {
	parsed := make([][]*domain.Question, len(batches))
	for bi, batch := range batches {
		for i, rec := range batch.Questions {
			q, err := domain.NewQuestion(rec)
			if err != nil {
				return fmt.Errorf("part %q, question %d: %w", batch.Part, i+1, err)
			}
			parsed[bi] = append(parsed[bi], q)
		}
	}

	header, err := yaml.Marshal(frontMatter{
		Title:     e.title,
		Date:      e.now().Format(DateLayout),
		Parts:     len(batches),
		Questions: domain.CountQuestions(batches),
	})
	if err != nil {
		return fmt.Errorf("encoding front matter: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "---\n%s---\n\n# %s\n", header, e.title)

	n := 0
	for bi, batch := range batches {
		fmt.Fprintf(bw, "\n## %s\n", batch.Part)
		for _, q := range parsed[bi] {
			n++
			e.writeQuestion(bw, n, q)
		}
	}

	return bw.Flush()
}

func (e *Exporter) writeQuestion(w io.Writer, n int, q *domain.Question) {
	rec := q.Record()

	fmt.Fprintf(w, "\n%d. **%s** (%s)\n\n", n, e.clean(rec.Description), rec.Type.Description())
	for i, c := range rec.Choices {
		fmt.Fprintf(w, "   %c. %s\n", 'A'+rune(i%26), c)
	}

	fmt.Fprintf(w, "\n   答案：%s\n", strings.Join(q.ResolvedAnswerSet().Sorted(), "；"))

	solution := rows.NoSolution
	if rec.Solution != nil {
		solution = *rec.Solution
	}
	fmt.Fprintf(w, "\n   解释：%s\n", indent(solution))

	if rec.Tag != nil {
		fmt.Fprintf(w, "\n   标签：%s\n", *rec.Tag)
	}
	if rec.Note != nil {
		fmt.Fprintf(w, "\n   备注：%s\n", indent(*rec.Note))
	}
}

// indent keeps multi-line text inside its list item.
func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n   ")
}
