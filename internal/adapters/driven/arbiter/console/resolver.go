// Package console resolves merge conflicts with a line prompt.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
)

// Ensure Resolver implements the interface.
var _ driven.ConflictResolver = (*Resolver)(nil)

// ErrNoInput is returned when the input closes before a valid choice.
var ErrNoInput = errors.New("input closed before a choice was made")

// Resolver prints both records of a conflict and reads "a" or "b".
type Resolver struct {
	in  *bufio.Reader
	out io.Writer

	// A single goroutine owns in; lines reach Resolve through this channel,
	// so a read left pending by a cancelled Resolve is delivered to the next.
	startReader sync.Once
	lines       chan readResult

	title   *color.Color
	label   *color.Color
	clash   *color.Color
	muted   *color.Color
	problem *color.Color
}

// New creates a console resolver. Colour is enabled only when out is a terminal.
func New(in io.Reader, out io.Writer) *Resolver {
	r := &Resolver{
		in:      bufio.NewReader(in),
		out:     out,
		title:   color.New(color.FgCyan, color.Bold),
		label:   color.New(color.FgGreen),
		clash:   color.New(color.FgYellow, color.Bold),
		muted:   color.New(color.FgHiBlack),
		problem: color.New(color.FgRed),
	}
	if !IsTerminal(out) {
		for _, c := range []*color.Color{r.title, r.label, r.clash, r.muted, r.problem} {
			c.DisableColor()
		}
	}
	return r
}

// IsTerminal reports whether w is attached to a TTY.
func IsTerminal(w any) bool {
	switch f := w.(type) {
	case *os.File:
		return term.IsTerminal(int(f.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(f.Fd()))
	default:
		return false
	}
}

// Resolve shows the conflict and blocks until a valid choice, EOF or ctx is done.
func (r *Resolver) Resolve(ctx context.Context, conflict domain.MergeConflict) (domain.ResolutionChoice, error) {
	r.show(conflict)

	for {
		fmt.Fprintf(r.out, "Keep which record? [%s/%s]: ", domain.KeepFirst, domain.KeepSecond)

		line, err := r.readLine(ctx)
		if err != nil {
			return "", err
		}

		choice, err := domain.ParseResolutionChoice(line)
		if err != nil {
			r.problem.Fprintf(r.out, "Please enter %q or %q.\n", domain.KeepFirst, domain.KeepSecond)
			continue
		}
		return choice, nil
	}
}

type readResult struct {
	line string
	err  error
}

// readLines feeds lines from in until the first read error, then closes lines.
func (r *Resolver) readLines() {
	defer close(r.lines)
	for {
		line, err := r.in.ReadString('\n')
		r.lines <- readResult{line, err}
		if err != nil {
			return
		}
	}
}

// readLine reads one line, giving up when ctx is done.
func (r *Resolver) readLine(ctx context.Context) (string, error) {
	r.startReader.Do(func() {
		r.lines = make(chan readResult)
		go r.readLines()
	})

	select {
	case <-ctx.Done():
		fmt.Fprintln(r.out)
		return "", ctx.Err()
	case res, ok := <-r.lines:
		if !ok {
			return "", ErrNoInput
		}
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && strings.TrimSpace(res.line) != "" {
				return res.line, nil
			}
			if errors.Is(res.err, io.EOF) {
				return "", ErrNoInput
			}
			return "", fmt.Errorf("reading choice: %w", res.err)
		}
		return res.line, nil
	}
}

func (r *Resolver) show(conflict domain.MergeConflict) {
	fmt.Fprintln(r.out)
	r.title.Fprintf(r.out, "Conflict: %s\n", conflict.Description())
	r.muted.Fprintf(r.out, "Both records set %s to different values.\n", strings.Join(conflict.Fields, ", "))

	r.showRecord(domain.KeepFirst, "incoming", conflict.First, conflict.Fields)
	r.showRecord(domain.KeepSecond, "stored", conflict.Second, conflict.Fields)
}

func (r *Resolver) showRecord(choice domain.ResolutionChoice, role string, rec domain.QuestionRecord, clashing []string) {
	fmt.Fprintln(r.out)
	r.label.Fprintf(r.out, "[%s] %s record\n", choice, role)
	fmt.Fprintf(r.out, "  type:     %s\n", rec.Type)
	fmt.Fprintf(r.out, "  choices:  %s\n", strings.Join(rec.Choices, " | "))
	fmt.Fprintf(r.out, "  answer:   %v\n", rec.AnswerIndex.Indices())

	for _, f := range []struct {
		name  string
		value *string
	}{
		{domain.FieldSolution, rec.Solution},
		{domain.FieldNote, rec.Note},
		{domain.FieldTag, rec.Tag},
	} {
		value := "(none)"
		if f.value != nil {
			value = *f.value
		}
		line := fmt.Sprintf("  %-9s %s\n", f.name+":", value)
		if contains(clashing, f.name) {
			r.clash.Fprint(r.out, line)
		} else {
			fmt.Fprint(r.out, line)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
