// Package tui resolves merge conflicts in a full-screen side-by-side view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quizarc/internal/core/domain"
	"github.com/custodia-labs/quizarc/internal/core/ports/driven"
)

// Ensure Resolver implements the interface.
var _ driven.ConflictResolver = (*Resolver)(nil)

// ErrAborted is returned when the operator leaves the view without choosing.
var ErrAborted = errors.New("arbitration aborted")

// Resolver runs one bubbletea program per conflict.
type Resolver struct {
	in     io.Reader
	out    io.Writer
	styles *Styles
	keys   *KeyMap
	opts   []tea.ProgramOption
}

// New creates a TUI resolver reading keys from in and drawing on out.
// Extra program options are appended after the defaults.
func New(in io.Reader, out io.Writer, opts ...tea.ProgramOption) *Resolver {
	return &Resolver{
		in:     in,
		out:    out,
		styles: DefaultStyles(),
		keys:   DefaultKeyMap(),
		opts:   opts,
	}
}

// Resolve shows the conflict until the operator presses a or b.
func (r *Resolver) Resolve(ctx context.Context, conflict domain.MergeConflict) (domain.ResolutionChoice, error) {
	model := NewModel(conflict, r.styles, r.keys)

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(r.in),
		tea.WithOutput(r.out),
		tea.WithAltScreen(),
	}
	opts = append(opts, r.opts...)

	final, err := tea.NewProgram(model, opts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("running arbitration view: %w", err)
	}

	m, ok := final.(*Model)
	if !ok {
		return "", fmt.Errorf("unexpected model %T", final)
	}
	if m.Aborted() || m.Choice() == "" {
		return "", ErrAborted
	}
	return m.Choice(), nil
}
