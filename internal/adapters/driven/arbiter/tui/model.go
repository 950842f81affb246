package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quizarc/internal/core/domain"
)

const (
	defaultWidth  = 100
	defaultHeight = 24

	// Rows taken by the title, the hint line and the help footer.
	chromeHeight = 5
)

// Model is the bubbletea model of one arbitration.
type Model struct {
	conflict domain.MergeConflict
	styles   *Styles
	keys     *KeyMap
	viewport viewport.Model

	width   int
	height  int
	invalid string

	choice  domain.ResolutionChoice
	aborted bool
}

// NewModel creates the view for conflict.
func NewModel(conflict domain.MergeConflict, s *Styles, k *KeyMap) *Model {
	if s == nil {
		s = DefaultStyles()
	}
	if k == nil {
		k = DefaultKeyMap()
	}
	m := &Model{
		conflict: conflict,
		styles:   s,
		keys:     k,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.viewport.SetContent(m.panes())
	return m
}

// Choice returns the selected side, empty until one is made.
func (m *Model) Choice() domain.ResolutionChoice {
	return m.choice
}

// Aborted reports whether the operator cancelled the run.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Init initialises the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and resizes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.viewport.SetContent(m.panes())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.KeepFirst):
			m.choice = domain.KeepFirst
			return m, tea.Quit
		case key.Matches(msg, m.keys.KeepSecond):
			m.choice = domain.KeepSecond
			return m, tea.Quit
		case key.Matches(msg, m.keys.Abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		default:
			m.invalid = fmt.Sprintf("%q is not a choice; press %s or %s", msg.String(), domain.KeepFirst, domain.KeepSecond)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the title, both panes and the footer.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Conflict: " + m.conflict.Description()))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Differs on both sides: " + strings.Join(m.conflict.Fields, ", ")))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.invalid != "" {
		b.WriteString(m.styles.Error.Render(m.invalid))
	}
	b.WriteString("\n")
	b.WriteString(m.help())
	return b.String()
}

func (m *Model) help() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.Help.Render(strings.Join(parts, " • "))
}

// panes renders the two records side by side.
func (m *Model) panes() string {
	// Each pane loses two columns to the border and two to padding.
	inner := max((m.width-8)/2, 10)
	left := m.pane(domain.KeepFirst, "incoming", m.conflict.First, inner)
	right := m.pane(domain.KeepSecond, "stored", m.conflict.Second, inner)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m *Model) pane(choice domain.ResolutionChoice, role string, rec domain.QuestionRecord, width int) string {
	var lines []string
	lines = append(lines, m.styles.PaneTitle.Render(fmt.Sprintf("[%s] %s", choice, role)))
	lines = append(lines, m.field("type", rec.Type.String(), false))
	for i, c := range rec.Choices {
		lines = append(lines, m.field(fmt.Sprintf("choice %d", i), c, false))
	}
	lines = append(lines, m.field("answer", fmt.Sprint(rec.AnswerIndex.Indices()), false))

	for _, f := range []struct {
		name  string
		value *string
	}{
		{domain.FieldSolution, rec.Solution},
		{domain.FieldNote, rec.Note},
		{domain.FieldTag, rec.Tag},
	} {
		clash := false
		for _, name := range m.conflict.Fields {
			if name == f.name {
				clash = true
			}
		}
		if f.value == nil {
			lines = append(lines, m.field(f.name, "(none)", clash))
			continue
		}
		lines = append(lines, m.field(f.name, *f.value, clash))
	}

	return m.styles.Pane.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) field(name, value string, clash bool) string {
	label := m.styles.Muted.Render(name + ": ")
	if clash {
		return label + m.styles.Clash.Render(value)
	}
	return label + m.styles.Normal.Render(value)
}
