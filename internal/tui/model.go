// Package tui is the interactive conflict resolver: a two-level BubbleTea
// UI over the script conflicts of one document, with a unified diff of the
// two decoded scripts and single-key take-current/take-incoming actions.
package tui

import (
	"context"
	"fmt"
	"strings"

	"ignscript/internal/conflict"
	"ignscript/internal/journal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

// ── Styles ──────────────────────────────────────────────────────────────────

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("37"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	diffAddStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	diffDelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	diffHunkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))
)

// Recorder journals resolutions. *journal.Store satisfies it; nil disables
// journaling.
type Recorder interface {
	Record(ctx context.Context, r journal.Resolution) (int64, error)
}

// Model is the BubbleTea model for `igs resolve`.
//
// Navigation depth:
//
//	selected == nil → conflict list
//	selected != nil → diff view for one conflict
type Model struct {
	path     string
	doc      string
	save     func(string) error
	recorder Recorder

	conflicts []conflict.ScriptConflict
	cursor    int
	selected  *conflict.ScriptConflict

	status   string
	err      error
	quitting bool
}

// New builds a model over docText for the document at path. save persists
// the updated document text after each resolution.
func New(path, docText string, save func(string) error, rec Recorder) Model {
	return Model{
		path:      path,
		doc:       docText,
		save:      save,
		recorder:  rec,
		conflicts: conflict.Parse(docText),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.selected = nil
		m.err = nil
		return m, nil
	case "j", "down":
		if m.selected == nil && m.cursor < len(m.conflicts)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.selected == nil && m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "enter":
		if m.selected == nil && len(m.conflicts) > 0 {
			c := m.conflicts[m.cursor]
			m.selected = &c
		}
		return m, nil
	case "c":
		return m.resolve("current"), nil
	case "i":
		return m.resolve("incoming"), nil
	}
	return m, nil
}

// resolve takes one side of the conflict under the cursor, saves the
// document, journals the choice, and re-parses. Line numbers shift after
// every edit, so the conflict list is always rebuilt from the new text.
func (m Model) resolve(side string) Model {
	if len(m.conflicts) == 0 {
		return m
	}
	c := m.conflicts[m.cursor]
	if m.selected != nil {
		c = *m.selected
	}
	edit, err := conflict.ResolveTake(m.doc, c.ID, side)
	if err != nil {
		m.err = err
		return m
	}
	newDoc := conflict.ApplyEdit(m.doc, edit)
	if m.save != nil {
		if err := m.save(newDoc); err != nil {
			m.err = fmt.Errorf("save %s: %w", m.path, err)
			return m
		}
	}
	if m.recorder != nil {
		script := c.CurrentScript
		if side == "incoming" {
			script = c.IncomingScript
		}
		_, _ = m.recorder.Record(context.Background(), journal.Resolution{
			File:           m.path,
			ConflictID:     c.ID,
			JSONKey:        c.JSONKey,
			CurrentBranch:  c.CurrentBranch,
			IncomingBranch: c.IncomingBranch,
			Choice:         side,
			Script:         script,
		})
	}
	m.doc = newDoc
	m.conflicts = conflict.Parse(newDoc)
	m.selected = nil
	m.err = nil
	if m.cursor >= len(m.conflicts) && m.cursor > 0 {
		m.cursor = len(m.conflicts) - 1
	}
	m.status = fmt.Sprintf("took %s for %s", side, c.ID)
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("ignscript — "+m.path) + "\n\n")

	if len(m.conflicts) == 0 {
		b.WriteString(okStyle.Render("no script conflicts remain") + "\n\n")
		b.WriteString(dimStyle.Render("q quit"))
		return b.String()
	}
	if m.selected != nil {
		return b.String() + m.viewDetail(*m.selected)
	}
	return b.String() + m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d script conflict(s)", len(m.conflicts))) + "\n")
	for i, c := range m.conflicts {
		line := fmt.Sprintf("%s  lines %d-%d  %s ↔ %s",
			c.ID, c.StartLine+1, c.EndLine+1, c.CurrentBranch, c.IncomingBranch)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(okStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(dimStyle.Render("j/k move · enter diff · c take current · i take incoming · q quit"))
	return b.String()
}

func (m Model) viewDetail(c conflict.ScriptConflict) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(c.ID) + "\n")
	for _, line := range strings.Split(scriptDiff(c), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			b.WriteString(diffAddStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(diffDelStyle.Render(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(diffHunkStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(dimStyle.Render("c take current · i take incoming · esc back · q quit"))
	return b.String()
}

// scriptDiff renders a unified diff between the two decoded scripts.
func scriptDiff(c conflict.ScriptConflict) string {
	fromLabel := c.CurrentBranch
	if fromLabel == "" {
		fromLabel = "current"
	}
	toLabel := c.IncomingBranch
	if toLabel == "" {
		toLabel = "incoming"
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(c.CurrentScript),
		B:        difflib.SplitLines(c.IncomingScript),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("diff unavailable: %v", err)
	}
	if text == "" {
		return "(scripts are identical after decoding)"
	}
	return strings.TrimRight(text, "\n")
}
