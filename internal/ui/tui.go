// Package ui provides the optional terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tasklinks/tasklinks/internal/config"
	"github.com/tasklinks/tasklinks/internal/graph"
	"github.com/tasklinks/tasklinks/internal/task"
	"github.com/tasklinks/tasklinks/internal/view"
)

// Run starts the TUI: a query bar over the same selector and renderer
// the CLI uses.
func Run(ctx context.Context, cfg *config.Config, logger *log.Logger, styles view.Styles) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(cfg, logger, styles)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	cfg      *config.Config
	logger   *log.Logger
	styles   view.Styles
	rel      *graph.Relations
	loadErr  error
	input    textinput.Model
	body     string
	status   string
	showHelp bool
}

func newTUIModel(cfg *config.Config, logger *log.Logger, styles view.Styles) *tuiModel {
	input := textinput.New()
	input.Placeholder = "query, e.g. 45 -r or -a work -s run"
	input.Prompt = "❯ "
	input.Focus()

	m := &tuiModel{
		cfg:    cfg,
		logger: logger,
		styles: styles,
		input:  input,
	}
	m.reload()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.runQuery(m.input.Value())
			return m, nil
		case "ctrl+r":
			m.reload()
			return m, nil
		case "ctrl+l":
			m.input.SetValue("")
			m.runQuery("")
			return m, nil
		case "f1":
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.loadErr != nil {
		b.WriteString("Error loading tasks:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	writeOverview(&b, m.rel)
	if m.status != "" {
		b.WriteString(m.status + "\n\n")
	}
	b.WriteString(m.body)
	b.WriteString("\n" + m.input.View() + "\n\n")
	writeFooter(&b)
	return b.String()
}

// reload rebuilds the entity set and the indexes, then replays the
// current query against them.
func (m *tuiModel) reload() {
	tasks, err := task.LoadAll(m.cfg.BaseDir, m.cfg.NotesDir, m.cfg.NoteExt, m.cfg.TaskFiles, m.logger)
	if err != nil {
		m.loadErr = err
		m.rel = nil
		return
	}
	m.loadErr = nil
	m.rel = graph.Build(tasks)
	m.runQuery(m.input.Value())
}

func (m *tuiModel) runQuery(input string) {
	if m.rel == nil {
		return
	}
	q := view.ParseQuery(input, view.Options{
		HideNotes:   m.cfg.Display.HideNotes,
		ShowDone:    m.cfg.Display.ShowDone,
		OnlyLinked:  m.cfg.Display.OnlyLinked,
		ShowContent: m.cfg.Display.ShowContent,
	})

	roots, err := view.Select(m.rel, q)
	if err != nil {
		switch {
		case errors.Is(err, view.ErrNotFound):
			m.status = m.styles.Warn(fmt.Sprintf("✗ Task at line %d not found", q.Line))
		case errors.Is(err, view.ErrHidden):
			m.status = m.styles.Warn(fmt.Sprintf("✗ Task at line %d is completed (hidden). Use -sd to display.", q.Line))
		case errors.Is(err, view.ErrNoMatches):
			m.status = m.styles.Warn("✗ No tasks found with given filters")
		default:
			m.status = m.styles.Error("✗ " + err.Error())
		}
		m.body = ""
		return
	}

	m.status = ""
	var out strings.Builder
	view.NewRenderer(&out, m.rel, q.Opts, m.styles).Render(roots)
	m.body = out.String()
}

func writeTitle(b *strings.Builder) {
	title := "Tasklinks TUI"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, rel *graph.Relations) {
	open, done := 0, 0
	for _, t := range rel.Tasks {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	b.WriteString(fmt.Sprintf("Tasks: %d open, %d done, %d linked roots\n\n",
		open, done, len(rel.Roots(true))))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  enter        Run the query\n")
	b.WriteString("  ctrl+l       Clear the query (show all roots)\n")
	b.WriteString("  ctrl+r       Reload task and note files\n")
	b.WriteString("  f1           Toggle this help screen\n")
	b.WriteString("  esc, ctrl+c  Quit\n\n")
	b.WriteString("Query syntax is the same as the repl: <line>, -r, -hn, -sd,\n")
	b.WriteString("-l, -sc, -a <area>, -s <status>, -c <context>, -t <tag>...\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press F1 for help | esc to quit\n")
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
