package view

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tasklinks/tasklinks/internal/note"
	"github.com/tasklinks/tasklinks/internal/task"
)

// Styles is the terminal style table used by the renderer and the
// surrounding shells. PlainStyles yields uncolored output for pipes
// and tests.
type Styles struct {
	Red      lipgloss.Style
	Green    lipgloss.Style
	Yellow   lipgloss.Style
	Blue     lipgloss.Style
	Magenta  lipgloss.Style
	Cyan     lipgloss.Style
	Gray     lipgloss.Style
	DarkGray lipgloss.Style
	Orange   lipgloss.Style
	White    lipgloss.Style
	Bold     lipgloss.Style
	Italic   lipgloss.Style
	Code     lipgloss.Style
}

// DefaultStyles returns the 256-color palette.
func DefaultStyles() Styles {
	return Styles{
		Red:      lipgloss.NewStyle().Foreground(lipgloss.Color("174")),
		Green:    lipgloss.NewStyle().Foreground(lipgloss.Color("108")),
		Yellow:   lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		Blue:     lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
		Magenta:  lipgloss.NewStyle().Foreground(lipgloss.Color("139")),
		Cyan:     lipgloss.NewStyle().Foreground(lipgloss.Color("109")),
		Gray:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		DarkGray: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Orange:   lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
		White:    lipgloss.NewStyle().Foreground(lipgloss.Color("251")),
		Bold:     lipgloss.NewStyle().Bold(true),
		Italic:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240")),
		Code:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("236")),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	return Styles{}
}

func (s Styles) statusStyle(status string) lipgloss.Style {
	switch status {
	case "idea":
		return s.Yellow
	case "todo":
		return s.Gray
	case "run":
		return s.Blue
	case "hold":
		return s.Orange
	case "lock":
		return s.Red
	}
	return lipgloss.NewStyle()
}

func (s Styles) priorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "A":
		return s.Red
	case "B":
		return s.Blue
	}
	return lipgloss.NewStyle()
}

func (s Styles) noteTypeStyle(noteType string) lipgloss.Style {
	switch noteType {
	case "OBS":
		return s.Green
	case "HYP":
		return s.Yellow
	case "DO":
		return s.Blue
	case "RES":
		return s.Magenta
	case "HOLD":
		return s.Orange
	case "LOCK":
		return s.Red
	}
	return s.Cyan
}

// doneStyle dims a completed task's detail when completed tasks are
// being shown; otherwise the given style stands.
func (s Styles) doneStyle(completed, showDone bool, def lipgloss.Style) lipgloss.Style {
	if showDone && completed {
		return s.Gray
	}
	return def
}

// TaskLine formats one task line: line number, title, separator,
// priority, then metadata.
func (s Styles) TaskLine(t *task.Task, showDone bool) string {
	lineStyle := s.Cyan
	if t.Completed {
		lineStyle = s.Gray
	}
	parts := []string{lineStyle.Render(fmt.Sprintf("[%d]", t.LineNum))}

	titleStyle := s.doneStyle(t.Completed, showDone, s.White)
	parts = append(parts, titleStyle.Render(t.Title), titleStyle.Render("¶"))

	if t.Priority != "" {
		parts = append(parts, s.doneStyle(t.Completed, showDone, s.priorityStyle(t.Priority)).Render(t.Priority))
	}
	if meta := s.taskMetadata(t, showDone); meta != "" {
		parts = append(parts, meta)
	}
	return strings.Join(parts, " ")
}

func (s Styles) taskMetadata(t *task.Task, showDone bool) string {
	var parts []string
	if t.Status != "" {
		parts = append(parts, s.doneStyle(t.Completed, showDone, s.statusStyle(t.Status)).Render(t.Status+" ¶"))
	}
	if t.Area != "" {
		parts = append(parts, s.doneStyle(t.Completed, showDone, s.Green).Render(t.Area))
	}
	if t.Type != "" {
		parts = append(parts, s.doneStyle(t.Completed, showDone, s.Magenta).Render(t.Type))
	}
	if t.Context != "" {
		parts = append(parts, s.doneStyle(t.Completed, showDone, s.Blue).Render("@"+t.Context))
	}
	if t.Due != "" {
		parts = append(parts, s.doneStyle(t.Completed, showDone, s.Gray).Render("["+t.Due+"]"))
	}
	return strings.Join(parts, " ")
}

// NoteLine formats one note heading: typed badge, title, then date.
func (s Styles) NoteLine(n *note.Note) string {
	badge := "[NOTE]"
	if n.Type != "" {
		upper := strings.ToUpper(n.Type)
		badge = s.noteTypeStyle(upper).Render("[" + upper + "]")
	}
	line := badge + " " + s.White.Render(n.Title)
	if n.Date != "" {
		line += s.Gray.Render(" [" + n.Date + "]")
	}
	return line
}

var inlinePat = regexp.MustCompile("\\*\\*(.+?)\\*\\*|\\*([^*]+?)\\*|`([^`]+?)`")

// Markdown renders inline markdown (bold, italic, code) in a body line,
// with everything else in the muted base color.
func (s Styles) Markdown(line string) string {
	var b strings.Builder
	last := 0
	for _, m := range inlinePat.FindAllStringSubmatchIndex(line, -1) {
		if m[0] > last {
			b.WriteString(s.Gray.Render(line[last:m[0]]))
		}
		switch {
		case m[2] >= 0:
			b.WriteString(s.Bold.Render(line[m[2]:m[3]]))
		case m[4] >= 0:
			b.WriteString(s.Italic.Render(line[m[4]:m[5]]))
		default:
			b.WriteString(s.Code.Render(line[m[6]:m[7]]))
		}
		last = m[1]
	}
	if last < len(line) {
		b.WriteString(s.Gray.Render(line[last:]))
	}
	return b.String()
}

// Warn styles an informational warning message.
func (s Styles) Warn(msg string) string {
	return s.Yellow.Render(msg)
}

// Error styles a fatal error message.
func (s Styles) Error(msg string) string {
	return s.Red.Render(msg)
}
