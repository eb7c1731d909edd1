// Package task parses todo.txt-style task lines and task files.
package task

import (
	"regexp"
	"strings"

	"github.com/tasklinks/tasklinks/internal/note"
)

// Task is one line of a task list together with its parsed attributes
// and the note trees loaded from its companion file.
type Task struct {
	LineNum   int
	Raw       string
	Title     string
	Completed bool
	Priority  string
	ID        string
	Status    string
	Link      string
	Area      string
	Type      string
	Tags      []string
	Context   string
	Due       string
	Notes     []*note.Note
}

// Recognized inline attribute patterns. The title pattern cuts the line
// at the first attribute tag; rec: is part of the boundary set even
// though it has no extractor of its own.
var (
	priorityPat = regexp.MustCompile(`\(([A-Z])\)`)
	titlePat    = regexp.MustCompile(`^(?:x\s+)?(?:\([A-Z]\)\s+)?(.+?)(?:\s+(?:area:|type:|st:|@|id:|link:|due:|rec:))`)
	idPat       = regexp.MustCompile(`id:(\S+)`)
	linkPat     = regexp.MustCompile(`link:(\S+)`)
	areaPat     = regexp.MustCompile(`area:(\S+)`)
	typePat     = regexp.MustCompile(`type:(\S+)`)
	statusPat   = regexp.MustCompile(`st:(\S+)`)
	tagPat      = regexp.MustCompile(`\+(\S+)`)
	contextPat  = regexp.MustCompile(`@(\S+)`)
	duePat      = regexp.MustCompile(`due:([\d-]+)`)
)

func extract(pat *regexp.Regexp, text string) string {
	if m := pat.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ParseLine parses a single task line. It returns false for blank lines
// and comment lines (leading #); every other line yields a task, however
// malformed. Each attribute is matched independently, so a missing tag
// simply leaves its field empty.
func ParseLine(line string, num int) (Task, bool) {
	stripped := strings.TrimSpace(line)
	if stripped == "" || strings.HasPrefix(stripped, "#") {
		return Task{}, false
	}

	title := stripped
	if m := titlePat.FindStringSubmatch(line); m != nil {
		title = strings.TrimSpace(m[1])
	}

	t := Task{
		LineNum:   num,
		Raw:       line,
		Title:     title,
		Completed: strings.HasPrefix(stripped, "x "),
		Priority:  extract(priorityPat, line),
		ID:        extract(idPat, line),
		Status:    extract(statusPat, line),
		Link:      extract(linkPat, line),
		Area:      extract(areaPat, line),
		Type:      extract(typePat, line),
		Context:   extract(contextPat, line),
		Due:       extract(duePat, line),
	}
	for _, m := range tagPat.FindAllStringSubmatch(line, -1) {
		t.Tags = append(t.Tags, m[1])
	}
	return t, true
}

// HasTag reports whether the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}
