// Package export writes machine-readable snapshots of the task graph.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tasklinks/tasklinks/internal/graph"
	"github.com/tasklinks/tasklinks/internal/note"
)

// SchemaVersion is the snapshot format version.
const SchemaVersion = 1

// Snapshot is one JSON export of the task set with resolved relations.
type Snapshot struct {
	SchemaVersion int    `json:"schema_version"`
	Tasks         []Task `json:"tasks"`
}

// Task mirrors a parsed task plus its resolved relations.
type Task struct {
	Line      int      `json:"line"`
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	Priority  string   `json:"priority,omitempty"`
	Status    string   `json:"status,omitempty"`
	Area      string   `json:"area,omitempty"`
	Type      string   `json:"type,omitempty"`
	Context   string   `json:"context,omitempty"`
	Due       string   `json:"due,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Link      string   `json:"link,omitempty"`
	Parent    string   `json:"parent,omitempty"`
	Children  []string `json:"children,omitempty"`
	Notes     []Note   `json:"notes,omitempty"`
}

// Note mirrors a parsed note, with the ids of tasks referencing it.
type Note struct {
	Title        string   `json:"title"`
	Type         string   `json:"type,omitempty"`
	Date         string   `json:"date,omitempty"`
	ID           string   `json:"id,omitempty"`
	Link         string   `json:"link,omitempty"`
	Level        int      `json:"level"`
	Content      string   `json:"content,omitempty"`
	ReferencedBy []string `json:"referenced_by,omitempty"`
	Children     []Note   `json:"children,omitempty"`
}

// Build converts the resolved relations into a snapshot, in source order.
func Build(rel *graph.Relations) *Snapshot {
	snap := &Snapshot{SchemaVersion: SchemaVersion}
	for _, t := range rel.Tasks {
		rec := Task{
			Line:      t.LineNum,
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			Priority:  t.Priority,
			Status:    t.Status,
			Area:      t.Area,
			Type:      t.Type,
			Context:   t.Context,
			Due:       t.Due,
			Tags:      t.Tags,
			Link:      t.Link,
			Parent:    rel.ParentOf[t.ID],
		}
		for _, c := range rel.Children[t.ID] {
			rec.Children = append(rec.Children, c.ID)
		}
		for _, n := range t.Notes {
			rec.Notes = append(rec.Notes, buildNote(rel, n))
		}
		snap.Tasks = append(snap.Tasks, rec)
	}
	return snap
}

func buildNote(rel *graph.Relations, n *note.Note) Note {
	rec := Note{
		Title:   n.Title,
		Type:    n.Type,
		Date:    n.Date,
		ID:      n.ID,
		Link:    n.Link,
		Level:   n.Level,
		Content: n.Content,
	}
	if n.ID != "" {
		for _, ref := range rel.NoteRefs[n.ID] {
			rec.ReferencedBy = append(rec.ReferencedBy, ref.ID)
		}
	}
	for _, c := range n.Children {
		rec.Children = append(rec.Children, buildNote(rel, c))
	}
	return rec
}

// Encode writes the snapshot as indented JSON with a trailing newline.
func (s *Snapshot) Encode(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
