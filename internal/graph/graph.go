// Package graph derives the relationship indexes over a parsed task set.
//
// Build is a pure function: it never mutates the tasks and the returned
// indexes are treated as read-only until the task set is reloaded.
package graph

import (
	"github.com/tasklinks/tasklinks/internal/note"
	"github.com/tasklinks/tasklinks/internal/task"
)

// Relations holds every derived index over one task set.
//
// A task link that names another task's id makes that task the parent.
// A link that names a note id anchors the task under the note's owning
// task for root finding (ParentOf), while NoteRefs attaches it to the
// note itself for rendering. Unresolvable links appear in no index.
type Relations struct {
	// Tasks is the full set in source order.
	Tasks []*task.Task
	// ByID maps task id to task. Duplicate ids resolve last-wins.
	ByID map[string]*task.Task
	// Children maps a parent task id to its child tasks in source order.
	Children map[string][]*task.Task
	// ParentOf maps a child task id to its parent task id.
	ParentOf map[string]string
	// NoteOwner maps a note id to the task whose file contains the note.
	NoteOwner map[string]*task.Task
	// NoteRefs maps a note id to the tasks whose link names it, in
	// source order.
	NoteRefs map[string][]*task.Task
}

// Build computes all indexes for the given task set.
func Build(tasks []*task.Task) *Relations {
	r := &Relations{
		Tasks:     tasks,
		ByID:      make(map[string]*task.Task),
		Children:  make(map[string][]*task.Task),
		ParentOf:  make(map[string]string),
		NoteOwner: make(map[string]*task.Task),
		NoteRefs:  make(map[string][]*task.Task),
	}

	for _, t := range tasks {
		if t.ID != "" {
			r.ByID[t.ID] = t
		}
	}
	for _, t := range tasks {
		for _, n := range t.Notes {
			r.indexNotes(n, t)
		}
	}
	for _, t := range tasks {
		if t.Link == "" {
			continue
		}
		if _, ok := r.ByID[t.Link]; ok {
			r.Children[t.Link] = append(r.Children[t.Link], t)
			r.ParentOf[t.ID] = t.Link
		} else if owner, ok := r.NoteOwner[t.Link]; ok {
			r.NoteRefs[t.Link] = append(r.NoteRefs[t.Link], t)
			r.ParentOf[t.ID] = owner.ID
		}
	}
	return r
}

func (r *Relations) indexNotes(n *note.Note, owner *task.Task) {
	if n.ID != "" {
		r.NoteOwner[n.ID] = owner
	}
	for _, c := range n.Children {
		r.indexNotes(c, owner)
	}
}

// ByLine returns the task at the given source line, or nil.
func (r *Relations) ByLine(num int) *task.Task {
	for _, t := range r.Tasks {
		if t.LineNum == num {
			return t
		}
	}
	return nil
}

// FindRoot walks ParentOf upward from t until a task with no parent.
// Visited ids are tracked so a link cycle stops at the first repeat
// instead of looping.
func (r *Relations) FindRoot(t *task.Task) *task.Task {
	root := t
	visited := map[string]bool{t.ID: true}
	for {
		parentID, ok := r.ParentOf[root.ID]
		if !ok || visited[parentID] {
			return root
		}
		visited[parentID] = true
		root = r.ByID[parentID]
	}
}

// Collect adds every task id reachable from rootID via Children into the
// given set. Revisits are cut off, so cycles terminate.
func (r *Relations) Collect(rootID string, into map[string]bool) {
	if into[rootID] {
		return
	}
	into[rootID] = true
	for _, c := range r.Children[rootID] {
		r.Collect(c.ID, into)
	}
}

// Roots returns, in source order, every visible task that has children
// but is not itself a child. A root whose children are all completed
// still shows: its own line stands even when the subtree is filtered
// empty.
func (r *Relations) Roots(showDone bool) []*task.Task {
	childIDs := make(map[string]bool)
	for _, children := range r.Children {
		for _, c := range children {
			childIDs[c.ID] = true
		}
	}

	var roots []*task.Task
	for _, t := range r.Tasks {
		if len(r.Children[t.ID]) == 0 || childIDs[t.ID] {
			continue
		}
		if !Visible(t, showDone) {
			continue
		}
		roots = append(roots, t)
	}
	return roots
}

// Visible reports whether a task should appear under the current
// completed-item policy.
func Visible(t *task.Task, showDone bool) bool {
	return showDone || !t.Completed
}
