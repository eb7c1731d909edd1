package view

import (
	"fmt"

	"github.com/tasklinks/tasklinks/internal/graph"
	"github.com/tasklinks/tasklinks/internal/note"
	"github.com/tasklinks/tasklinks/internal/task"
)

// Select computes the ordered root set for a query.
//
// Selector precedence: a line number wins over filters, filters win over
// the default all-mode. Root mode walks the task to its root first;
// branch mode takes the task itself.
func Select(rel *graph.Relations, q Query) ([]*task.Task, error) {
	if q.Line > 0 {
		return selectByLine(rel, q)
	}
	if q.Opts.HasFilters() {
		return selectFiltered(rel, q.Opts)
	}
	return selectAll(rel, q.Opts), nil
}

func selectByLine(rel *graph.Relations, q Query) ([]*task.Task, error) {
	target := rel.ByLine(q.Line)
	if target == nil {
		return nil, fmt.Errorf("line %d: %w", q.Line, ErrNotFound)
	}
	if q.Root {
		target = rel.FindRoot(target)
	}
	if !graph.Visible(target, q.Opts.ShowDone) {
		return nil, fmt.Errorf("line %d: %w", q.Line, ErrHidden)
	}
	return []*task.Task{target}, nil
}

// selectFiltered finds every task matching all active filters, expands
// each match to its root's full connected component, and returns the
// union's parentless ids as roots, in source order.
func selectFiltered(rel *graph.Relations, opts Options) ([]*task.Task, error) {
	var matching []*task.Task
	for _, t := range rel.Tasks {
		if matchesFilters(t, opts) && graph.Visible(t, opts.ShowDone) &&
			hasRelationsOrNotes(rel, t, opts.OnlyLinked, opts.ShowDone) {
			matching = append(matching, t)
		}
	}
	if len(matching) == 0 {
		return nil, ErrNoMatches
	}

	union := make(map[string]bool)
	for _, t := range matching {
		rel.Collect(rel.FindRoot(t).ID, union)
	}

	childInUnion := make(map[string]bool)
	for id := range union {
		for _, c := range rel.Children[id] {
			if union[c.ID] {
				childInUnion[c.ID] = true
			}
		}
	}

	var roots []*task.Task
	for _, t := range rel.Tasks {
		if union[t.ID] && !childInUnion[t.ID] && graph.Visible(t, opts.ShowDone) {
			roots = append(roots, t)
		}
	}
	return roots, nil
}

// selectAll returns the structural roots plus two kinds of pseudo-roots
// that would otherwise vanish from the view: tasks whose notes are
// referenced by other visible tasks, and note-carrying tasks with no
// relations at all (suppressed in only-linked mode).
func selectAll(rel *graph.Relations, opts Options) []*task.Task {
	roots := rel.Roots(opts.ShowDone)
	rootIDs := make(map[string]bool, len(roots))
	for _, t := range roots {
		rootIDs[t.ID] = true
	}

	var noteLinked []*task.Task
	noteLinkedIDs := make(map[string]bool)
	for _, t := range rel.Tasks {
		if rootIDs[t.ID] || !graph.Visible(t, opts.ShowDone) {
			continue
		}
		for _, n := range t.Notes {
			if hasVisibleRefs(rel, n, opts.ShowDone) {
				noteLinked = append(noteLinked, t)
				noteLinkedIDs[t.ID] = true
				break
			}
		}
	}

	var standalone []*task.Task
	if !opts.OnlyLinked {
		for _, t := range rel.Tasks {
			if len(t.Notes) == 0 || rootIDs[t.ID] || noteLinkedIDs[t.ID] {
				continue
			}
			if !graph.Visible(t, opts.ShowDone) {
				continue
			}
			if hasRelationsOrNotes(rel, t, true, opts.ShowDone) {
				continue
			}
			standalone = append(standalone, t)
		}
	}

	out := make([]*task.Task, 0, len(roots)+len(noteLinked)+len(standalone))
	out = append(out, roots...)
	out = append(out, noteLinked...)
	out = append(out, standalone...)
	return out
}

func matchesFilters(t *task.Task, opts Options) bool {
	if opts.Area != "" && t.Area != opts.Area {
		return false
	}
	if opts.Status != "" && t.Status != opts.Status {
		return false
	}
	if opts.Context != "" && t.Context != opts.Context {
		return false
	}
	for _, tag := range opts.Tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	return true
}

// hasRelationsOrNotes reports whether a task is connected to anything
// worth drawing: a visible child, a resolvable parent (task or note),
// or, depending on onlyLinked, visible note references vs. any notes.
func hasRelationsOrNotes(rel *graph.Relations, t *task.Task, onlyLinked, showDone bool) bool {
	for _, c := range rel.Children[t.ID] {
		if graph.Visible(c, showDone) {
			return true
		}
	}
	if t.Link != "" {
		if p, ok := rel.ByID[t.Link]; ok && graph.Visible(p, showDone) {
			return true
		}
		if _, ok := rel.NoteOwner[t.Link]; ok {
			return true
		}
	}
	if onlyLinked {
		for _, n := range t.Notes {
			if hasVisibleRefs(rel, n, showDone) {
				return true
			}
		}
		return false
	}
	return len(t.Notes) > 0
}

func hasVisibleRefs(rel *graph.Relations, n *note.Note, showDone bool) bool {
	if n.ID != "" {
		for _, ref := range rel.NoteRefs[n.ID] {
			if graph.Visible(ref, showDone) {
				return true
			}
		}
	}
	for _, c := range n.Children {
		if hasVisibleRefs(rel, c, showDone) {
			return true
		}
	}
	return false
}
