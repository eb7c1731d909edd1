package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/tasklinks/tasklinks/internal/graph"
	"github.com/tasklinks/tasklinks/internal/note"
	"github.com/tasklinks/tasklinks/internal/task"
)

// Renderer prints task trees depth-first with box-drawing connectors.
//
// Rendering is two-pass at every level: the complete visible-children
// list is computed first, then emitted with an explicit is-last check,
// so the counting and the emitting always apply the same filters. The
// printed set is shared across every tree of one Render call: a task
// reachable both as a child and as a note reference prints exactly once.
type Renderer struct {
	rel     *graph.Relations
	opts    Options
	styles  Styles
	w       io.Writer
	printed map[string]bool
}

// NewRenderer creates a renderer for one render call.
func NewRenderer(w io.Writer, rel *graph.Relations, opts Options, styles Styles) *Renderer {
	return &Renderer{
		rel:     rel,
		opts:    opts,
		styles:  styles,
		w:       w,
		printed: make(map[string]bool),
	}
}

// Render prints each root's tree followed by a blank line.
func (r *Renderer) Render(roots []*task.Task) {
	for _, t := range roots {
		if r.printed[t.ID] || !graph.Visible(t, r.opts.ShowDone) {
			continue
		}
		r.renderTask(t, "", true, false)
		fmt.Fprintln(r.w)
	}
}

// child is one entry of a node's visible-children list: a nested note
// or a task (child task, referencing task, or a note's linked task).
type child struct {
	note *note.Note
	task *task.Task
}

func connector(last bool) string {
	if last {
		return "└─"
	}
	return "├─"
}

func continuation(last bool) string {
	if last {
		return "   "
	}
	return "│  "
}

func (r *Renderer) renderTask(t *task.Task, prefix string, last, isChild bool) {
	if !graph.Visible(t, r.opts.ShowDone) || r.printed[t.ID] {
		return
	}
	r.printed[t.ID] = true

	kids := r.taskChildren(t)

	var next string
	if isChild {
		r.writeItem(prefix, connector(last), r.styles.TaskLine(t, r.opts.ShowDone), t.Completed)
		next = prefix + continuation(last)
	} else {
		fmt.Fprintln(r.w, r.styles.TaskLine(t, r.opts.ShowDone))
		next = " "
	}

	for i, k := range kids {
		isLast := i == len(kids)-1
		if k.note != nil {
			r.renderNote(k.note, next, isLast)
		} else {
			r.renderTask(k.task, next, isLast, true)
		}
	}
}

// taskChildren builds a task node's visible-children list: notes in
// file order, then child tasks in source order.
func (r *Renderer) taskChildren(t *task.Task) []child {
	var kids []child
	for _, n := range t.Notes {
		if r.opts.HideNotes && !n.HasIDRecursive() {
			continue
		}
		kids = append(kids, child{note: n})
	}
	for _, c := range r.rel.Children[t.ID] {
		if graph.Visible(c, r.opts.ShowDone) {
			kids = append(kids, child{task: c})
		}
	}
	return kids
}

func (r *Renderer) renderNote(n *note.Note, prefix string, last bool) {
	if r.opts.HideNotes && n.ID == "" {
		// Pass-through: the note's own line is suppressed but its
		// qualifying descendants render at this prefix depth.
		for _, c := range n.Children {
			if c.HasIDRecursive() {
				r.renderNote(c, prefix, last)
			}
		}
		return
	}

	r.writeItem(prefix, connector(last), r.styles.NoteLine(n), false)
	next := prefix + continuation(last)

	if r.opts.ShowContent && n.Content != "" {
		for _, line := range strings.Split(n.Content, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			fmt.Fprintln(r.w, next+r.styles.Markdown(line))
		}
	}

	kids := r.noteChildren(n)
	for i, k := range kids {
		isLast := i == len(kids)-1
		if k.note != nil {
			r.renderNote(k.note, next, isLast)
		} else {
			r.renderTask(k.task, next, isLast, true)
		}
	}
}

// noteChildren builds a note node's visible-children list: nested
// notes, then tasks referencing this note that have not printed yet,
// then the note's own linked task.
func (r *Renderer) noteChildren(n *note.Note) []child {
	var kids []child
	for _, c := range n.Children {
		if r.opts.HideNotes && !c.HasIDRecursive() {
			continue
		}
		kids = append(kids, child{note: c})
	}
	if n.ID != "" {
		for _, ref := range r.rel.NoteRefs[n.ID] {
			if graph.Visible(ref, r.opts.ShowDone) && !r.printed[ref.ID] {
				kids = append(kids, child{task: ref})
			}
		}
	}
	if n.Link != "" {
		if linked, ok := r.rel.ByID[n.Link]; ok && graph.Visible(linked, r.opts.ShowDone) {
			kids = append(kids, child{task: linked})
		}
	}
	return kids
}

func (r *Renderer) writeItem(prefix, conn, content string, done bool) {
	style := r.styles.Cyan
	if done {
		style = r.styles.Gray
	}
	fmt.Fprintln(r.w, style.Render(prefix+conn)+" "+content)
}
