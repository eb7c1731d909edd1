// Package view selects the trees to display and renders them.
package view

import "errors"

// Selection and lookup outcomes. These are informational: the caller
// reports them and keeps going.
var (
	// ErrNotFound means no task exists at the requested line.
	ErrNotFound = errors.New("task not found")
	// ErrHidden means the requested task is completed and completed
	// items are not being shown.
	ErrHidden = errors.New("task hidden")
	// ErrNoMatches means no task satisfied the active filters.
	ErrNoMatches = errors.New("no matching tasks")
)

// Options are the display and filter switches for one query.
type Options struct {
	HideNotes   bool
	ShowDone    bool
	OnlyLinked  bool
	ShowContent bool
	Area        string
	Status      string
	Context     string
	Tags        []string
}

// HasFilters reports whether any attribute filter is active.
func (o Options) HasFilters() bool {
	return o.Area != "" || o.Status != "" || o.Context != "" || len(o.Tags) > 0
}

// Query is one user request: an optional line number, the root switch,
// and the display options.
type Query struct {
	// Line is the 1-based task line, or 0 for no line selector.
	Line int
	// Root selects the whole tree from the task's root instead of the
	// branch starting at the task.
	Root bool
	Opts Options
}
