package graph

import (
	"testing"

	"github.com/tasklinks/tasklinks/internal/note"
	"github.com/tasklinks/tasklinks/internal/task"
)

func mustTask(t *testing.T, line string, num int) *task.Task {
	t.Helper()
	tk, ok := task.ParseLine(line, num)
	if !ok {
		t.Fatalf("ParseLine rejected %q", line)
	}
	return &tk
}

func TestBuildIndexes(t *testing.T) {
	tasks := []*task.Task{
		mustTask(t, "Root id:t1", 1),
		mustTask(t, "Child one id:t2 link:t1", 2),
		mustTask(t, "Child two id:t3 link:t1", 3),
		mustTask(t, "Dangling link id:t4 link:nowhere", 4),
	}
	rel := Build(tasks)

	if rel.ByID["t1"] != tasks[0] {
		t.Error("ByID lookup failed for t1")
	}
	children := rel.Children["t1"]
	if len(children) != 2 || children[0].ID != "t2" || children[1].ID != "t3" {
		t.Errorf("Children[t1]: got %v", ids(children))
	}
	if rel.ParentOf["t2"] != "t1" || rel.ParentOf["t3"] != "t1" {
		t.Errorf("ParentOf: %v", rel.ParentOf)
	}
	if _, ok := rel.ParentOf["t4"]; ok {
		t.Error("unresolvable link must not create a parent entry")
	}
	if rel.ByLine(3).ID != "t3" {
		t.Error("ByLine(3) should find t3")
	}
	if rel.ByLine(99) != nil {
		t.Error("ByLine miss should return nil")
	}
}

func TestBuildDuplicateIDLastWins(t *testing.T) {
	tasks := []*task.Task{
		mustTask(t, "First id:dup", 1),
		mustTask(t, "Second id:dup", 2),
	}
	rel := Build(tasks)
	if rel.ByID["dup"].LineNum != 2 {
		t.Errorf("duplicate id: got line %d, want 2", rel.ByID["dup"].LineNum)
	}
}

func TestBuildNoteLinks(t *testing.T) {
	owner := mustTask(t, "Owner id:t1", 1)
	owner.Notes = note.Parse("## Finding type:OBS id:n1\n### Nested type:HYP id:n2\n")
	ref := mustTask(t, "Follows up id:t2 link:n1", 2)
	nestedRef := mustTask(t, "Deep follow-up id:t3 link:n2", 3)
	rel := Build([]*task.Task{owner, ref, nestedRef})

	if rel.NoteOwner["n1"] != owner || rel.NoteOwner["n2"] != owner {
		t.Error("NoteOwner should index nested note ids to the owning task")
	}
	refs := rel.NoteRefs["n1"]
	if len(refs) != 1 || refs[0].ID != "t2" {
		t.Errorf("NoteRefs[n1]: got %v", ids(refs))
	}
	// Referencing a note anchors the task under the note's owner.
	if rel.ParentOf["t2"] != "t1" || rel.ParentOf["t3"] != "t1" {
		t.Errorf("ParentOf via notes: %v", rel.ParentOf)
	}
	// Note-linked tasks are not task children.
	if len(rel.Children["t1"]) != 0 {
		t.Errorf("Children[t1] should be empty, got %v", ids(rel.Children["t1"]))
	}
}

func TestFindRoot(t *testing.T) {
	tasks := []*task.Task{
		mustTask(t, "Top id:t1", 1),
		mustTask(t, "Middle id:t2 link:t1", 2),
		mustTask(t, "Bottom id:t3 link:t2", 3),
	}
	rel := Build(tasks)
	if root := rel.FindRoot(tasks[2]); root.ID != "t1" {
		t.Errorf("FindRoot(t3): got %s, want t1", root.ID)
	}
	if root := rel.FindRoot(tasks[0]); root.ID != "t1" {
		t.Errorf("FindRoot(t1): got %s, want t1", root.ID)
	}
}

func TestFindRootCycle(t *testing.T) {
	tasks := []*task.Task{
		mustTask(t, "A id:ta link:tb", 1),
		mustTask(t, "B id:tb link:ta", 2),
	}
	rel := Build(tasks)
	// The walk stops at the first repeated id rather than spinning.
	if root := rel.FindRoot(tasks[0]); root.ID != "tb" {
		t.Errorf("FindRoot in cycle: got %s, want tb", root.ID)
	}
}

func TestCollect(t *testing.T) {
	tasks := []*task.Task{
		mustTask(t, "Top id:t1", 1),
		mustTask(t, "Mid id:t2 link:t1", 2),
		mustTask(t, "Leaf id:t3 link:t2", 3),
		mustTask(t, "Other id:t4", 4),
	}
	rel := Build(tasks)
	got := make(map[string]bool)
	rel.Collect("t1", got)
	for _, id := range []string{"t1", "t2", "t3"} {
		if !got[id] {
			t.Errorf("Collect missed %s", id)
		}
	}
	if got["t4"] {
		t.Error("Collect should not reach unrelated t4")
	}
}

func TestCollectCycle(t *testing.T) {
	tasks := []*task.Task{
		mustTask(t, "A id:ta link:tb", 1),
		mustTask(t, "B id:tb link:ta", 2),
	}
	rel := Build(tasks)
	got := make(map[string]bool)
	rel.Collect("ta", got)
	if len(got) != 2 {
		t.Errorf("Collect over cycle: got %d ids, want 2", len(got))
	}
}

func TestRoots(t *testing.T) {
	tasks := []*task.Task{
		mustTask(t, "Parent id:t1", 1),
		mustTask(t, "x Child id:t2 link:t1", 2),
		mustTask(t, "x Done parent id:t3", 3),
		mustTask(t, "Also child, also parent id:t4 link:t1", 4),
		mustTask(t, "Grandchild id:t5 link:t4", 5),
		mustTask(t, "Loner id:t6", 6),
	}
	rel := Build(tasks)

	roots := rel.Roots(false)
	// t1 qualifies even though one child is completed. t4 is a parent
	// but also a child, so it is not a root. t6 has no children.
	if len(roots) != 1 || roots[0].ID != "t1" {
		t.Errorf("Roots(false): got %v, want [t1]", ids(roots))
	}
}

func TestRootsShowDone(t *testing.T) {
	done := mustTask(t, "x Finished parent id:t1", 1)
	child := mustTask(t, "Child id:t2 link:t1", 2)
	rel := Build([]*task.Task{done, child})

	if roots := rel.Roots(false); len(roots) != 0 {
		t.Errorf("completed root hidden: got %v", ids(roots))
	}
	roots := rel.Roots(true)
	if len(roots) != 1 || roots[0].ID != "t1" {
		t.Errorf("Roots(true): got %v, want [t1]", ids(roots))
	}
}

func ids(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
