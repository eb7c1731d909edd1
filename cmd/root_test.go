package cmd

import (
	"strings"
	"testing"

	"github.com/tasklinks/tasklinks/internal/graph"
	"github.com/tasklinks/tasklinks/internal/task"
	"github.com/tasklinks/tasklinks/internal/view"
)

func testRelations(t *testing.T) *graph.Relations {
	t.Helper()
	var tasks []*task.Task
	for i, line := range []string{
		"(A) Buy milk id:t1",
		"x done task id:t2 link:t1",
	} {
		tk, ok := task.ParseLine(line, i+1)
		if !ok {
			t.Fatalf("ParseLine rejected %q", line)
		}
		tasks = append(tasks, &tk)
	}
	return graph.Build(tasks)
}

func TestRunQueryRendersTree(t *testing.T) {
	rel := testRelations(t)
	var b strings.Builder
	runQuery(&b, rel, view.Query{Line: 1, Opts: view.Options{ShowDone: true}}, view.PlainStyles())

	want := "[1] Buy milk ¶ A\n" +
		" └─ [2] done task ¶\n" +
		"\n"
	if b.String() != want {
		t.Errorf("runQuery:\n got  %q\n want %q", b.String(), want)
	}
}

func TestRunQueryOutcomeMessages(t *testing.T) {
	tests := []struct {
		name  string
		query view.Query
		want  string
	}{
		{
			name:  "line not found",
			query: view.Query{Line: 99},
			want:  "✗ Task at line 99 not found\n\n",
		},
		{
			name:  "line hidden",
			query: view.Query{Line: 2},
			want:  "✗ Task at line 2 is completed (hidden). Use -sd to display.\n\n",
		},
		{
			name:  "no filter matches",
			query: view.Query{Opts: view.Options{Area: "nowhere"}},
			want:  "✗ No tasks found with given filters\n\n",
		},
	}

	rel := testRelations(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			runQuery(&b, rel, tt.query, view.PlainStyles())
			if b.String() != tt.want {
				t.Errorf("runQuery:\n got  %q\n want %q", b.String(), tt.want)
			}
		})
	}
}
