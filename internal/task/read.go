package task

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/tasklinks/tasklinks/internal/note"
)

// ReadFile reads one task file and returns its tasks in line order.
// Lines are numbered from 1. Only tasks with an id are kept: id-less
// lines cannot own notes or take part in the relation graph, so the
// viewer has nothing to show for them. A missing file yields no tasks.
func ReadFile(path, notesDir, noteExt string, logger *log.Logger) ([]*Task, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open task file %s: %w", path, err)
	}
	defer f.Close()

	var tasks []*Task
	scanner := bufio.NewScanner(f)
	num := 0
	for scanner.Scan() {
		num++
		t, ok := ParseLine(scanner.Text(), num)
		if !ok || t.ID == "" {
			continue
		}
		if notesDir != "" {
			notes, err := note.ReadFile(notesDir, t.ID, noteExt)
			if err != nil {
				// A broken note file costs the task its notes, nothing more.
				if logger != nil {
					logger.Warn("reading note file", "task", t.ID, "err", err)
				}
			}
			t.Notes = notes
		}
		tasks = append(tasks, &t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read task file %s: %w", path, err)
	}
	return tasks, nil
}

// LoadAll reads every configured task file under baseDir, in order,
// concatenating the results. Missing files are skipped.
func LoadAll(baseDir, notesDir, noteExt string, files []string, logger *log.Logger) ([]*Task, error) {
	var all []*Task
	for _, name := range files {
		tasks, err := ReadFile(filepath.Join(baseDir, name), notesDir, noteExt, logger)
		if err != nil {
			return nil, err
		}
		all = append(all, tasks...)
	}
	return all, nil
}
