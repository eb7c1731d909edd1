package note

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile loads and parses the note file for a task id, looked up as
// <dir>/<id>.<ext>. A missing file is not an error: the task simply has
// no notes.
func ReadFile(dir, id, ext string) ([]*Note, error) {
	path := filepath.Join(dir, id+"."+ext)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read note file %s: %w", path, err)
	}
	return Parse(string(data)), nil
}
