package cmd

import (
	"fmt"
	"strings"

	"github.com/tasklinks/tasklinks/internal/config"
)

// configCommand prints the resolved configuration and where each value
// came from.
func configCommand(cfg *config.Config) error {
	rows := []struct {
		key   string
		value string
	}{
		{"base_dir", cfg.BaseDir},
		{"notes_dir", cfg.NotesDir},
		{"task_files", strings.Join(cfg.TaskFiles, ", ")},
		{"note_ext", cfg.NoteExt},
		{"schema_file", cfg.SchemaFile},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"no_color", fmt.Sprintf("%t", cfg.NoColor)},
		{"display", fmt.Sprintf("hide_notes=%t show_done=%t only_linked=%t show_content=%t",
			cfg.Display.HideNotes, cfg.Display.ShowDone, cfg.Display.OnlyLinked, cfg.Display.ShowContent)},
	}

	for _, row := range rows {
		source := cfg.Sources[row.key]
		if source == "" {
			source = config.SourceDefault
		}
		fmt.Printf("%-12s %-50s (%s)\n", row.key, row.value, source)
	}
	return nil
}
