// Package config handles configuration loading and defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Source names where a configuration value came from, for the config
// command's output.
const (
	SourceDefault  = "default"
	SourceUserFile = "user file"
	SourceProjFile = "project file"
	SourceEnv      = "environment"
	SourceFlag     = "flag"
)

// Default values.
const (
	DefaultBaseDir   = "~/Documents/todo"
	DefaultNoteExt   = "md"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultTaskFiles returns the task files read under the base dir, in
// load order.
func DefaultTaskFiles() []string {
	return []string{"todo.txt", "done.txt"}
}

// Config holds the full configuration for tasklinks.
type Config struct {
	// Paths
	BaseDir    string   `toml:"base_dir"`
	NotesDir   string   `toml:"notes_dir"` // defaults to <base_dir>/notes
	TaskFiles  []string `toml:"task_files"`
	NoteExt    string   `toml:"note_ext"`
	SchemaFile string   `toml:"schema_file"` // optional, validates export snapshots

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Output
	NoColor bool `toml:"no_color"`

	// Default display switches, overridable per query.
	Display Display `toml:"display"`

	// Sources tracks where each top-level value came from.
	Sources map[string]string `toml:"-"`
}

// Display holds the default display switches.
type Display struct {
	HideNotes   bool `toml:"hide_notes"`
	ShowDone    bool `toml:"show_done"`
	OnlyLinked  bool `toml:"only_linked"`
	ShowContent bool `toml:"show_content"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.config/tasklinks/tasklinks.toml or ~/.tasklinks/tasklinks.toml)
// 3. Project config file (tasklinks.toml or .tasklinks.toml in current directory)
// 4. Environment variables (TASKLINKS_*)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{Sources: make(map[string]string)}
	setDefaults(cfg)

	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	finalize(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.BaseDir = DefaultBaseDir
	cfg.TaskFiles = DefaultTaskFiles()
	cfg.NoteExt = DefaultNoteExt
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	for _, field := range configFields() {
		cfg.Sources[field] = SourceDefault
	}
}

// configFields returns the tracked top-level field names.
func configFields() []string {
	return []string{
		"base_dir",
		"notes_dir",
		"task_files",
		"note_ext",
		"schema_file",
		"log_level",
		"log_format",
		"no_color",
		"display",
	}
}

// findUserConfigFile returns the user-level config path, or "".
func findUserConfigFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "tasklinks", "tasklinks.toml")
		if fileExists(path) {
			return path
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".tasklinks", "tasklinks.toml")
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// findProjectConfigFile returns the project-level config path, or "".
func findProjectConfigFile() string {
	for _, name := range []string{"tasklinks.toml", ".tasklinks.toml"} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func loadConfigFile(cfg *Config, path, origin string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	for _, key := range md.Keys() {
		name := key[0]
		cfg.Sources[name] = origin
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	set := func(field, value string, apply func(string)) {
		if value != "" {
			apply(value)
			cfg.Sources[field] = SourceEnv
		}
	}
	set("base_dir", os.Getenv("TASKLINKS_BASE_DIR"), func(v string) { cfg.BaseDir = v })
	set("notes_dir", os.Getenv("TASKLINKS_NOTES_DIR"), func(v string) { cfg.NotesDir = v })
	set("note_ext", os.Getenv("TASKLINKS_NOTE_EXT"), func(v string) { cfg.NoteExt = v })
	set("schema_file", os.Getenv("TASKLINKS_SCHEMA_FILE"), func(v string) { cfg.SchemaFile = v })
	set("log_level", os.Getenv("TASKLINKS_LOG_LEVEL"), func(v string) { cfg.LogLevel = v })
	set("log_format", os.Getenv("TASKLINKS_LOG_FORMAT"), func(v string) { cfg.LogFormat = v })
	if v := os.Getenv("TASKLINKS_NO_COLOR"); v == "1" || strings.EqualFold(v, "true") {
		cfg.NoColor = true
		cfg.Sources["no_color"] = SourceEnv
	}
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	baseDir := fs.String("base-dir", "", "Base directory for task files")
	notesDir := fs.String("notes-dir", "", "Notes directory (default: <base-dir>/notes)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (text, json, logfmt)")
	noColor := fs.Bool("no-color", false, "Disable colored output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "base-dir":
			cfg.BaseDir = *baseDir
			cfg.Sources["base_dir"] = SourceFlag
		case "notes-dir":
			cfg.NotesDir = *notesDir
			cfg.Sources["notes_dir"] = SourceFlag
		case "log-level":
			cfg.LogLevel = *logLevel
			cfg.Sources["log_level"] = SourceFlag
		case "log-format":
			cfg.LogFormat = *logFormat
			cfg.Sources["log_format"] = SourceFlag
		case "no-color":
			cfg.NoColor = *noColor
			cfg.Sources["no_color"] = SourceFlag
		}
	})
	return nil
}

func finalize(cfg *Config) {
	cfg.BaseDir = expandHome(cfg.BaseDir)
	if cfg.NotesDir == "" {
		cfg.NotesDir = filepath.Join(cfg.BaseDir, "notes")
	} else {
		cfg.NotesDir = expandHome(cfg.NotesDir)
	}
	cfg.SchemaFile = expandHome(cfg.SchemaFile)
	if len(cfg.TaskFiles) == 0 {
		cfg.TaskFiles = DefaultTaskFiles()
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
