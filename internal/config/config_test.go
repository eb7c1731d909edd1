package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// isolate points every config lookup location at empty temp dirs so a
// developer's real config cannot leak into the tests.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, name := range []string{
		"TASKLINKS_BASE_DIR", "TASKLINKS_NOTES_DIR", "TASKLINKS_NOTE_EXT",
		"TASKLINKS_SCHEMA_FILE", "TASKLINKS_LOG_LEVEL", "TASKLINKS_LOG_FORMAT",
		"TASKLINKS_NO_COLOR",
	} {
		t.Setenv(name, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return home
}

func load(t *testing.T, args ...string) *Config {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, args)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)
	cfg := load(t)

	if cfg.BaseDir != filepath.Join(home, "Documents", "todo") {
		t.Errorf("BaseDir: got %q", cfg.BaseDir)
	}
	if cfg.NotesDir != filepath.Join(cfg.BaseDir, "notes") {
		t.Errorf("NotesDir: got %q", cfg.NotesDir)
	}
	if cfg.NoteExt != "md" || cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("defaults: ext=%s level=%s format=%s", cfg.NoteExt, cfg.LogLevel, cfg.LogFormat)
	}
	if len(cfg.TaskFiles) != 2 || cfg.TaskFiles[0] != "todo.txt" || cfg.TaskFiles[1] != "done.txt" {
		t.Errorf("TaskFiles: got %v", cfg.TaskFiles)
	}
	if cfg.Sources["base_dir"] != SourceDefault {
		t.Errorf("base_dir source: got %q", cfg.Sources["base_dir"])
	}
}

func TestLoadUserConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "tasklinks")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "base_dir = \"/srv/tasks\"\nnote_ext = \"markdown\"\n\n[display]\nshow_done = true\n"
	if err := os.WriteFile(filepath.Join(dir, "tasklinks.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := load(t)
	if cfg.BaseDir != "/srv/tasks" {
		t.Errorf("BaseDir: got %q", cfg.BaseDir)
	}
	if cfg.NoteExt != "markdown" {
		t.Errorf("NoteExt: got %q", cfg.NoteExt)
	}
	if !cfg.Display.ShowDone {
		t.Error("display.show_done not applied")
	}
	if cfg.Sources["base_dir"] != SourceUserFile {
		t.Errorf("base_dir source: got %q", cfg.Sources["base_dir"])
	}
	if cfg.Sources["log_level"] != SourceDefault {
		t.Errorf("untouched field source: got %q", cfg.Sources["log_level"])
	}
}

func TestLoadProjectOverridesUser(t *testing.T) {
	home := isolate(t)
	userDir := filepath.Join(home, ".config", "tasklinks")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "tasklinks.toml"),
		[]byte("base_dir = \"/from/user\"\nlog_level = \"debug\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("tasklinks.toml", []byte("base_dir = \"/from/project\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := load(t)
	if cfg.BaseDir != "/from/project" {
		t.Errorf("BaseDir: got %q", cfg.BaseDir)
	}
	if cfg.Sources["base_dir"] != SourceProjFile {
		t.Errorf("base_dir source: got %q", cfg.Sources["base_dir"])
	}
	// The user file's other keys survive.
	if cfg.LogLevel != "debug" || cfg.Sources["log_level"] != SourceUserFile {
		t.Errorf("log_level: %q from %q", cfg.LogLevel, cfg.Sources["log_level"])
	}
}

func TestLoadEnvOverridesFiles(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("tasklinks.toml", []byte("base_dir = \"/from/project\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TASKLINKS_BASE_DIR", "/from/env")
	t.Setenv("TASKLINKS_NO_COLOR", "1")

	cfg := load(t)
	if cfg.BaseDir != "/from/env" {
		t.Errorf("BaseDir: got %q", cfg.BaseDir)
	}
	if !cfg.NoColor {
		t.Error("TASKLINKS_NO_COLOR=1 should disable color")
	}
	if cfg.Sources["base_dir"] != SourceEnv {
		t.Errorf("base_dir source: got %q", cfg.Sources["base_dir"])
	}
}

func TestLoadFlagsWinOverEverything(t *testing.T) {
	isolate(t)
	t.Setenv("TASKLINKS_BASE_DIR", "/from/env")

	cfg := load(t, "-base-dir", "/from/flag", "-log-level", "warn")
	if cfg.BaseDir != "/from/flag" {
		t.Errorf("BaseDir: got %q", cfg.BaseDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
	if cfg.Sources["base_dir"] != SourceFlag {
		t.Errorf("base_dir source: got %q", cfg.Sources["base_dir"])
	}
}

func TestFinalizeNotesDir(t *testing.T) {
	isolate(t)
	t.Setenv("TASKLINKS_BASE_DIR", "/srv/tasks")
	t.Setenv("TASKLINKS_NOTES_DIR", "/elsewhere/notes")

	cfg := load(t)
	if cfg.NotesDir != "/elsewhere/notes" {
		t.Errorf("explicit NotesDir: got %q", cfg.NotesDir)
	}
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)
	t.Setenv("TASKLINKS_BASE_DIR", "~/my/tasks")

	cfg := load(t)
	if cfg.BaseDir != filepath.Join(home, "my", "tasks") {
		t.Errorf("BaseDir: got %q", cfg.BaseDir)
	}
}
