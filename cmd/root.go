// Package cmd implements the CLI command structure for tasklinks.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/tasklinks/tasklinks/internal/config"
	"github.com/tasklinks/tasklinks/internal/graph"
	"github.com/tasklinks/tasklinks/internal/logging"
	"github.com/tasklinks/tasklinks/internal/task"
	"github.com/tasklinks/tasklinks/internal/ui"
	"github.com/tasklinks/tasklinks/internal/view"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasklinks CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasklinks", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	styles := view.DefaultStyles()
	if cfg.NoColor || !ui.IsTTY(os.Stdout) {
		styles = view.PlainStyles()
	}

	// Determine the subcommand. No args means the interactive REPL.
	subcommand := "repl"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "repl":
		return replCommand(ctx, cfg, logger, styles)
	case "show":
		return showCommand(cfg, logger, styles, remainingArgs)
	case "tui":
		cancelCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return ui.Run(cancelCtx, cfg, logger, styles)
	case "export":
		return exportCommand(cfg, logger, remainingArgs)
	case "config":
		return configCommand(cfg)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// loadRelations loads the configured task files and builds the indexes.
// A missing base directory is the one fatal startup condition.
func loadRelations(cfg *config.Config, logger *log.Logger) (*graph.Relations, error) {
	if _, err := os.Stat(cfg.BaseDir); err != nil {
		return nil, fmt.Errorf("base directory %s not found", cfg.BaseDir)
	}
	tasks, err := task.LoadAll(cfg.BaseDir, cfg.NotesDir, cfg.NoteExt, cfg.TaskFiles, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded tasks", "count", len(tasks), "base_dir", cfg.BaseDir)
	return graph.Build(tasks), nil
}

// defaultOptions maps the configured display defaults onto query options.
func defaultOptions(cfg *config.Config) view.Options {
	return view.Options{
		HideNotes:   cfg.Display.HideNotes,
		ShowDone:    cfg.Display.ShowDone,
		OnlyLinked:  cfg.Display.OnlyLinked,
		ShowContent: cfg.Display.ShowContent,
	}
}

// runQuery selects and renders one query, reporting lookup outcomes as
// informational messages rather than errors.
func runQuery(w io.Writer, rel *graph.Relations, q view.Query, styles view.Styles) {
	roots, err := view.Select(rel, q)
	if err != nil {
		switch {
		case errors.Is(err, view.ErrNotFound):
			fmt.Fprintln(w, styles.Warn(fmt.Sprintf("✗ Task at line %d not found", q.Line)))
		case errors.Is(err, view.ErrHidden):
			fmt.Fprintln(w, styles.Warn(fmt.Sprintf("✗ Task at line %d is completed (hidden). Use -sd to display.", q.Line)))
		case errors.Is(err, view.ErrNoMatches):
			fmt.Fprintln(w, styles.Warn("✗ No tasks found with given filters"))
		default:
			fmt.Fprintln(w, styles.Error("✗ "+err.Error()))
		}
		fmt.Fprintln(w)
		return
	}
	view.NewRenderer(w, rel, q.Opts, styles).Render(roots)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("tasklinks version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasklinks - A task relationship tree viewer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklinks [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  repl           Interactive prompt (default command)")
	fmt.Fprintln(w, "  show [query]   One-shot render of a query")
	fmt.Fprintln(w, "  tui            Launch terminal UI")
	fmt.Fprintln(w, "  export [-o f]  Write a JSON snapshot of the task graph")
	fmt.Fprintln(w, "  config         Show resolved configuration and value sources")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Query syntax (repl and show):")
	fmt.Fprintln(w, "  <number>            Show task branch from line number")
	fmt.Fprintln(w, "  -r <number>         Show full tree from the task's root")
	fmt.Fprintln(w, "  -hn, --hide-notes   Hide research notes")
	fmt.Fprintln(w, "  -sd, --show-done    Show completed tasks")
	fmt.Fprintln(w, "  -l,  --link-lock    Show only linked tasks, hide notes-only")
	fmt.Fprintln(w, "  -sc, --show-context Show note content under headings")
	fmt.Fprintln(w, "  -a,  --area <v>     Filter by area")
	fmt.Fprintln(w, "  -s,  --status <v>   Filter by status")
	fmt.Fprintln(w, "  -c,  --context <v>  Filter by context")
	fmt.Fprintln(w, "  -t,  --tag <v>...   Filter by tag(s)")
}
