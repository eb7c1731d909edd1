package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tasklinks/tasklinks/internal/config"
	"github.com/tasklinks/tasklinks/internal/export"
)

// exportCommand writes a JSON snapshot of the task graph. When a schema
// file is configured the snapshot is validated before anything is
// written.
func exportCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasklinks export", flag.ContinueOnError)
	out := fs.String("o", "", "Output file (default: stdout)")
	noValidate := fs.Bool("no-validate", false, "Skip schema validation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rel, err := loadRelations(cfg, logger)
	if err != nil {
		return err
	}

	snap := export.Build(rel)
	if cfg.SchemaFile != "" && !*noValidate {
		if errs := snap.Validate(cfg.SchemaFile); len(errs) > 0 {
			for _, e := range errs {
				logger.Error("schema violation", "err", e)
			}
			return fmt.Errorf("snapshot failed schema validation (%d errors)", len(errs))
		}
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return snap.Encode(w)
}
