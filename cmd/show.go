package cmd

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tasklinks/tasklinks/internal/config"
	"github.com/tasklinks/tasklinks/internal/view"
)

// showCommand renders one query and exits. The arguments use the same
// syntax as the REPL, e.g. `tasklinks show 45 -r -sd`.
func showCommand(cfg *config.Config, logger *log.Logger, styles view.Styles, args []string) error {
	rel, err := loadRelations(cfg, logger)
	if err != nil {
		return err
	}
	q := view.ParseQuery(strings.Join(args, " "), defaultOptions(cfg))
	runQuery(os.Stdout, rel, q, styles)
	return nil
}
