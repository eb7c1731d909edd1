package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tasklinks/tasklinks/internal/config"
	"github.com/tasklinks/tasklinks/internal/view"
)

// replCommand runs the interactive prompt. One query is processed to
// completion before the next is read; Ctrl-C during input returns to
// the prompt without touching the loaded entity set.
func replCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, styles view.Styles) error {
	rel, err := loadRelations(cfg, logger)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	clearScreen()
	if len(rel.Tasks) == 0 {
		fmt.Println(styles.Warn("\n⚠ No tasks found"))
	}

	for {
		fmt.Print("\n" + styles.Green.Render("❯") + " ")

		select {
		case <-ctx.Done():
			return nil
		case <-sigCh:
			fmt.Println(styles.Warn("\n\n⚠ Interrupted. Type 'quit' to exit"))
			continue
		case line, ok := <-lines:
			if !ok {
				fmt.Println(styles.Cyan.Render("\n\n👋 Bye!"))
				return nil
			}
			input := strings.TrimSpace(line)

			switch strings.ToLower(input) {
			case "quit", "exit", "q":
				fmt.Println(styles.Cyan.Render("\n👋 Bye!"))
				return nil
			case "help", "h", "?":
				printReplHelp(styles)
				continue
			case "clear", "c":
				clearScreen()
				continue
			case "reload":
				rel, err = loadRelations(cfg, logger)
				if err != nil {
					return err
				}
				fmt.Println(styles.Cyan.Render(fmt.Sprintf("Reloaded %d tasks", len(rel.Tasks))))
				continue
			}

			if input == "" && len(rel.Tasks) == 0 {
				fmt.Println(styles.Warn("\n⚠ No tasks found"))
				continue
			}

			q := view.ParseQuery(input, defaultOptions(cfg))
			fmt.Println()
			runQuery(os.Stdout, rel, q, styles)
		}
	}
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}

func printReplHelp(styles view.Styles) {
	rule := styles.Cyan.Render(strings.Repeat("═", 70))
	flag := styles.Green.Render
	section := styles.Yellow.Render

	fmt.Println()
	fmt.Println(rule)
	fmt.Println(styles.White.Render("  Available Commands"))
	fmt.Println(rule)
	fmt.Println()
	fmt.Println("  " + section("Basic commands:"))
	fmt.Printf("    %s                  - Show all root tasks and relations\n", flag("Enter"))
	fmt.Printf("    %s               - Show task branch from line number: 45\n", flag("<number>"))
	fmt.Printf("    %s / %s               - Show this help\n", flag("help"), flag("?"))
	fmt.Printf("    %s / %s / %s        - Exit program\n", flag("quit"), flag("exit"), flag("q"))
	fmt.Printf("    %s / %s              - Clear screen\n", flag("clear"), flag("c"))
	fmt.Printf("    %s                 - Reload task and note files\n", flag("reload"))
	fmt.Println()
	fmt.Println("  " + section("Display flags:"))
	fmt.Printf("    %s / %s        - Show full tree from root: -r 45 / 45 -r\n", flag("-r"), flag("--root <n>"))
	fmt.Printf("    %s / %s     - Hide research notes (OBS/HYP/DO/RES...)\n", flag("-hn"), flag("--hide-notes"))
	fmt.Printf("    %s / %s      - Show completed tasks (hidden by default)\n", flag("-sd"), flag("--show-done"))
	fmt.Printf("    %s / %s       - Show only linked tasks, hide notes-only\n", flag("-l"), flag("--link-lock"))
	fmt.Printf("    %s / %s   - Show note content (text under headings)\n", flag("-sc"), flag("--show-context"))
	fmt.Println()
	fmt.Println("  " + section("Filter flags:"))
	fmt.Printf("    %s / %s        - Filter by area: -a work / --area home\n", flag("-a"), flag("--area <n>"))
	fmt.Printf("    %s / %s      - Filter by status: -s run / --status idea\n", flag("-s"), flag("--status <n>"))
	fmt.Printf("    %s / %s   - Filter by tag(s): -t urgent / -t bug fix\n", flag("-t"), flag("--tag <n> [<n>]"))
	fmt.Printf("    %s / %s     - Filter by context: -c work / --context home\n", flag("-c"), flag("--context <n>"))
	fmt.Println()
	fmt.Println("  " + section("Combining commands:"))
	fmt.Println("    Flags can be used in any order and combined freely:")
	fmt.Printf("    %s                    - Show branch from line 45\n", flag("45"))
	fmt.Printf("    %s         - Line 45, full tree, no notes, show completed\n", flag("45 -r -hn -sd"))
	fmt.Printf("    %s        - Filter area=work AND status=run\n", flag("-a work -s run"))
	fmt.Println()
	fmt.Println(rule)
}
