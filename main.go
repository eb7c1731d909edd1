// Command tasklinks renders task relationship trees in the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tasklinks/tasklinks/cmd"
)

func main() {
	if err := cmd.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
