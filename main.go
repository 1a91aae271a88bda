package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/envc/cmd"
	"github.com/PolarWolf314/envc/internal/ui"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if cmd.IsCancelled(err) {
			fmt.Fprintln(os.Stderr, ui.Warning.Sprint("Cancelled."))
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, cmd.FormatError(err))
		fmt.Fprintln(os.Stderr, "Run 'envc --help' for usage.")
		os.Exit(1)
	}
}
