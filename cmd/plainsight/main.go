package main

import (
	"fmt"
	"os"

	"github.com/plainsight/plainsight-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", command.Describe(err))
		os.Exit(command.ExitCode(err))
	}
}
