package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hdlkit/vecgen/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands report their own errors; only surface ones that
		// never reached a formatter (flag parsing, unknown commands).
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
