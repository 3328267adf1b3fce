// Command fwdmuon classifies forward muon tracks as prompt or non-prompt.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/fwdmuon/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fwdmuon:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
