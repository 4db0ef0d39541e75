// Package main provides the CLI entrypoint for footprint.
//
// footprint estimates the in-memory size of decoded YAML and JSON documents:
//   - measure prints the footprint of every document of the given files
//   - widths prints the width table measurements are charged with
package main

import (
	"fmt"
	"os"

	"memfootprint/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "footprint:", err)
	}

	os.Exit(cli.GetExitCode(err))
}
