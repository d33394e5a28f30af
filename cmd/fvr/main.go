// Package main is the entry point for the fvr CLI tool.
package main

import (
	"os"

	"github.com/fvr-cli/fvr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
