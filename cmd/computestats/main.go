// Package main provides the CLI entrypoint for computestats.
package main

import (
	"os"

	"textmetrics/internal/cli"
)

func main() {
	if err := cli.NewStatsCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
