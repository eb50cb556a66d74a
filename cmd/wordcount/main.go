// Package main provides the CLI entrypoint for wordcount.
package main

import (
	"os"

	"textmetrics/internal/cli"
)

func main() {
	if err := cli.NewWordCountCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
