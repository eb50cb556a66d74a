// Package main provides the CLI entrypoint for convertnumbers.
package main

import (
	"os"

	"textmetrics/internal/cli"
)

func main() {
	if err := cli.NewConvertCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
