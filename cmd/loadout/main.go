// Package main is the entry point for the loadout CLI.
package main

import (
	"os"

	"github.com/loadout-app/loadout/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
