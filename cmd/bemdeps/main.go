// Package main provides the bemdeps command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/bemdeps/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
