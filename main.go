// Package main is the entry point for logseek, a random-access reader
// for large timestamped log files: it locates records by datetime via
// binary search over byte offsets instead of scanning from the start.
package main

import (
	"github.com/tberlioz/logseek/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// All command-line parsing, flag handling, and execution logic
	// is delegated to the cmd package.
	cmd.Execute(version, commit, date)
}
