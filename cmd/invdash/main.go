// Package main is the entry point for the inventory dashboard tool.
package main

import (
	"inventory-dashboard/cmd/invdash/cmd"
)

// Version information, injected at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cmd.SetVersionInfo(Version, BuildTime, GitCommit)
	cmd.Execute()
}
