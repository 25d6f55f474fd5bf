// Package main provides the entry point for the coffeed catalog server.
package main

import (
	"github.com/simoneromano96/coffeed-coffee-service/cmd/coffeed/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
