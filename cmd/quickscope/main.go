package main

import (
	"os"

	"github.com/wonny/quickscope/cmd/quickscope/commands"
)

// main is the entry point for the QuickScope CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
