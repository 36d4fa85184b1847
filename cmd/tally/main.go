package main

import (
	"os"

	"github.com/MrJamesThe3rd/tally/internal/commands"
)

var version = "dev"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
