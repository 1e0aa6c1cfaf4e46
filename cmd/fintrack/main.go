package main

import (
	"os"

	"fintrack/cmd/fintrack/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
