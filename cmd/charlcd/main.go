package main

import (
	"os"

	"charlcd/cmd/charlcd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
