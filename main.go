package main

import (
	"os"

	"github.com/quarterlog/quarterlog/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
