package main

import (
	"errors"
	"log"
	"os"

	"tableflip.dev/diary/pkg/commands"
	"tableflip.dev/diary/pkg/commands/options"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		if errors.Is(err, options.ErrReported) {
			os.Exit(1)
		}
		log.Fatalf("error during command execution: %v", err)
	}
}
