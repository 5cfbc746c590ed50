package main

import (
	"log/slog"
	"os"
)

// Version is set during build using ldflags.
var Version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("Exiting", slog.Any("err", err))
		os.Exit(1)
	}
}
