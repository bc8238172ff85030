package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/CSaratakij/G435BatteryApproximate/internal/app"
)

// logEnv names a file that receives debug logs while the UI owns the terminal.
const logEnv = "G435_LOG"

func main() {
	os.Exit(run())
}

func run() int {
	if path := os.Getenv(logEnv); path != "" {
		f, err := tea.LogToFile(path, "g435battery")
		if err != nil {
			color.New(color.FgRed).Fprintf(os.Stderr, "g435battery: open log: %v\n", err)
			return 1
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, app.Options{BellOut: os.Stderr}); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "g435battery: %v\n", err)
		return 1
	}
	return 0
}
