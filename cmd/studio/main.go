package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"creatorstudio/internal/app"
	"creatorstudio/internal/infra"
	"creatorstudio/internal/shell"
	"creatorstudio/internal/tui"
	"creatorstudio/internal/views"
)

func main() {
	_ = godotenv.Load()

	outDir := flag.String("out", ".", "Directory generated images and videos are saved to")
	logPath := flag.String("log", "", "Write logs to this file (default: discard)")
	flag.Parse()

	cfg, presets, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := infra.NewLoggerTo("production", logOut)

	components, err := app.Build(cfg, presets, &logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build studio: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh := shell.New(components.Credentials, views.NewSet(ctx, components.ViewOptions()), &logger)
	program := tea.NewProgram(tui.New(ctx, tui.Options{
		Shell:     sh,
		Media:     components.Media,
		Tones:     presets.Tones,
		OutputDir: *outDir,
	}), tea.WithAltScreen())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
