package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/conduit/internal/app"
	"github.com/specialistvlad/conduit/internal/cli"
)

// main is the entrypoint for the conduit application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:], cli.EnvMap(os.Environ())); err != nil {
		exitErr := cli.ToExitError(err)
		fmt.Fprintln(os.Stderr, exitErr.Message)
		os.Exit(exitErr.Code)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string, environ map[string]string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW, environ)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	conduitApp := app.NewApp(outW, logW, appConfig)
	return conduitApp.Run(ctx)
}
