package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/conduit/internal/app"
	"github.com/specialistvlad/conduit/internal/export"
)

// Exit codes.
const (
	ExitFailure   = 1
	ExitUsage     = 2
	ExitCancelled = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ToExitError maps an application error onto a process exit code.
func ToExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	switch {
	case errors.Is(err, app.ErrUsage):
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	case errors.Is(err, app.ErrExportCancelled):
		return &ExitError{Code: ExitCancelled, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}

// EnvMap converts os.Environ style entries into a map.
func EnvMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// Parse processes command-line arguments. Settings are layered as flags, then
// CONDUIT_* environment variables, then conduit.toml, then defaults. It
// returns a populated Config, a boolean indicating if the program should exit
// cleanly, or an ExitError.
func Parse(args []string, output io.Writer, environ map[string]string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("conduit", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Conduit - actor placeholders and glTF export for scene documents.

Usage:
  conduit [options] COMMAND SCENE_PATH [ARGS]

Arguments:
  SCENE_PATH
    Path to a scene file. export also accepts a directory of *.scene.hcl files.

Commands:
`)
		for _, line := range app.CommandHelp() {
			fmt.Fprintf(output, "  %s\n", line)
		}
		fmt.Fprint(output, "\nOptions:\n")
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a conduit.toml file. Defaults to conduit.toml next to the scene.")
	exportDirFlag := flagSet.String("export-dir", "", "Export directory, overriding the scene's own. '//' is relative to the scene file.")
	formatFlag := flagSet.String("format", "", "Export format. Options: 'gltf' or 'glb'.")
	exporterFlag := flagSet.String("exporter", "", "Exporter backend. Options: 'manifest', 'command', 'dryrun'.")
	exporterCmdFlag := flagSet.String("exporter-cmd", "", "Command line for the command exporter. Supports {manifest}, {output} and {format}.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	outputFlag := flagSet.String("o", "", "Output format for list. Options: 'text' or 'yaml'.")
	noCamerasFlag := flagSet.Bool("no-cameras", false, "Leave cameras out of the export.")
	noLightsFlag := flagSet.Bool("no-lights", false, "Leave lights out of the export.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() < 2 {
		slog.Debug("No command or scene path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := app.DefaultConfig()
	cfg.Command = flagSet.Arg(0)
	cfg.ScenePath = flagSet.Arg(1)
	cfg.Args = flagSet.Args()[2:]
	slog.Debug("Command determined.", "command", cfg.Command, "path", cfg.ScenePath)

	configPath := *configFlag
	if configPath == "" {
		configPath = defaultConfigPath(cfg.ScenePath)
	}
	if configPath != "" {
		if err := cfg.ApplyFile(configPath); err != nil {
			return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		slog.Debug("Config file applied.", "path", configPath)
	}

	if err := cfg.ApplyEnv(environ); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	var flagErr error
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "export-dir":
			cfg.ExportDirOverride = *exportDirFlag
		case "format":
			format, err := export.ParseFormat(*formatFlag)
			if err != nil {
				flagErr = err
				return
			}
			cfg.Format = format
		case "exporter":
			cfg.Exporter = *exporterFlag
		case "exporter-cmd":
			cfg.ExporterCommand = strings.Fields(*exporterCmdFlag)
		case "log-format":
			cfg.LogFormat = *logFormatFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "o":
			cfg.Output = *outputFlag
		case "no-cameras":
			cfg.IncludeCameras = !*noCamerasFlag
		case "no-lights":
			cfg.IncludeLights = !*noLightsFlag
		}
	})
	if flagErr != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: flagErr.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// defaultConfigPath returns conduit.toml beside the scene file, or inside the
// scene directory, when that file exists.
func defaultConfigPath(scenePath string) string {
	dir := filepath.Dir(scenePath)
	if info, err := os.Stat(scenePath); err == nil && info.IsDir() {
		dir = scenePath
	}
	candidate := filepath.Join(dir, app.ConfigFileName)
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}
