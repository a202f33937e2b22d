package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/conduit/internal/ctxlog"
	"github.com/specialistvlad/conduit/internal/export"
	"github.com/specialistvlad/conduit/internal/exporter"
	"github.com/specialistvlad/conduit/internal/hcl_adapter"
)

var (
	// ErrUsage marks errors caused by bad command arguments.
	ErrUsage = errors.New("usage error")
	// ErrExportCancelled is returned when at least one scene was not exported.
	ErrExportCancelled = errors.New("export cancelled")
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	loader    *hcl_adapter.Loader
	exporters *exporter.Registry
	config    *Config
}

// NewApp is the constructor for the main application. Command output goes to
// outW and logs go to logW. With no modules, every built-in exporter backend
// is registered.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...exporter.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg := exporter.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All exporter modules registered.", "count", len(modules), "names", reg.Names())

	return &App{
		outW:      outW,
		logger:    logger,
		loader:    hcl_adapter.NewLoader(),
		exporters: reg,
		config:    cfg,
	}
}

// Exporters returns the application's exporter registry. This is primarily
// for testing.
func (a *App) Exporters() *exporter.Registry {
	return a.exporters
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command, "scene", a.config.ScenePath)

	cmd, ok := commands[a.config.Command]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, a.config.Command)
	}
	if n := len(a.config.Args); n < cmd.minArgs || n > cmd.maxArgs {
		return fmt.Errorf("%w: %s expects %s", ErrUsage, a.config.Command, cmd.usage)
	}

	if err := cmd.run(a, ctx, a.config.Args); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// newManager builds the export manager from the configured backend.
func (a *App) newManager() (*export.Manager, error) {
	e, err := a.exporters.Build(a.config.Exporter, exporter.Config{Command: a.config.ExporterCommand})
	if err != nil {
		return nil, err
	}
	opts := export.DefaultOptions()
	opts.Format = a.config.Format
	opts.IncludeCameras = a.config.IncludeCameras
	opts.IncludeLights = a.config.IncludeLights
	return export.NewManager(e, export.WithOptions(opts), export.WithExportDir(a.config.ExportDir)), nil
}
