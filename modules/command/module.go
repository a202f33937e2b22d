package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/conduit/internal/ctxlog"
	"github.com/specialistvlad/conduit/internal/export"
	"github.com/specialistvlad/conduit/internal/exporter"
)

// Name is the backend name used in configuration.
const Name = "command"

// Placeholders substituted in every command argument.
const (
	ArgManifest = "{manifest}"
	ArgOutput   = "{output}"
	ArgFormat   = "{format}"
)

var ErrNoCommand = errors.New("command exporter requires a command line")

// Module implements the exporter.Module interface for this package.
type Module struct {
	// Runner overrides process execution. Nil means ExecRunner.
	Runner CommandRunner
}

// Register registers the command backend.
func (m *Module) Register(r *exporter.Registry) {
	r.Register(Name, func(cfg exporter.Config) (export.Exporter, error) {
		return New(cfg.Command, m.Runner)
	})
}

// Exporter hands the export view to an external process. The view is written
// as a JSON manifest the process reads; the process writes the output file.
type Exporter struct {
	command []string
	runner  CommandRunner
}

// New creates a command exporter. The first element of command is the
// executable.
func New(command []string, runner CommandRunner) (*Exporter, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return nil, ErrNoCommand
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Exporter{command: command, runner: runner}, nil
}

// Export implements export.Exporter.
func (e *Exporter) Export(ctx context.Context, path string, opts export.Options, view *export.View) error {
	logger := ctxlog.FromContext(ctx).With("exporter", Name)

	manifest, err := view.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to render export manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.CreateTemp("", "conduit-manifest-*.json")
	if err != nil {
		return fmt.Errorf("failed to create manifest file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(manifest); err != nil {
		f.Close()
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	replacer := strings.NewReplacer(
		ArgManifest, f.Name(),
		ArgOutput, path,
		ArgFormat, string(opts.Format),
	)
	args := make([]string, 0, len(e.command)-1)
	for _, a := range e.command[1:] {
		args = append(args, replacer.Replace(a))
	}

	logger.Debug("Running exporter command.", "command", e.command[0], "args", args)
	stdout, stderr, code, err := e.runner.Run(ctx, e.command[0], args...)
	if len(stdout) > 0 {
		logger.Debug("Exporter command output.", "stdout", strings.TrimSpace(string(stdout)))
	}
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("exporter command %s exited with code %d: %s", e.command[0], code, msg)
	}
	logger.Info("Exporter command finished.", "output", path)
	return nil
}
