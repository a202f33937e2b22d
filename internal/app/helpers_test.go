package app

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/conduit/internal/export"
	"github.com/specialistvlad/conduit/internal/exporter"
	"github.com/specialistvlad/conduit/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. It returns the
// command output buffer and the captured logs.
func SetupAppTest(t *testing.T, cfg Config, modules ...exporter.Module) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	out := &bytes.Buffer{}
	logBuffer := &testutil.SafeBuffer{}
	testutil.DumpLogsOnCleanup(t, logBuffer)

	base := DefaultConfig()
	base.LogLevel = "debug"
	if cfg.Output != "" {
		base.Output = cfg.Output
	}
	if cfg.Exporter != "" {
		base.Exporter = cfg.Exporter
	}
	base.Command = cfg.Command
	base.ScenePath = cfg.ScenePath
	base.Args = cfg.Args
	base.ExporterCommand = cfg.ExporterCommand
	base.ExportDir = cfg.ExportDir
	base.ExportDirOverride = cfg.ExportDirOverride
	if cfg.Format != "" {
		base.Format = cfg.Format
	}

	testApp := NewApp(out, logBuffer, &base, modules...)
	return testApp, out, logBuffer
}

// recordingModule registers a "recording" backend that captures calls.
type recordingModule struct {
	rec *testutil.RecordingExporter
}

func (m recordingModule) Register(r *exporter.Registry) {
	r.Register("recording", func(exporter.Config) (export.Exporter, error) { return m.rec, nil })
}
