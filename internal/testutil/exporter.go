package testutil

import (
	"context"
	"sync"

	"github.com/specialistvlad/conduit/internal/export"
)

// ExportCall is what a RecordingExporter saw on one invocation.
type ExportCall struct {
	Path   string
	Format export.Format
	Nodes  []export.Node
	JSON   string
}

// RecordingExporter records every call it receives and returns Err.
type RecordingExporter struct {
	Err error

	mu    sync.Mutex
	calls []ExportCall
}

// Export implements export.Exporter.
func (r *RecordingExporter) Export(_ context.Context, path string, opts export.Options, view *export.View) error {
	b, err := view.MarshalJSON()
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ExportCall{Path: path, Format: opts.Format, Nodes: view.Nodes(), JSON: string(b)})
	return r.Err
}

// Calls returns a copy of the recorded calls.
func (r *RecordingExporter) Calls() []ExportCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ExportCall(nil), r.calls...)
}
