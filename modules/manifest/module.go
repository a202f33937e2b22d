package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/conduit/internal/ctxlog"
	"github.com/specialistvlad/conduit/internal/export"
	"github.com/specialistvlad/conduit/internal/exporter"
)

// Name is the backend name used in configuration.
const Name = "manifest"

// Suffix is appended to the export path to form the manifest path.
const Suffix = ".conduit.json"

// Module implements the exporter.Module interface for this package.
type Module struct{}

// Register registers the manifest backend.
func (m *Module) Register(r *exporter.Registry) {
	r.Register(Name, func(exporter.Config) (export.Exporter, error) {
		return export.ExporterFunc(Export), nil
	})
}

// Export writes the export view as JSON next to the output path. It does not
// produce a glTF file.
func Export(ctx context.Context, path string, _ export.Options, view *export.View) error {
	b, err := view.MarshalJSON()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	out := path + Suffix
	if err := os.WriteFile(out, b, 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", out, err)
	}
	ctxlog.FromContext(ctx).Info("Export manifest written.", "path", out, "nodes", len(view.Nodes()))
	return nil
}
