package dryrun

import (
	"context"

	"github.com/specialistvlad/conduit/internal/ctxlog"
	"github.com/specialistvlad/conduit/internal/export"
	"github.com/specialistvlad/conduit/internal/exporter"
)

// Name is the backend name used in configuration.
const Name = "dryrun"

// Module implements the exporter.Module interface for this package.
type Module struct{}

// Register registers the dryrun backend.
func (m *Module) Register(r *exporter.Registry) {
	r.Register(Name, func(exporter.Config) (export.Exporter, error) {
		return export.ExporterFunc(Export), nil
	})
}

// Export writes nothing. It logs what a real exporter would have received.
func Export(ctx context.Context, path string, opts export.Options, view *export.View) error {
	logger := ctxlog.FromContext(ctx).With("exporter", Name)
	logger.Info("Dry run export.", "scene", view.SceneName(), "path", path, "format", opts.Format)
	for _, n := range view.Nodes() {
		actorName, bound := n.Actor()
		logger.Info("Node.",
			"name", n.Name,
			"type", n.Type,
			"instance_type", n.Instancing.Kind,
			"actor", actorName,
			"bound", bound,
		)
	}
	return nil
}
