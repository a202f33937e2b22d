package exporter

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/conduit/internal/export"
)

var ErrUnknownExporter = errors.New("unknown exporter")

// Config carries the backend-specific settings from the tool config.
type Config struct {
	// Command is the external exporter command line, used by the command
	// backend. Arguments may contain {manifest}, {output} and {format}.
	Command []string
}

// Factory builds an exporter from config.
type Factory func(cfg Config) (export.Exporter, error)

// Module is the interface that all exporter backends must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry maps backend names to factories.
type Registry struct {
	factories map[string]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a backend. Registering the same name twice is a programming
// error and panics.
func (r *Registry) Register(name string, f Factory) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("exporter with name '%s' already registered", name))
	}
	slog.Debug("Registering exporter.", "name", name)
	r.factories[name] = f
}

// Build constructs the named backend.
func (r *Registry) Build(name string, cfg Config) (export.Exporter, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s' (available: %v)", ErrUnknownExporter, name, r.Names())
	}
	e, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build exporter '%s': %w", name, err)
	}
	return e, nil
}

// Names returns the registered backend names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
