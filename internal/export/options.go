package export

import (
	"context"
	"fmt"
	"strings"
)

// Format is the exported file layout.
type Format string

const (
	FormatGLTFEmbedded Format = "GLTF_EMBEDDED"
	FormatGLB          Format = "GLB"
)

// ParseFormat accepts the format names plus the file extensions.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "GLTF_EMBEDDED", "GLTF":
		return FormatGLTFEmbedded, nil
	case "GLB":
		return FormatGLB, nil
	}
	return "", fmt.Errorf("unsupported export format %q: must be 'gltf' or 'glb'", s)
}

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	if f == FormatGLB {
		return ".glb"
	}
	return ".gltf"
}

// LightingMode selects how light units are converted.
type LightingMode string

// LightingCompat exports unitless light values.
const LightingCompat LightingMode = "COMPAT"

// Options are passed through to the exporter.
type Options struct {
	Format                  Format
	ConvertLighting         LightingMode
	IncludeCameras          bool
	IncludeLights           bool
	IncludeCustomProperties bool
}

// DefaultOptions returns a single embedded glTF file with cameras, lights and
// custom properties.
func DefaultOptions() Options {
	return Options{
		Format:                  FormatGLTFEmbedded,
		ConvertLighting:         LightingCompat,
		IncludeCameras:          true,
		IncludeLights:           true,
		IncludeCustomProperties: true,
	}
}

// Exporter writes a document view to path. It is treated as one blocking call.
type Exporter interface {
	Export(ctx context.Context, path string, opts Options, view *View) error
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(ctx context.Context, path string, opts Options, view *View) error

// Export calls f.
func (f ExporterFunc) Export(ctx context.Context, path string, opts Options, view *View) error {
	return f(ctx, path, opts, view)
}
