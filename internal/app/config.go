package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/conduit/internal/export"
)

// ConfigFileName is looked up next to the scene when no config file is given.
const ConfigFileName = "conduit.toml"

// Output formats for listing commands.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command   string
	ScenePath string // scene file, or a directory of scene files for export
	Args      []string

	LogFormat string
	LogLevel  string
	Output    string

	Exporter        string
	ExporterCommand []string
	Format          export.Format
	// ExportDir is the default directory, used when the document names none.
	ExportDir string
	// ExportDirOverride wins over the document's own directory.
	ExportDirOverride string
	IncludeCameras    bool
	IncludeLights     bool
}

// DefaultConfig returns the built-in defaults, the lowest precedence layer.
func DefaultConfig() Config {
	return Config{
		LogFormat:      "text",
		LogLevel:       "info",
		Output:         OutputText,
		Exporter:       "manifest",
		Format:         export.FormatGLTFEmbedded,
		IncludeCameras: true,
		IncludeLights:  true,
	}
}

type fileConfig struct {
	LogFormat       string   `toml:"log_format"`
	LogLevel        string   `toml:"log_level"`
	Exporter        string   `toml:"exporter"`
	ExporterCommand []string `toml:"exporter_command"`
	Format          string   `toml:"format"`
	ExportDir       string   `toml:"export_dir"`
	IncludeCameras  bool     `toml:"include_cameras"`
	IncludeLights   bool     `toml:"include_lights"`
}

// ApplyFile overlays the keys defined in a conduit.toml file.
func (c *Config) ApplyFile(path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}

	if meta.IsDefined("log_format") {
		c.LogFormat = strings.TrimSpace(raw.LogFormat)
	}
	if meta.IsDefined("log_level") {
		c.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("exporter") {
		c.Exporter = strings.TrimSpace(raw.Exporter)
	}
	if meta.IsDefined("exporter_command") {
		c.ExporterCommand = raw.ExporterCommand
	}
	if meta.IsDefined("format") {
		f, err := export.ParseFormat(raw.Format)
		if err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
		c.Format = f
	}
	if meta.IsDefined("export_dir") {
		c.ExportDir = strings.TrimSpace(raw.ExportDir)
	}
	if meta.IsDefined("include_cameras") {
		c.IncludeCameras = raw.IncludeCameras
	}
	if meta.IsDefined("include_lights") {
		c.IncludeLights = raw.IncludeLights
	}
	return nil
}

type envConfig struct {
	LogLevel        string   `env:"LOG_LEVEL"`
	LogFormat       string   `env:"LOG_FORMAT"`
	Exporter        string   `env:"EXPORTER"`
	ExporterCommand []string `env:"EXPORTER_COMMAND" envSeparator:" "`
	ExportDir       string   `env:"EXPORT_DIR"`
	Format          string   `env:"FORMAT"`
}

// ApplyEnv overlays CONDUIT_* variables from environ. Empty values are
// ignored, and a nil environ is treated as empty.
func (c *Config) ApplyEnv(environ map[string]string) error {
	if environ == nil {
		environ = map[string]string{}
	}
	var raw envConfig
	if err := env.ParseWithOptions(&raw, env.Options{Prefix: "CONDUIT_", Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if raw.LogLevel != "" {
		c.LogLevel = raw.LogLevel
	}
	if raw.LogFormat != "" {
		c.LogFormat = raw.LogFormat
	}
	if raw.Exporter != "" {
		c.Exporter = raw.Exporter
	}
	if len(raw.ExporterCommand) > 0 {
		c.ExporterCommand = raw.ExporterCommand
	}
	if raw.ExportDir != "" {
		c.ExportDir = raw.ExportDir
	}
	if raw.Format != "" {
		f, err := export.ParseFormat(raw.Format)
		if err != nil {
			return fmt.Errorf("parse env: %w", err)
		}
		c.Format = f
	}
	return nil
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Command == "" {
		return nil, errors.New("a command is required")
	}
	if cfg.ScenePath == "" {
		return nil, errors.New("SCENE_PATH is a required argument and cannot be empty")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	cfg.Output = strings.ToLower(cfg.Output)
	if cfg.Output != OutputText && cfg.Output != OutputYAML {
		return nil, errors.New("invalid output: must be 'text' or 'yaml'")
	}
	if cfg.Exporter == "" {
		return nil, errors.New("exporter name cannot be empty")
	}

	return &cfg, nil
}
