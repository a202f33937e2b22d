package app

import (
	"testing"

	"github.com/specialistvlad/conduit/internal/export"
	"github.com/specialistvlad/conduit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFile(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		ConfigFileName: `
log_level        = "debug"
exporter         = "command"
exporter_command = ["blender", "-b", "{manifest}"]
format           = "glb"
export_dir       = "//dist/"
include_lights   = false
`,
	})

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyFile(root+"/"+ConfigFileName))

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "keys not in the file keep their value")
	assert.Equal(t, "command", cfg.Exporter)
	assert.Equal(t, []string{"blender", "-b", "{manifest}"}, cfg.ExporterCommand)
	assert.Equal(t, export.FormatGLB, cfg.Format)
	assert.Equal(t, "//dist/", cfg.ExportDir)
	assert.True(t, cfg.IncludeCameras)
	assert.False(t, cfg.IncludeLights)
}

func TestApplyFile_Errors(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"bad-format.toml":  `format = "fbx"`,
		"unknown-key.toml": `workers = 4`,
		"syntax.toml":      `exporter = `,
	})
	for _, name := range []string{"bad-format.toml", "unknown-key.toml", "syntax.toml", "missing.toml"} {
		cfg := DefaultConfig()
		assert.Error(t, cfg.ApplyFile(root+"/"+name), name)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(map[string]string{
		"CONDUIT_LOG_FORMAT":       "json",
		"CONDUIT_EXPORTER":         "dryrun",
		"CONDUIT_EXPORTER_COMMAND": "blender -b {output}",
		"CONDUIT_EXPORT_DIR":       "/tmp/out",
		"CONDUIT_FORMAT":           "GLB",
		"LOG_LEVEL":                "error",
	}))

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel, "unprefixed variables are ignored")
	assert.Equal(t, "dryrun", cfg.Exporter)
	assert.Equal(t, []string{"blender", "-b", "{output}"}, cfg.ExporterCommand)
	assert.Equal(t, "/tmp/out", cfg.ExportDir)
	assert.Equal(t, export.FormatGLB, cfg.Format)

	err := cfg.ApplyEnv(map[string]string{"CONDUIT_FORMAT": "obj"})
	assert.Error(t, err)
}

func TestNewConfig(t *testing.T) {
	valid := DefaultConfig()
	valid.Command = "list"
	valid.ScenePath = "level.scene.hcl"
	valid.LogLevel = "DEBUG"

	cfg, err := NewConfig(valid)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing command", func(c *Config) { c.Command = "" }},
		{"missing scene", func(c *Config) { c.ScenePath = "" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad output", func(c *Config) { c.Output = "csv" }},
		{"empty exporter", func(c *Config) { c.Exporter = "" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			_, err := NewConfig(c)
			assert.Error(t, err)
		})
	}
}
