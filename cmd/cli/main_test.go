package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/conduit/internal/cli"
	"github.com/specialistvlad/conduit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"}, nil)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"}, nil)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
	assert.Equal(t, cli.ExitUsage, cli.ToExitError(err).Code)
}

func TestRun_InvalidScene(t *testing.T) {
	t.Parallel()

	path := testutil.WriteScene(t, `
		scene "Broken" {
		// Missing closing brace here
	`)
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"list", path}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
	assert.Equal(t, cli.ExitFailure, cli.ToExitError(err).Code)
}

func TestRun_EditThenExportManifest(t *testing.T) {
	t.Parallel()

	path := testutil.WriteScene(t, testutil.GuardDoorScene)
	logs := &testutil.SafeBuffer{}
	testutil.DumpLogsOnCleanup(t, logs)

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, logs, []string{"set-placeholder", path, "1", "C1"}, nil))
	assert.Equal(t, "Set placeholder of actor 1: Door -> C1\n", out.String())

	out.Reset()
	env := map[string]string{"CONDUIT_EXPORTER": "manifest"}
	require.NoError(t, run(context.Background(), out, logs, []string{"-format", "glb", "export", path}, env))

	output := filepath.Join(filepath.Dir(path), "build", "Level1.glb")
	assert.Equal(t, "FINISHED\tLevel1\t"+output+"\n", out.String())

	b, err := os.ReadFile(output + ".conduit.json")
	require.NoError(t, err)
	assert.Contains(t, string(b), `"conduit_actor":"Door"`)
	assert.NotContains(t, string(b), `"instance_type":"COLLECTION"`)
}

func TestRun_ExportCancelledExitCode(t *testing.T) {
	t.Parallel()

	path := testutil.WriteScene(t, testutil.GuardDoorScene)
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{},
		[]string{"-exporter", "command", "-exporter-cmd", "conduit-definitely-not-a-binary {output}", "export", path}, nil)

	require.Error(t, err)
	assert.Equal(t, cli.ExitCancelled, cli.ToExitError(err).Code)
}
