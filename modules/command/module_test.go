package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/conduit/internal/export"
	"github.com/specialistvlad/conduit/internal/exporter"
	"github.com/specialistvlad/conduit/internal/scene"
	"github.com/specialistvlad/conduit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records the call and reads the manifest while it still exists.
type fakeRunner struct {
	name     string
	args     []string
	manifest string
	stderr   string
	code     int32
	err      error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, int32, error) {
	f.name = name
	f.args = args
	for _, a := range args {
		if filepath.Ext(a) == ".json" {
			b, err := os.ReadFile(a)
			if err == nil {
				f.manifest = string(b)
			}
		}
	}
	return nil, []byte(f.stderr), f.code, f.err
}

func build(t *testing.T, runner CommandRunner, command ...string) export.Exporter {
	t.Helper()
	reg := exporter.New()
	(&Module{Runner: runner}).Register(reg)
	e, err := reg.Build(Name, exporter.Config{Command: command})
	require.NoError(t, err)
	return e
}

func TestExport_TemplatesArgumentsAndManifest(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	ws := testutil.GuardDoorWorkspace(ctx, t)
	runner := &fakeRunner{}
	m := export.NewManager(build(t, runner, "blender", "--background", "--python-expr", "x", "--", "{manifest}", "{output}", "{format}"))

	res, err := m.Export(ctx, ws, "//out/")
	require.NoError(t, err)
	assert.Equal(t, export.StatusFinished, res.Status)

	assert.Equal(t, "blender", runner.name)
	require.Len(t, runner.args, 7)
	assert.Equal(t, []string{"--background", "--python-expr", "x", "--"}, runner.args[:4])
	assert.Equal(t, res.Path, runner.args[5])
	assert.Equal(t, string(export.FormatGLTFEmbedded), runner.args[6])
	assert.Contains(t, runner.manifest, `"conduit_actor":"Guard"`)
	assert.Contains(t, runner.manifest, `"conduit_actor":"Door"`)

	_, err = os.Stat(runner.args[4])
	assert.True(t, os.IsNotExist(err), "manifest is removed after the run")
	assert.DirExists(t, filepath.Dir(res.Path))

	a, _ := ws.Document().Object("A")
	assert.Equal(t, scene.CollectionInstancing("C1"), a.Instancing())
}

func TestExport_NonZeroExitBecomesExporterError(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	ws := testutil.GuardDoorWorkspace(ctx, t)
	runner := &fakeRunner{stderr: "Error: bad export\n", code: 2, err: errors.New("exit status 2")}
	m := export.NewManager(build(t, runner, "blender", "{output}"))

	res, err := m.Export(ctx, ws, "")
	assert.Equal(t, export.StatusCancelled, res.Status)
	assert.Equal(t, export.ReasonExporterFailure, res.Reason)
	var exErr *export.ExporterError
	require.ErrorAs(t, err, &exErr)
	assert.Contains(t, err.Error(), "exited with code 2: Error: bad export")

	a, _ := ws.Document().Object("A")
	assert.Equal(t, scene.CollectionInstancing("C1"), a.Instancing(), "state restored after failure")
}

func TestNew_RequiresCommand(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoCommand)

	reg := exporter.New()
	(&Module{}).Register(reg)
	_, err = reg.Build(Name, exporter.Config{})
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, _, code, err := ExecRunner{}.Run(context.Background(), "conduit-definitely-not-a-binary")
	require.Error(t, err)
	assert.Equal(t, int32(127), code)
}
