package dryrun

import (
	"os"
	"testing"

	"github.com/specialistvlad/conduit/internal/export"
	"github.com/specialistvlad/conduit/internal/exporter"
	"github.com/specialistvlad/conduit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRun_LogsNodesAndWritesNothing(t *testing.T) {
	ctx, logs := testutil.NewContext(t)
	ws := testutil.GuardDoorWorkspace(ctx, t)

	reg := exporter.New()
	(&Module{}).Register(reg)
	e, err := reg.Build(Name, exporter.Config{})
	require.NoError(t, err)

	res, err := export.NewManager(e).Export(ctx, ws, "")
	require.NoError(t, err)
	assert.Equal(t, export.StatusFinished, res.Status)

	out := logs.String()
	assert.Contains(t, out, "Dry run export.")
	assert.Contains(t, out, "name=A type=EMPTY instance_type=NONE actor=Guard bound=true")
	assert.Contains(t, out, "name=B type=EMPTY instance_type=NONE actor=Door bound=true")
	assert.Contains(t, out, "name=C type=MESH instance_type=NONE actor=\"\" bound=false")

	_, err = os.Stat(res.Path)
	assert.True(t, os.IsNotExist(err))
}
