package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/conduit/internal/actor"
	"github.com/specialistvlad/conduit/internal/scene"
	"github.com/specialistvlad/conduit/internal/workspace"
	"github.com/stretchr/testify/require"
)

// GuardDoorWorkspace opens the same scene as GuardDoorScene, built in memory
// and marked saved under a temp directory.
func GuardDoorWorkspace(ctx context.Context, t *testing.T) *workspace.Workspace {
	t.Helper()

	doc := scene.NewDocument("Level1")
	require.NoError(t, doc.AddCollection("C1"))
	for _, o := range []*scene.Object{
		scene.NewObject("A", scene.ObjectEmpty),
		scene.NewObject("B", scene.ObjectEmpty),
		scene.NewObject("C", scene.ObjectMesh),
	} {
		require.NoError(t, doc.AddObject(o))
	}
	doc.MarkSaved(filepath.Join(t.TempDir(), "level1.scene.hcl"))

	reg := actor.NewRegistry("scope-test")
	_, err := reg.Insert(actor.Definition{Name: "Guard", Placeholder: "C1"})
	require.NoError(t, err)
	_, err = reg.Insert(actor.Definition{Name: "Door"})
	require.NoError(t, err)

	ws := workspace.Open(ctx, doc, reg)
	require.NoError(t, ws.Bind(ctx, "A", "Guard"))
	require.NoError(t, ws.Bind(ctx, "B", "Door"))
	return ws
}
