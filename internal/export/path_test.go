package export

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/conduit/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	saved := scene.NewDocument("Level1")
	saved.MarkSaved("/docs/levels/level1.hcl")

	testCases := []struct {
		name   string
		format Format
		dir    string
		want   string
	}{
		{"default directory glb", FormatGLB, "", "/docs/levels/Level1.glb"},
		{"default directory gltf", FormatGLTFEmbedded, "", "/docs/levels/Level1.gltf"},
		{"explicit relative root", FormatGLB, "//", "/docs/levels/Level1.glb"},
		{"relative subdirectory", FormatGLB, "//export/", "/docs/levels/export/Level1.glb"},
		{"absolute directory", FormatGLB, "/out/", "/out/Level1.glb"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := OutputPath(saved, tc.format, tc.dir)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tc.want), got)
		})
	}
}

func TestOutputPath_UnsavedDocument(t *testing.T) {
	doc := scene.NewDocument("Level1")

	_, err := OutputPath(doc, FormatGLB, "")
	assert.ErrorIs(t, err, ErrDocumentNotSaved)

	got, err := OutputPath(doc, FormatGLB, "/out")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/out/Level1.glb"), got)
}

func TestOutputPath_RequiresSceneName(t *testing.T) {
	doc := scene.NewDocument(" ")
	doc.MarkSaved("/docs/x.hcl")
	_, err := OutputPath(doc, FormatGLB, "")
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"gltf":          FormatGLTFEmbedded,
		".gltf":         FormatGLTFEmbedded,
		"GLTF_EMBEDDED": FormatGLTFEmbedded,
		"glb":           FormatGLB,
		".GLB":          FormatGLB,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("fbx")
	require.Error(t, err)
}
