package bggohcl

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseBlocks(t *testing.T, src string) (hcl.Blocks, hcl.Range) {
	t.Helper()
	file, diags := hclsyntax.ParseConfig([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	content, diags := file.Body.Content(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: "scene", LabelNames: []string{"name"}}},
	})
	require.False(t, diags.HasErrors(), diags.Error())
	return content.Blocks, file.Body.MissingItemRange()
}

func TestFindUniqueBlock(t *testing.T) {
	blocks, _ := parseBlocks(t, `scene "a" {}`)
	found, diags := FindUniqueBlock(blocks, "scene")
	require.False(t, diags.HasErrors())
	require.NotNil(t, found)
	assert.Equal(t, []string{"a"}, found.Labels)

	blocks, _ = parseBlocks(t, "scene \"a\" {}\nscene \"b\" {}\n")
	_, diags = FindUniqueBlock(blocks, "scene")
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Error(), `Duplicate "scene" block`)
}

func TestRequireUniqueBlock_Missing(t *testing.T) {
	blocks, rng := parseBlocks(t, ``)
	found, diags := RequireUniqueBlock(blocks, "scene", rng)
	assert.Nil(t, found)
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Error(), `Missing "scene" block`)
}
