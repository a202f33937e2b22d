package bggoexpr

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return expr
}

func TestReferences(t *testing.T) {
	refs, funcs := References(parseExpr(t, `"${upper(actors.Guard)}-${lower(b)}-${actors.Guard}"`))
	assert.Equal(t, []string{"actors.Guard", "b"}, refs)
	assert.Equal(t, []string{"lower", "upper"}, funcs)

	refs, funcs = References(nil)
	assert.Nil(t, refs)
	assert.Nil(t, funcs)
}

func TestRequireLiteral(t *testing.T) {
	for _, src := range []string{`"Guard"`, `null`, `"a${"b"}"`} {
		assert.Empty(t, RequireLiteral(parseExpr(t, src), "actor"), src)
	}

	diags := RequireLiteral(parseExpr(t, `actors.Guard`), "actor")
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Error(), `references actors.Guard`)

	diags = RequireLiteral(parseExpr(t, `upper("guard")`), "actor")
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags.Error(), `calls upper`)
}
