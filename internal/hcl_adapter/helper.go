package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/conduit/internal/ctxlog"
)

// isExprDefined reports whether an optional attribute was written in the
// file. gohcl fills omitted hcl.Expression fields with a synthetic
// expression whose range is empty, so a nil check alone is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	defined := rng.End.Byte > rng.Start.Byte
	if !defined {
		ctxlog.FromContext(ctx).Debug("Optional attribute omitted.", "attribute", attrName, "hcl_range", rng.String())
	}
	return defined
}
