// Package bggoexpr inspects HCL expressions before they are evaluated.
package bggoexpr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/conduit/internal/bggohcl"
)

// TraversalKey generates a stable, canonical string representation for an
// hcl.Traversal, suitable for use as a map key.
func TraversalKey(t hcl.Traversal) string {
	// e.g., actors.Guard
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// References returns the sorted, de-duplicated variable references and
// function calls found in expr.
func References(expr hcl.Expression) ([]string, []string) {
	if expr == nil {
		return nil, nil
	}

	traversals := make(map[string]struct{})
	for _, traversal := range expr.Variables() {
		traversals[TraversalKey(traversal)] = struct{}{}
	}

	// Variables() does not report function calls, so walk the syntax tree.
	functions := make(map[string]struct{})
	if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
		walkForFunctions(syntaxExpr, functions)
	}

	return sortedKeys(traversals), sortedKeys(functions)
}

// RequireLiteral reports an error diagnostic when expr depends on anything
// other than literal values. Scene files are evaluated without variables or
// functions.
func RequireLiteral(expr hcl.Expression, attrName string) hcl.Diagnostics {
	refs, funcs := References(expr)
	if len(refs) == 0 && len(funcs) == 0 {
		return nil
	}

	var parts []string
	if len(refs) > 0 {
		parts = append(parts, "references "+strings.Join(refs, ", "))
	}
	if len(funcs) > 0 {
		parts = append(parts, "calls "+strings.Join(funcs, ", "))
	}
	rng := expr.Range()
	return hcl.Diagnostics{bggohcl.ErrorDiag(
		"Non-literal value",
		fmt.Sprintf("The %q attribute must be a literal value, but it %s.", attrName, strings.Join(parts, " and ")),
		&rng,
	)}
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// walkForFunctions recursively walks the AST, looking only for function calls.
func walkForFunctions(expr hclsyntax.Expression, functions map[string]struct{}) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		functions[e.Name] = struct{}{}
		for _, arg := range e.Args {
			walkForFunctions(arg, functions)
		}
	case *hclsyntax.BinaryOpExpr:
		walkForFunctions(e.LHS, functions)
		walkForFunctions(e.RHS, functions)
	case *hclsyntax.ConditionalExpr:
		walkForFunctions(e.Condition, functions)
		walkForFunctions(e.TrueResult, functions)
		walkForFunctions(e.FalseResult, functions)
	case *hclsyntax.UnaryOpExpr:
		walkForFunctions(e.Val, functions)
	case *hclsyntax.TemplateExpr:
		for _, part := range e.Parts {
			walkForFunctions(part, functions)
		}
	case *hclsyntax.TemplateWrapExpr:
		walkForFunctions(e.Wrapped, functions)
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			walkForFunctions(item, functions)
		}
	case *hclsyntax.ObjectConsExpr:
		for _, item := range e.Items {
			walkForFunctions(item.KeyExpr, functions)
			walkForFunctions(item.ValueExpr, functions)
		}
	case *hclsyntax.IndexExpr:
		walkForFunctions(e.Collection, functions)
		walkForFunctions(e.Key, functions)
	case *hclsyntax.ParenthesesExpr:
		walkForFunctions(e.Expression, functions)
	}
}
