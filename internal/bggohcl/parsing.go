package bggohcl

import (
	"github.com/hashicorp/hcl/v2"
)

// FindUniqueBlock searches a slice of blocks for all blocks of a given name.
// It returns a diagnostic error if more than one block of that name is found.
// If no block is found, it returns nil.
func FindUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type == name {
			if found != nil {
				diags = append(diags, ErrorDiag(
					"Duplicate \""+name+"\" block",
					"Only one \""+name+"\" block is allowed.",
					&block.DefRange,
				))
			}
			found = block
		}
	}

	return found, diags
}

// RequireUniqueBlock is FindUniqueBlock that also reports a missing block.
// The file range is used as the subject when nothing is found.
func RequireUniqueBlock(blocks hcl.Blocks, name string, fileRange hcl.Range) (*hcl.Block, hcl.Diagnostics) {
	found, diags := FindUniqueBlock(blocks, name)
	if found == nil && !diags.HasErrors() {
		diags = append(diags, ErrorDiag(
			"Missing \""+name+"\" block",
			"Exactly one \""+name+"\" block is required.",
			&fileRange,
		))
	}
	return found, diags
}

// ErrorDiag builds an error-severity diagnostic.
func ErrorDiag(summary, detail string, subject *hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject,
	}
}
