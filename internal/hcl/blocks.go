package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// findUniqueBlock searches a slice of blocks for all blocks of a given name.
// It returns a diagnostic error if more than one block of that name is found.
// If no block is found, it returns nil.
func findUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type == name {
			if found != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate \"" + name + "\" block",
					Detail:   "Only one \"" + name + "\" block is allowed.",
					Subject:  &block.DefRange,
				})
			}
			found = block
		}
	}

	return found, diags
}

// duplicateLabels reports every block of the given type whose first label
// repeats an earlier one.
func duplicateLabels(blocks hcl.Blocks, typ string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	seen := map[string]*hcl.Block{}
	for _, block := range blocks.OfType(typ) {
		label := block.Labels[0]
		if prev, ok := seen[label]; ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate " + typ + " block",
				Detail:   "A " + typ + " named \"" + label + "\" was already declared at " + prev.DefRange.String() + ".",
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[label] = block
	}
	return diags
}
