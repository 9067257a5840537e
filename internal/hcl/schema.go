package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// FileName is the name of the workspace file.
const FileName = "ripple.hcl"

// rootSchema lists the top-level blocks of a workspace file. Solution blocks
// are read in source order: that order is the ripple order.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "defaults"},
		{Type: "solution", LabelNames: []string{"name"}},
	},
}

// defaultsBlock is the `defaults` block, applied to every solution that does
// not override the value in its own file.
type defaultsBlock struct {
	PackagesDir  string `hcl:"packages_dir,optional"`
	ArtifactsDir string `hcl:"artifacts_dir,optional"`
	BuildCommand string `hcl:"build_command,optional"`
	FastCommand  string `hcl:"fast_command,optional"`
}

// solutionBlock is the body of a `solution "<name>"` block.
type solutionBlock struct {
	// Path is the solution root. Relative paths are resolved against the
	// workspace directory; empty means the directory named after the
	// solution next to the workspace file.
	Path string `hcl:"path,optional"`
}
