package config

import (
	"context"

	"github.com/specialistvlad/ripplego/internal/model"
)

// Loader is the interface for a format-specific workspace loader.
type Loader interface {
	// Load finds the workspace file at or above path and reads the ordered
	// list of solution references from it.
	Load(ctx context.Context, path string) (*model.Workspace, error)
}

// SolutionLoader reads the description of one solution.
type SolutionLoader interface {
	LoadSolution(ctx context.Context, ref *model.SolutionRef, defaults model.Defaults) (*model.Solution, error)
}
