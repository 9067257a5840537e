package plan

import (
	"fmt"

	"github.com/specialistvlad/ripplego/internal/model"
)

// Kind identifies a step variant.
type Kind string

const (
	KindBuild Kind = "build"
	KindMove  Kind = "move"
)

// Step is one unit of work in a plan. The concrete types are BuildSolution
// and MoveNugetAssemblies.
type Step interface {
	Kind() Kind
	// Target is the solution the step acts on: the one built, or the one
	// receiving assemblies.
	Target() *model.Solution
	String() string
}

// BuildSolution runs the build of one solution.
type BuildSolution struct {
	Solution *model.Solution
}

func (s BuildSolution) Kind() Kind              { return KindBuild }
func (s BuildSolution) Target() *model.Solution { return s.Solution }

func (s BuildSolution) String() string {
	return fmt.Sprintf("Build(%s)", s.Solution)
}

// MoveNugetAssemblies copies the assemblies of a package built by its
// publisher into the package cache of Into.
type MoveNugetAssemblies struct {
	Dependency *model.Dependency
	Into       *model.Solution
}

func (s MoveNugetAssemblies) Kind() Kind              { return KindMove }
func (s MoveNugetAssemblies) Target() *model.Solution { return s.Into }

func (s MoveNugetAssemblies) String() string {
	return fmt.Sprintf("Move(%s: %s->%s)", s.Dependency.Name, s.Dependency.Publisher, s.Into)
}
