package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/ripplego/internal/model"
	"github.com/specialistvlad/ripplego/internal/semver"
)

// MinSolutions is the smallest chain that can be rippled.
const MinSolutions = 2

// Plan is an immutable, ordered sequence of steps.
type Plan struct {
	steps     []Step
	solutions []*model.Solution
	skipBuild bool
}

// Build derives the step plan for solutions, given upstream first.
//
// The first solution is always built. Every later solution receives one move
// step per internal dependency, sorted by package name, followed by its own
// build step unless skipBuild is set. A dependency is internal when its
// publisher is one of solutions.
func Build(solutions []*model.Solution, skipBuild bool) (*Plan, error) {
	if len(solutions) < MinSolutions {
		return nil, &ConfigurationError{Message: fmt.Sprintf("cannot ripple with fewer than %d solutions", MinSolutions)}
	}
	for i, s := range solutions {
		if s == nil {
			return nil, &ConfigurationError{Message: fmt.Sprintf("solution at position %d is nil", i)}
		}
	}

	steps := []Step{BuildSolution{Solution: solutions[0]}}
	for _, s := range solutions[1:] {
		for _, dep := range InternalDependencies(s, solutions) {
			steps = append(steps, MoveNugetAssemblies{Dependency: dep, Into: s})
		}
		if !skipBuild {
			steps = append(steps, BuildSolution{Solution: s})
		}
	}

	return &Plan{
		steps:     steps,
		solutions: append([]*model.Solution(nil), solutions...),
		skipBuild: skipBuild,
	}, nil
}

// InternalDependencies returns the dependencies of s published by one of
// chain, one per package name, sorted ascending by name.
//
// When projects reference the same package at different versions the highest
// version wins. Names compare case-insensitively with an ordinal tiebreak so
// the order is stable across runs.
func InternalDependencies(s *model.Solution, chain []*model.Solution) []*model.Dependency {
	byName := map[string]*model.Dependency{}
	for _, dep := range s.Dependencies() {
		if !dep.IsPublishedBy(chain) || dep.Publisher == s {
			continue
		}
		key := strings.ToLower(dep.Name)
		if prev, ok := byName[key]; ok && semver.CompareRaw(prev.Version, dep.Version) >= 0 {
			continue
		}
		byName[key] = dep
	}

	deps := make([]*model.Dependency, 0, len(byName))
	for _, dep := range byName {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool {
		a, b := strings.ToLower(deps[i].Name), strings.ToLower(deps[j].Name)
		if a != b {
			return a < b
		}
		return deps[i].Name < deps[j].Name
	})
	return deps
}

// Steps returns a copy of the steps in execution order.
func (p *Plan) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Len is the number of steps.
func (p *Plan) Len() int {
	return len(p.steps)
}

// Solutions returns a copy of the chain the plan was built from.
func (p *Plan) Solutions() []*model.Solution {
	return append([]*model.Solution(nil), p.solutions...)
}

// SkipBuild reports whether the plan was built without downstream builds.
func (p *Plan) SkipBuild() bool {
	return p.skipBuild
}

// Builds reports whether the plan contains a build step for s.
func (p *Plan) Builds(s *model.Solution) bool {
	for _, step := range p.steps {
		if b, ok := step.(BuildSolution); ok && b.Solution == s {
			return true
		}
	}
	return false
}

// String renders the plan one step per line, numbered from 1.
func (p *Plan) String() string {
	var sb strings.Builder
	for i, step := range p.steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	return sb.String()
}
