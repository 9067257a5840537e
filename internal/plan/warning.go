package plan

import (
	"fmt"

	"github.com/specialistvlad/ripplego/internal/model"
)

// WarningKind classifies a non-fatal finding.
type WarningKind string

const (
	// WarnPackageNotFound: an external dependency is missing from the
	// downstream package cache.
	WarnPackageNotFound WarningKind = "package_not_found"
	// WarnPublisherNotBuilt: a package is moved from a publisher that is not
	// rebuilt during this run, so the copied assemblies may be stale.
	WarnPublisherNotBuilt WarningKind = "publisher_not_built"
)

// Warning is reported in the run summary without failing the run.
type Warning struct {
	Kind       WarningKind
	Solution   string
	Dependency string
	Message    string
}

func (w Warning) String() string {
	return w.Message
}

// PackageProbe reports whether dep is present in the package cache of s.
type PackageProbe func(s *model.Solution, dep *model.Dependency) bool

// MissingExternal returns a warning for every external dependency of the
// chain that probe cannot find. Each (solution, package) pair is reported once.
func MissingExternal(chain []*model.Solution, probe PackageProbe) []Warning {
	var warnings []Warning
	for _, s := range chain {
		seen := map[string]bool{}
		for _, dep := range s.Dependencies() {
			if dep.IsPublishedBy(chain) || seen[dep.PackageFolderName()] {
				continue
			}
			seen[dep.PackageFolderName()] = true
			if probe(s, dep) {
				continue
			}
			warnings = append(warnings, Warning{
				Kind:       WarnPackageNotFound,
				Solution:   s.Name,
				Dependency: dep.String(),
				Message: fmt.Sprintf("package %s is referenced by %s but is neither built in this ripple nor present in %s",
					dep, s.Name, s.PackagesDir),
			})
		}
	}
	return warnings
}

// StaleMoves returns a warning for every move whose publisher has no build
// step in the plan.
func (p *Plan) StaleMoves() []Warning {
	var warnings []Warning
	for _, step := range p.steps {
		move, ok := step.(MoveNugetAssemblies)
		if !ok || p.Builds(move.Dependency.Publisher) {
			continue
		}
		warnings = append(warnings, Warning{
			Kind:       WarnPublisherNotBuilt,
			Solution:   move.Into.Name,
			Dependency: move.Dependency.String(),
			Message: fmt.Sprintf("package %s is copied into %s from %s, which is not rebuilt in this run",
				move.Dependency, move.Into.Name, move.Dependency.Publisher),
		})
	}
	return warnings
}
