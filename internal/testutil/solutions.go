package testutil

import (
	"path/filepath"

	"github.com/specialistvlad/ripplego/internal/model"
)

// NewSolution returns an in-memory solution rooted under root that publishes
// the given packages. Every published package builds into src/{package}/bin.
func NewSolution(root, name string, publishes ...string) *model.Solution {
	dir := filepath.Join(root, name)
	s := &model.Solution{
		Name:         name,
		Root:         dir,
		PackagesDir:  filepath.Join(dir, "packages"),
		ArtifactsDir: filepath.Join(dir, "artifacts"),
		Build:        model.BuildSettings{Command: "make"},
		Projects: []*model.Project{{
			Name: name,
			File: filepath.Join(dir, "src", name, name+".csproj"),
		}},
	}
	for _, pkg := range publishes {
		s.Nugets = append(s.Nugets, &model.PublishedNuget{
			Name:   pkg,
			Output: filepath.Join(dir, "src", pkg, "bin"),
		})
	}
	return s
}

// Depend adds a dependency on pkg@version to the first project of s.
// publisher may be nil for external packages.
func Depend(s *model.Solution, publisher *model.Solution, pkg, version string) *model.Dependency {
	dep := &model.Dependency{Name: pkg, Version: version, Publisher: publisher}
	s.Projects[0].Dependencies = append(s.Projects[0].Dependencies, dep)
	return dep
}
