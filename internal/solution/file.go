// Package solution reads the ripple.yaml file that describes one solution:
// where its package cache lives, how it is built, its projects and the
// packages it publishes.
package solution

import "time"

// FileName is the name of the solution file, found in the solution root.
const FileName = "ripple.yaml"

// File models ripple.yaml. Paths are relative to the solution root.
type File struct {
	Name         string       `yaml:"name"`
	PackagesDir  string       `yaml:"packages_dir,omitempty"`
	ArtifactsDir string       `yaml:"artifacts_dir,omitempty"`
	Build        BuildSection `yaml:"build,omitempty"`
	Projects     []ProjectRef `yaml:"projects"`
	Nugets       []NugetSpec  `yaml:"nugets,omitempty"`
}

// BuildSection describes how the solution is built.
type BuildSection struct {
	Command     string        `yaml:"command,omitempty"`
	FastCommand string        `yaml:"fast_command,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
}

// ProjectRef declares one project of the solution.
type ProjectRef struct {
	File            string `yaml:"file"`
	TargetFramework string `yaml:"target_framework,omitempty"`
	// Packages is the packages manifest. Defaults to packages.config next to
	// the project file.
	Packages string `yaml:"packages,omitempty"`
}

// NugetSpec declares a package the solution publishes.
type NugetSpec struct {
	Name       string   `yaml:"name"`
	Output     string   `yaml:"output"`
	Assemblies []string `yaml:"assemblies,omitempty"`
}
