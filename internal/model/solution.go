// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Solution, the unit that gets built and that receives
// freshly built packages from upstream.
//
// Why does a Solution own its package cache?
//
// Propagation writes assemblies into PackagesDir. Because the runner executes
// steps one after another and no two solutions share a cache folder, no
// locking is required: the only writer of a cache during a run is the step
// that targets that solution. Discovery rejects workspaces where two
// solutions resolve to the same PackagesDir.
package model

import (
	"path/filepath"
	"strings"
	"time"
)

// BuildSettings describes how a solution is built.
type BuildSettings struct {
	// Command is the full build (compile and test).
	Command string
	// FastCommand compiles without running tests. Optional.
	FastCommand string
	// Timeout bounds a single build invocation. Zero means no limit.
	Timeout time.Duration
}

// PublishedNuget is a package produced by a solution's build.
type PublishedNuget struct {
	Name string
	// Output is the absolute directory holding the built assemblies.
	Output string
	// Assemblies are glob patterns, relative to Output, selecting the files
	// that make up the package. Empty means the default patterns.
	Assemblies []string
}

// Solution is one buildable code base taking part in a ripple.
type Solution struct {
	Name          string
	Root          string
	PackagesDir   string
	ArtifactsDir  string
	Build         BuildSettings
	Projects      []*Project
	Nugets        []*PublishedNuget
	FSInformation *FSInfo
}

// String returns the solution name.
func (s *Solution) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.Name
}

// Publishes reports whether the solution publishes a package with the given
// name. Package names are compared case-insensitively, like NuGet ids.
func (s *Solution) Publishes(name string) (*PublishedNuget, bool) {
	for _, n := range s.Nugets {
		if strings.EqualFold(n.Name, name) {
			return n, true
		}
	}
	return nil, false
}

// Dependencies returns the package dependencies of every project, in project
// order. Duplicates across projects are kept.
func (s *Solution) Dependencies() []*Dependency {
	var deps []*Dependency
	for _, p := range s.Projects {
		deps = append(deps, p.Dependencies...)
	}
	return deps
}

// PackageFolder returns the folder in the package cache that holds the given
// dependency: {PackagesDir}/{name}.{version}.
func (s *Solution) PackageFolder(dep *Dependency) string {
	return filepath.Join(s.PackagesDir, dep.PackageFolderName())
}

// Project is a project file inside a solution.
type Project struct {
	Name            string
	File            string
	TargetFramework string
	PackagesFile    string
	Dependencies    []*Dependency
}
