// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Workspace, the root container loaded from ripple.hcl.
//
// Why keep references instead of full solutions?
//
// The workspace file only declares the order of the chain and where each
// solution lives. The details of a solution (build commands, projects,
// published nugets) belong to that solution's own ripple.yaml and are read
// during discovery. Keeping the two apart lets a solution be moved between
// workspaces without editing it.
package model

// Defaults are workspace-wide fallbacks applied to every solution that does
// not override them in its own ripple.yaml.
type Defaults struct {
	PackagesDir  string
	ArtifactsDir string
	BuildCommand string
	FastCommand  string
}

// SolutionRef is a `solution` block of the workspace file.
type SolutionRef struct {
	Name string
	// Path is the absolute root of the solution.
	Path string
}

// Workspace is the user's declared ripple chain, upstream first.
type Workspace struct {
	Dir           string
	Defaults      Defaults
	Solutions     []*SolutionRef
	FSInformation *FSInfo
}

// NewWorkspace creates an empty workspace rooted at dir.
func NewWorkspace(dir string) *Workspace {
	return &Workspace{
		Dir:       dir,
		Solutions: []*SolutionRef{},
	}
}

// Find returns the reference with the given name.
func (w *Workspace) Find(name string) (*SolutionRef, bool) {
	for _, s := range w.Solutions {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
