// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Dependency, a reference from a project to a package.
//
// The version is kept as the raw string found in the packages manifest. It is
// only interpreted where versions are compared (artifact lookup and dedupe),
// through the semver package.
package model

import "fmt"

// Dependency is a package reference declared by a project.
type Dependency struct {
	Name    string
	Version string
	// Publisher is the workspace solution that produces this package, or nil
	// for packages that come from an external feed.
	Publisher *Solution
}

// String renders the dependency as "name version".
func (d *Dependency) String() string {
	if d.Version == "" {
		return d.Name
	}
	return fmt.Sprintf("%s %s", d.Name, d.Version)
}

// PackageFolderName returns the cache folder name, "{name}.{version}".
func (d *Dependency) PackageFolderName() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + "." + d.Version
}

// IsPublishedBy reports whether the dependency's publisher is one of the
// given solutions.
func (d *Dependency) IsPublishedBy(solutions []*Solution) bool {
	if d.Publisher == nil {
		return false
	}
	for _, s := range solutions {
		if s == d.Publisher {
			return true
		}
	}
	return false
}
