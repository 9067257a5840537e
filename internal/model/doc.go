// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of a ripple workspace:
// the ordered chain of solutions, their projects and the package
// dependencies that tie them together.
//
// # Core Concepts
//
//   - Workspace: The root container loaded from ripple.hcl. It lists the
//     solutions taking part in a ripple, in the order the user declared them
//     (upstream first).
//
//   - Solution: One buildable code base. It owns a package cache folder that
//     no other solution writes to, a build command, and the list of nugets it
//     publishes.
//
//   - Project: A project inside a solution together with the package
//     dependencies read from its packages manifest.
//
//   - Dependency: A reference from a project to a named, versioned package.
//     When another solution of the workspace publishes that package, the
//     dependency carries a back-reference to it (the Publisher).
//
// Why a separate model package?
//
// The loaders (HCL for the workspace, YAML for each solution, XML for the
// packages manifests) all produce these structures, and the plan builder,
// executor and runner consume them without knowing where they came from.
// Once discovery has finished, a model is never mutated again for the rest of
// the run.
package model
