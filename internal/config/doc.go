// Package config defines the run options of a ripple and the interfaces
// (Loader, SolutionLoader) for reading the workspace and solution files.
//
// Concrete implementations of the interfaces live in separate packages: the
// workspace file is HCL (package hcl) and each solution file is YAML
// (package solution).
package config
