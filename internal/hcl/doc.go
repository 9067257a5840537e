// Package hcl provides the HCL implementation of config.Loader. It finds the
// workspace file, evaluates its expressions and translates its blocks into a
// model.Workspace.
package hcl
