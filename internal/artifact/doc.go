// Package artifact finds the built assemblies of a package and answers
// whether a package is already present in a solution's package cache.
//
// A published package is looked up in two places, in order: the build output
// directory its publisher declares, then any {name}.{version}.nupkg file in
// the publisher's artifacts directory. Versions match semantically, so a
// dependency on 1.0 is satisfied by 1.0.0.
package artifact
