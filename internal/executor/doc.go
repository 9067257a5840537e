// Package executor runs the steps of a ripple plan one at a time.
//
// A build step spawns the solution's build command and waits for it. A move
// step copies the assemblies of a freshly built package into the package
// cache of a downstream solution. Both report failure through typed errors
// (BuildFailure, PropagationFailure) rather than panics, so the runner can
// abort cleanly.
package executor
