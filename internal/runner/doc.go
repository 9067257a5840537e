// Package runner drives a plan through an executor.
//
// A Runner moves through Idle, Running and then either Completed or
// Aborted. Steps run strictly one after another in plan order; the first
// failed step aborts the run and nothing after it is attempted. Files
// already written by earlier steps are left in place.
package runner
