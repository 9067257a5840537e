// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags into the application's internal configuration.
//
// Exit codes: 0 when the ripple completed or the plan was printed, 1 when a
// step failed or the run was cancelled, 2 for usage and configuration errors.
package cli
