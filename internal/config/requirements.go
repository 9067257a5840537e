package config

import "fmt"

// Requirements are the options of one ripple. They are resolved before the
// plan is built and do not change while it runs.
type Requirements struct {
	// From is the first solution of the ripple. Empty means the first
	// solution of the workspace.
	From string
	// To is the last solution of the ripple. Empty means the last solution
	// of the workspace.
	To string
	// Direct skips every solution between From and To.
	Direct bool
	// Fast compiles without running tests.
	Fast bool
	// SkipBuild only moves assemblies. The first solution is still built.
	SkipBuild bool
	// Verbose streams build output to the console.
	Verbose bool
}

// Validate checks combinations that can never produce a plan.
func (r Requirements) Validate() error {
	if r.From != "" && r.From == r.To {
		return fmt.Errorf("from and to both name %q: a ripple needs at least two solutions", r.From)
	}
	return nil
}
