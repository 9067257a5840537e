package executor

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/ripplego/internal/model"
)

// BuildFailure is returned when a build process exits non-zero or cannot be
// started at all.
type BuildFailure struct {
	Solution string
	ExitCode int
	// Output is everything the process wrote to stdout and stderr.
	Output string
	Err    error
}

func (e *BuildFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("build of %s failed: %v", e.Solution, e.Err)
	}
	return fmt.Sprintf("build of %s failed with exit code %d", e.Solution, e.ExitCode)
}

func (e *BuildFailure) Unwrap() error {
	return e.Err
}

// Details returns the error message followed by the captured build output.
func (e *BuildFailure) Details() string {
	out := strings.TrimRight(e.Output, "\n")
	if out == "" {
		return e.Error()
	}
	return e.Error() + "\n" + out
}

// PropagationFailure is returned when the assemblies of a package cannot be
// found in its publisher or cannot be copied into the target cache.
type PropagationFailure struct {
	Dependency   *model.Dependency
	Target string
	// ExpectedPath is where the artifacts were looked for, or the file that
	// could not be written.
	ExpectedPath string
	Err          error
}

func (e *PropagationFailure) Error() string {
	msg := fmt.Sprintf("cannot move %s into %s", e.Dependency, e.Target)
	if e.ExpectedPath != "" {
		msg += fmt.Sprintf(" (%s)", e.ExpectedPath)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *PropagationFailure) Unwrap() error {
	return e.Err
}
