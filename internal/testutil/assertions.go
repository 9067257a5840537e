package testutil

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertStepRan checks captured text log output to confirm that a step
// finished. step is the rendered step, e.g. "Build(A)".
func AssertStepRan(t *testing.T, logOutput, step string) {
	t.Helper()

	plain := fmt.Sprintf("step=%s ", step)
	quoted := fmt.Sprintf("step=%s ", strconv.Quote(step))
	require.True(t,
		strings.Contains(logOutput, plain) || strings.Contains(logOutput, quoted),
		"expected log output for step %q was not found in logs", step,
	)
}
