//go:build !windows

package executor

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/specialistvlad/ripplego/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessInvoker_ExitCodeAndOutput(t *testing.T) {
	s := testutil.NewSolution(t.TempDir(), "A")
	s.Root = t.TempDir()
	s.Build.Command = `echo "building $RIPPLE_SOLUTION"; echo oops >&2; exit 3`

	code, out, err := NewProcessInvoker(nil).Invoke(context.Background(), s, Flags{})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Contains(t, out, "building A")
	assert.Contains(t, out, "oops")
}

func TestProcessInvoker_VerboseEchoesToConsole(t *testing.T) {
	s := testutil.NewSolution(t.TempDir(), "A")
	s.Root = t.TempDir()
	s.Build.Command = "echo compiled"

	var console bytes.Buffer
	code, out, err := NewProcessInvoker(&console).Invoke(context.Background(), s, Flags{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "compiled\n", out)
	assert.Equal(t, "compiled\n", console.String())
}

func TestProcessInvoker_QuietDoesNotEcho(t *testing.T) {
	s := testutil.NewSolution(t.TempDir(), "A")
	s.Root = t.TempDir()
	s.Build.Command = "echo compiled"

	var console bytes.Buffer
	_, out, err := NewProcessInvoker(&console).Invoke(context.Background(), s, Flags{})
	require.NoError(t, err)
	assert.Equal(t, "compiled\n", out)
	assert.Empty(t, console.String())
}

func TestProcessInvoker_FastCommand(t *testing.T) {
	s := testutil.NewSolution(t.TempDir(), "A")
	s.Root = t.TempDir()
	s.Build.Command = "echo full"
	s.Build.FastCommand = `echo "fast $RIPPLE_FAST"`

	_, out, err := NewProcessInvoker(nil).Invoke(context.Background(), s, Flags{Fast: true})
	require.NoError(t, err)
	assert.Equal(t, "fast 1\n", out)

	s.Build.FastCommand = ""
	_, out, err = NewProcessInvoker(nil).Invoke(context.Background(), s, Flags{Fast: true})
	require.NoError(t, err)
	assert.Equal(t, "full\n", out)
}

func TestProcessInvoker_Timeout(t *testing.T) {
	s := testutil.NewSolution(t.TempDir(), "A")
	s.Root = t.TempDir()
	s.Build.Command = "sleep 5"
	s.Build.Timeout = 100 * time.Millisecond

	start := time.Now()
	code, _, err := NewProcessInvoker(nil).Invoke(context.Background(), s, Flags{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Equal(t, -1, code)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestProcessInvoker_MissingCommand(t *testing.T) {
	s := testutil.NewSolution(t.TempDir(), "A")
	s.Build.Command = ""

	_, _, err := NewProcessInvoker(nil).Invoke(context.Background(), s, Flags{})
	assert.ErrorContains(t, err, "no build command")
}
