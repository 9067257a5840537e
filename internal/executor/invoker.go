package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/specialistvlad/ripplego/internal/ctxlog"
	"github.com/specialistvlad/ripplego/internal/model"
)

// waitDelay bounds how long Wait keeps reading output after the build is
// killed, in case a grandchild process still holds the pipes.
const waitDelay = 10 * time.Second

// Flags are the run options that change how a build is invoked.
type Flags struct {
	// Fast compiles without running tests.
	Fast bool
	// Verbose streams build output to the console as it is produced.
	Verbose bool
}

// BuildInvoker runs the build of one solution and reports how it exited.
// err is non-nil only when the build could not be run at all.
type BuildInvoker interface {
	Invoke(ctx context.Context, s *model.Solution, flags Flags) (exitCode int, output string, err error)
}

// ProcessInvoker runs build commands through the platform shell in the
// solution root.
type ProcessInvoker struct {
	console io.Writer
}

// NewProcessInvoker returns an invoker that echoes verbose output to console.
func NewProcessInvoker(console io.Writer) *ProcessInvoker {
	if console == nil {
		console = io.Discard
	}
	return &ProcessInvoker{console: console}
}

// Command returns the command line used to build s.
func Command(ctx context.Context, s *model.Solution, flags Flags) string {
	if !flags.Fast {
		return s.Build.Command
	}
	if s.Build.FastCommand != "" {
		return s.Build.FastCommand
	}
	ctxlog.FromContext(ctx).Warn("No fast build command, running the full build.", "solution", s.Name)
	return s.Build.Command
}

// Invoke runs the build and waits for it to exit.
func (p *ProcessInvoker) Invoke(ctx context.Context, s *model.Solution, flags Flags) (int, string, error) {
	logger := ctxlog.FromContext(ctx)

	command := Command(ctx, s, flags)
	if command == "" {
		return -1, "", fmt.Errorf("solution %s has no build command", s.Name)
	}

	if s.Build.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Build.Timeout)
		defer cancel()
	}

	cmd := shellCommand(ctx, command)
	cmd.Dir = s.Root
	cmd.Env = append(os.Environ(), "RIPPLE_SOLUTION="+s.Name)
	if flags.Fast {
		cmd.Env = append(cmd.Env, "RIPPLE_FAST=1")
	}
	cmd.WaitDelay = waitDelay
	configureProcess(cmd)

	captured := &lockedBuffer{}
	var out io.Writer = captured
	if flags.Verbose {
		out = io.MultiWriter(captured, p.console)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	logger.Debug("Starting build process.", "command", command, "dir", cmd.Dir)
	start := time.Now()
	err := cmd.Run()
	logger.Debug("Build process exited.", "duration", time.Since(start))

	if err == nil {
		return 0, captured.String(), nil
	}
	if ctx.Err() != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return -1, captured.String(), fmt.Errorf("build timed out after %s", s.Build.Timeout)
		}
		return -1, captured.String(), fmt.Errorf("build cancelled: %w", ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), captured.String(), nil
	}
	return -1, captured.String(), fmt.Errorf("start build: %w", err)
}

// lockedBuffer guards a buffer shared by stdout and stderr copiers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// InvokerFunc adapts a function to the BuildInvoker interface.
type InvokerFunc func(ctx context.Context, s *model.Solution, flags Flags) (int, string, error)

func (f InvokerFunc) Invoke(ctx context.Context, s *model.Solution, flags Flags) (int, string, error) {
	return f(ctx, s, flags)
}
