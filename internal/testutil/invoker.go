package testutil

import (
	"context"
	"sync"

	"github.com/specialistvlad/ripplego/internal/model"
)

// BuildCall records one build invocation.
type BuildCall struct {
	Solution string
	Fast     bool
	Verbose  bool
}

// FakeInvoker stands in for the build process. Builds exit 0 unless
// ExitCodes says otherwise. Wrap Record in an executor.InvokerFunc to use it.
type FakeInvoker struct {
	ExitCodes map[string]int
	Outputs   map[string]string
	// OnBuild, when set, runs inside every invocation, e.g. to write the
	// files a real build would produce.
	OnBuild func(s *model.Solution)

	mu    sync.Mutex
	calls []BuildCall
}

// Record notes an invocation and returns the configured outcome.
func (f *FakeInvoker) Record(ctx context.Context, s *model.Solution, fast, verbose bool) (int, string, error) {
	if err := ctx.Err(); err != nil {
		return -1, "", err
	}
	f.mu.Lock()
	f.calls = append(f.calls, BuildCall{Solution: s.Name, Fast: fast, Verbose: verbose})
	f.mu.Unlock()

	if f.OnBuild != nil {
		f.OnBuild(s)
	}
	return f.ExitCodes[s.Name], f.Outputs[s.Name], nil
}

// Calls returns the invocations so far, in order.
func (f *FakeInvoker) Calls() []BuildCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]BuildCall(nil), f.calls...)
}

// Built returns the names of the solutions built so far, in order.
func (f *FakeInvoker) Built() []string {
	var names []string
	for _, c := range f.Calls() {
		names = append(names, c.Solution)
	}
	return names
}
