package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/ripplego/internal/artifact"
	"github.com/specialistvlad/ripplego/internal/model"
	"github.com/specialistvlad/ripplego/internal/plan"
	"github.com/specialistvlad/ripplego/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeExecutor(fake *testutil.FakeInvoker, flags Flags) *Executor {
	invoke := InvokerFunc(func(ctx context.Context, s *model.Solution, f Flags) (int, string, error) {
		return fake.Record(ctx, s, f.Fast, f.Verbose)
	})
	return New(invoke, artifact.NewLocator(), flags)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExecute_BuildSuccess(t *testing.T) {
	a := testutil.NewSolution(t.TempDir(), "A")
	fake := &testutil.FakeInvoker{Outputs: map[string]string{"A": "ok"}}

	res := fakeExecutor(fake, Flags{Fast: true}).Execute(context.Background(), plan.BuildSolution{Solution: a})
	require.NoError(t, res.Err)
	assert.Equal(t, "ok", res.Output)
	assert.Equal(t, []testutil.BuildCall{{Solution: "A", Fast: true}}, fake.Calls())
}

func TestExecute_BuildFailure(t *testing.T) {
	a := testutil.NewSolution(t.TempDir(), "A")
	fake := &testutil.FakeInvoker{
		ExitCodes: map[string]int{"A": 3},
		Outputs:   map[string]string{"A": "error CS1002: ; expected"},
	}

	res := fakeExecutor(fake, Flags{}).Execute(context.Background(), plan.BuildSolution{Solution: a})
	require.Error(t, res.Err)

	var bf *BuildFailure
	require.True(t, errors.As(res.Err, &bf))
	assert.Equal(t, "A", bf.Solution)
	assert.Equal(t, 3, bf.ExitCode)
	assert.Equal(t, "error CS1002: ; expected", bf.Output)
	assert.Contains(t, bf.Details(), "error CS1002")
}

func TestExecute_MoveFromBuildOutput(t *testing.T) {
	root := t.TempDir()
	a := testutil.NewSolution(root, "A", "A.Core")
	b := testutil.NewSolution(root, "B")
	dep := testutil.Depend(b, a, "A.Core", "1.0.0")
	writeFile(t, filepath.Join(a.Nugets[0].Output, "A.Core.dll"), "fresh")

	// the cache already has two framework folders
	libDir := filepath.Join(b.PackagesDir, "A.Core.1.0.0", "lib")
	writeFile(t, filepath.Join(libDir, "net48", "A.Core.dll"), "stale")
	require.NoError(t, os.MkdirAll(filepath.Join(libDir, "net472"), 0o755))

	res := fakeExecutor(&testutil.FakeInvoker{}, Flags{}).Execute(context.Background(), plan.MoveNugetAssemblies{Dependency: dep, Into: b})
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Files)

	for _, fw := range []string{"net48", "net472"} {
		got, err := os.ReadFile(filepath.Join(libDir, fw, "A.Core.dll"))
		require.NoError(t, err)
		assert.Equal(t, "fresh", string(got))
	}
}

func TestExecute_MoveIntoEmptyCache(t *testing.T) {
	root := t.TempDir()
	a := testutil.NewSolution(root, "A", "A.Core")
	b := testutil.NewSolution(root, "B")
	dep := testutil.Depend(b, a, "A.Core", "1.0.0")
	writeFile(t, filepath.Join(a.Nugets[0].Output, "A.Core.dll"), "fresh")

	res := fakeExecutor(&testutil.FakeInvoker{}, Flags{}).Execute(context.Background(), plan.MoveNugetAssemblies{Dependency: dep, Into: b})
	require.NoError(t, res.Err)

	got, err := os.ReadFile(filepath.Join(b.PackagesDir, "A.Core.1.0.0", "lib", "A.Core.dll"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))
}

func TestExecute_MoveMissingArtifact(t *testing.T) {
	root := t.TempDir()
	a := testutil.NewSolution(root, "A", "A.Core")
	b := testutil.NewSolution(root, "B")
	dep := testutil.Depend(b, a, "A.Core", "1.0.0")

	res := fakeExecutor(&testutil.FakeInvoker{}, Flags{}).Execute(context.Background(), plan.MoveNugetAssemblies{Dependency: dep, Into: b})
	require.Error(t, res.Err)

	var pf *PropagationFailure
	require.True(t, errors.As(res.Err, &pf))
	assert.Same(t, dep, pf.Dependency)
	assert.Equal(t, "B", pf.Target)
	assert.Equal(t, a.Nugets[0].Output, pf.ExpectedPath)
	assert.ErrorIs(t, res.Err, artifact.ErrNotFound)
	assert.NoDirExists(t, b.PackagesDir)
}

func TestExecute_MoveWriteFailureNamesDestination(t *testing.T) {
	root := t.TempDir()
	a := testutil.NewSolution(root, "A", "A.Core")
	b := testutil.NewSolution(root, "B")
	dep := testutil.Depend(b, a, "A.Core", "1.0.0")
	src := filepath.Join(a.Nugets[0].Output, "A.Core.dll")
	writeFile(t, src, "fresh")

	// a directory squats on the file the move wants to write
	dst := filepath.Join(b.PackagesDir, "A.Core.1.0.0", "lib", "net48", "A.Core.dll")
	writeFile(t, filepath.Join(dst, "keep"), "x")

	res := fakeExecutor(&testutil.FakeInvoker{}, Flags{}).Execute(context.Background(), plan.MoveNugetAssemblies{Dependency: dep, Into: b})

	var pf *PropagationFailure
	require.True(t, errors.As(res.Err, &pf))
	assert.Equal(t, dst, pf.ExpectedPath)
	assert.Contains(t, pf.Err.Error(), src)
}

func TestExecute_BuildInterruptedIsNotABuildFailure(t *testing.T) {
	a := testutil.NewSolution(t.TempDir(), "A")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	invoke := InvokerFunc(func(ctx context.Context, s *model.Solution, f Flags) (int, string, error) {
		cancel()
		return -1, "half a build", errors.New("build cancelled: context canceled")
	})
	res := New(invoke, artifact.NewLocator(), Flags{}).Execute(ctx, plan.BuildSolution{Solution: a})

	require.ErrorIs(t, res.Err, context.Canceled)
	var bf *BuildFailure
	assert.False(t, errors.As(res.Err, &bf))
	assert.Equal(t, "half a build", res.Output)
}

func TestExecute_CancelledBeforeStart(t *testing.T) {
	a := testutil.NewSolution(t.TempDir(), "A")
	fake := &testutil.FakeInvoker{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := fakeExecutor(fake, Flags{}).Execute(ctx, plan.BuildSolution{Solution: a})
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Empty(t, fake.Calls())
}

func TestDestinations(t *testing.T) {
	lib := filepath.Join("pkg", "lib")
	assert.Equal(t,
		[]string{filepath.Join(lib, "net48", "A.dll")},
		destinations(lib, []string{"net472"}, artifact.File{Rel: "A.dll", Framework: "net48"}))
	assert.Equal(t,
		[]string{filepath.Join(lib, "A.dll")},
		destinations(lib, nil, artifact.File{Rel: "A.dll"}))
	assert.Equal(t,
		[]string{filepath.Join(lib, "net472", "A.dll"), filepath.Join(lib, "net48", "A.dll")},
		destinations(lib, []string{"net472", "net48"}, artifact.File{Rel: "A.dll"}))
}
