//go:build !windows

package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/ripplego/internal/config"
	"github.com/specialistvlad/ripplego/internal/executor"
	"github.com/specialistvlad/ripplego/internal/model"
	"github.com/specialistvlad/ripplego/internal/plan"
	"github.com/specialistvlad/ripplego/internal/runner"
	"github.com/specialistvlad/ripplego/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abcWorkspace(t *testing.T, overrides ...testutil.FixtureSolution) string {
	t.Helper()
	solutions := []testutil.FixtureSolution{
		{Name: "A", Publishes: []string{"A.Core"}},
		{Name: "B", Publishes: []string{"B.Core"}, DependsOn: map[string]string{"A.Core": "1.0.0"}},
		{Name: "C", DependsOn: map[string]string{"A.Core": "1.0.0", "B.Core": "1.0.0"}},
	}
	for _, o := range overrides {
		for i := range solutions {
			if solutions[i].Name == o.Name {
				solutions[i] = o
			}
		}
	}
	return testutil.WriteWorkspace(t, solutions...)
}

func setupApp(t *testing.T, cfg Config, opts ...Option) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()
	cfg.LogLevel = "debug"
	c, err := NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	testutil.DumpOnFailure(t, "log output", logs)
	return NewApp(out, logs, c, opts...), out, logs
}

func TestRun_LocalCompleted(t *testing.T) {
	dir := abcWorkspace(t)
	a, out, logs := setupApp(t, Config{WorkspacePath: dir})

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, runner.Completed, res.State)
	assert.Equal(t, 6, res.Executed)
	assert.Contains(t, out.String(), "Finished step 6 of 6")
	assert.Contains(t, logs.String(), "Finished step 1 of 6")
	for _, step := range []string{"Build(A)", "Move(A.Core: A->B)", "Build(B)", "Move(A.Core: A->C)", "Move(B.Core: B->C)", "Build(C)"} {
		testutil.AssertStepRan(t, logs.String(), step)
	}

	for pkg, publisher := range map[string]string{"A.Core": "A", "B.Core": "B"} {
		got, err := os.ReadFile(filepath.Join(dir, "C", "packages", pkg+".1.0.0", "lib", pkg+".dll"))
		require.NoError(t, err)
		assert.Equal(t, publisher+"\n", string(got))
	}
}

func TestRun_PlanCommandDoesNotBuild(t *testing.T) {
	dir := abcWorkspace(t)
	a, out, _ := setupApp(t, Config{Command: CommandPlan, WorkspacePath: dir, Requirements: config.Requirements{SkipBuild: true}})

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, res)

	assert.Contains(t, out.String(), "Ripple A -> B -> C: 4 steps")
	assert.Contains(t, out.String(), "1. Build(A)\n2. Move(A.Core: A->B)\n3. Move(A.Core: A->C)\n4. Move(B.Core: B->C)\n")
	assert.Contains(t, out.String(), "warning: package B.Core 1.0.0 is copied into C from B, which is not rebuilt in this run")
	assert.NoDirExists(t, filepath.Join(dir, "A", "src", "A.Core", "bin"))
}

func TestRun_BuildFailureAborts(t *testing.T) {
	dir := abcWorkspace(t,
		testutil.FixtureSolution{Name: "B", Publishes: []string{"B.Core"}, DependsOn: map[string]string{"A.Core": "1.0.0"},
			BuildCommand: "echo 'error CS0103: broken'; exit 2"},
		testutil.FixtureSolution{Name: "C", DependsOn: map[string]string{"B.Core": "1.0.0"},
			BuildCommand: "touch built.txt"},
	)
	a, out, _ := setupApp(t, Config{WorkspacePath: dir})

	res, err := a.Run(context.Background())
	require.Error(t, err)

	var aborted *AbortedError
	require.True(t, errors.As(err, &aborted))
	assert.Equal(t, runner.Aborted, res.State)
	assert.Equal(t, 3, res.Failed.Index)

	var bf *executor.BuildFailure
	require.True(t, errors.As(err, &bf))
	assert.Equal(t, "B", bf.Solution)
	assert.Equal(t, 2, bf.ExitCode)
	assert.Contains(t, bf.Output, "error CS0103: broken")

	assert.Contains(t, out.String(), "error CS0103: broken")
	assert.NoFileExists(t, filepath.Join(dir, "C", "built.txt"))
}

func TestRun_ExternalPackageWarning(t *testing.T) {
	dir := abcWorkspace(t,
		testutil.FixtureSolution{Name: "B", Publishes: []string{"B.Core"},
			DependsOn: map[string]string{"A.Core": "1.0.0", "Newtonsoft.Json": "13.0.1"}},
	)
	a, out, _ := setupApp(t, Config{WorkspacePath: dir})

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, runner.Completed, res.State)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, plan.WarnPackageNotFound, res.Warnings[0].Kind)
	assert.Contains(t, out.String(), "Newtonsoft.Json 13.0.1")
}

func TestRun_ConfigurationErrors(t *testing.T) {
	single := testutil.WriteWorkspace(t, testutil.FixtureSolution{Name: "Only"})
	a, _, _ := setupApp(t, Config{WorkspacePath: single})
	_, err := a.Run(context.Background())
	var cfgErr *plan.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "cannot ripple with fewer than 2 solutions")

	a, _, _ = setupApp(t, Config{WorkspacePath: abcWorkspace(t), Requirements: config.Requirements{From: "Nope"}})
	_, err = a.Run(context.Background())
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), `unknown solution "Nope"`)
}

func TestRun_FastAndVerboseReachInvoker(t *testing.T) {
	dir := abcWorkspace(t)
	var seen []executor.Flags
	inv := executor.InvokerFunc(func(ctx context.Context, s *model.Solution, f executor.Flags) (int, string, error) {
		seen = append(seen, f)
		return executor.NewProcessInvoker(nil).Invoke(ctx, s, executor.Flags{})
	})
	a, _, _ := setupApp(t, Config{WorkspacePath: dir, Requirements: config.Requirements{Fast: true, Verbose: true}}, WithInvoker(inv))

	_, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, seen, 3)
	for _, f := range seen {
		assert.Equal(t, executor.Flags{Fast: true, Verbose: true}, f)
	}
}

func TestHandler(t *testing.T) {
	a, _, _ := setupApp(t, Config{WorkspacePath: "."})
	srv := httptest.NewServer(a.handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{WorkspacePath: "."})
	require.NoError(t, err)
	assert.Equal(t, CommandLocal, cfg.Command)

	_, err = NewConfig(Config{})
	assert.Error(t, err)
	_, err = NewConfig(Config{WorkspacePath: ".", Command: "enforce"})
	assert.ErrorContains(t, err, `unknown command "enforce"`)
	_, err = NewConfig(Config{WorkspacePath: ".", HealthcheckPort: 70000})
	assert.Error(t, err)
}
