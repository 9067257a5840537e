package plan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/ripplego/internal/model"
	"github.com/specialistvlad/ripplego/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// abc builds the chain A -> B -> C: B uses A.Core, C uses A.Core and B.Core.
func abc(t *testing.T) []*model.Solution {
	t.Helper()
	root := t.TempDir()
	a := testutil.NewSolution(root, "A", "A.Core")
	b := testutil.NewSolution(root, "B", "B.Core")
	c := testutil.NewSolution(root, "C")
	testutil.Depend(b, a, "A.Core", "1.0.0")
	// declared out of order on purpose
	testutil.Depend(c, b, "B.Core", "2.0.0")
	testutil.Depend(c, a, "A.Core", "1.0.0")
	return []*model.Solution{a, b, c}
}

func describe(p *Plan) []string {
	var out []string
	for _, s := range p.Steps() {
		out = append(out, s.String())
	}
	return out
}

func TestBuild_RequiresTwoSolutions(t *testing.T) {
	root := t.TempDir()
	for _, solutions := range [][]*model.Solution{
		nil,
		{},
		{testutil.NewSolution(root, "A")},
	} {
		p, err := Build(solutions, false)
		require.Error(t, err)
		assert.Nil(t, p)

		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, cfgErr.Error(), "cannot ripple with fewer than 2 solutions")
	}
}

func TestBuild_ABC(t *testing.T) {
	p, err := Build(abc(t), false)
	require.NoError(t, err)

	want := []string{
		"Build(A)",
		"Move(A.Core: A->B)",
		"Build(B)",
		"Move(A.Core: A->C)",
		"Move(B.Core: B->C)",
		"Build(C)",
	}
	if diff := cmp.Diff(want, describe(p)); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 6, p.Len())
}

func TestBuild_ABCSkipBuild(t *testing.T) {
	p, err := Build(abc(t), true)
	require.NoError(t, err)

	want := []string{
		"Build(A)",
		"Move(A.Core: A->B)",
		"Move(A.Core: A->C)",
		"Move(B.Core: B->C)",
	}
	if diff := cmp.Diff(want, describe(p)); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, p.SkipBuild())
}

func TestBuild_StepCountFormula(t *testing.T) {
	solutions := abc(t)
	internal := 0
	for _, s := range solutions[1:] {
		internal += len(InternalDependencies(s, solutions))
	}
	n := len(solutions)

	p, err := Build(solutions, false)
	require.NoError(t, err)
	assert.Equal(t, 1+internal+(n-1), p.Len())

	p, err = Build(solutions, true)
	require.NoError(t, err)
	assert.Equal(t, 1+internal, p.Len())
}

func TestBuild_FirstStepBuildsFirstSolution(t *testing.T) {
	solutions := abc(t)
	for _, skip := range []bool{false, true} {
		p, err := Build(solutions, skip)
		require.NoError(t, err)
		first, ok := p.Steps()[0].(BuildSolution)
		require.True(t, ok)
		assert.Same(t, solutions[0], first.Solution)
	}
}

func TestBuild_MovesSortedAndBeforeBuild(t *testing.T) {
	root := t.TempDir()
	a := testutil.NewSolution(root, "A", "zeta", "Alpha", "beta")
	b := testutil.NewSolution(root, "B")
	testutil.Depend(b, a, "zeta", "1.0.0")
	testutil.Depend(b, a, "beta", "1.0.0")
	testutil.Depend(b, a, "Alpha", "1.0.0")

	p, err := Build([]*model.Solution{a, b}, false)
	require.NoError(t, err)

	want := []string{
		"Build(A)",
		"Move(Alpha: A->B)",
		"Move(beta: A->B)",
		"Move(zeta: A->B)",
		"Build(B)",
	}
	if diff := cmp.Diff(want, describe(p)); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	solutions := abc(t)
	p1, err := Build(solutions, false)
	require.NoError(t, err)
	p2, err := Build(solutions, false)
	require.NoError(t, err)

	require.Equal(t, p1.Len(), p2.Len())
	for i := range p1.Steps() {
		s1, s2 := p1.Steps()[i], p2.Steps()[i]
		assert.Equal(t, s1.Kind(), s2.Kind())
		assert.Same(t, s1.Target(), s2.Target())
		assert.Equal(t, s1.String(), s2.String())
	}
}

func TestBuild_DoesNotReorderOrMutateInput(t *testing.T) {
	solutions := abc(t)
	reversed := []*model.Solution{solutions[2], solutions[1], solutions[0]}

	p, err := Build(reversed, false)
	require.NoError(t, err)
	assert.Equal(t, "Build(C)", p.Steps()[0].String())
	assert.Equal(t, "C", reversed[0].Name)

	steps := p.Steps()
	steps[0] = nil
	assert.NotNil(t, p.Steps()[0])
}

func TestBuild_ExternalDependencyIgnored(t *testing.T) {
	root := t.TempDir()
	a := testutil.NewSolution(root, "A", "A.Core")
	b := testutil.NewSolution(root, "B")
	outside := testutil.NewSolution(root, "Outside", "Outside.Core")
	testutil.Depend(b, a, "A.Core", "1.0.0")
	testutil.Depend(b, nil, "Newtonsoft.Json", "13.0.1")
	testutil.Depend(b, outside, "Outside.Core", "1.0.0")

	p, err := Build([]*model.Solution{a, b}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Build(A)", "Move(A.Core: A->B)", "Build(B)"}, describe(p))
}

func TestInternalDependencies_DedupeKeepsHighestVersion(t *testing.T) {
	root := t.TempDir()
	a := testutil.NewSolution(root, "A", "A.Core")
	b := testutil.NewSolution(root, "B")
	testutil.Depend(b, a, "A.Core", "1.2.0")
	testutil.Depend(b, a, "a.core", "1.10.0")
	testutil.Depend(b, a, "A.Core", "1.9.0")

	deps := InternalDependencies(b, []*model.Solution{a, b})
	require.Len(t, deps, 1)
	assert.Equal(t, "1.10.0", deps[0].Version)
}

func TestMissingExternal(t *testing.T) {
	root := t.TempDir()
	a := testutil.NewSolution(root, "A", "A.Core")
	b := testutil.NewSolution(root, "B")
	testutil.Depend(b, a, "A.Core", "1.0.0")
	testutil.Depend(b, nil, "Present", "1.0.0")
	testutil.Depend(b, nil, "Missing", "2.0.0")
	testutil.Depend(b, nil, "Missing", "2.0.0")

	probe := func(_ *model.Solution, dep *model.Dependency) bool {
		return dep.Name == "Present"
	}
	warnings := MissingExternal([]*model.Solution{a, b}, probe)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnPackageNotFound, warnings[0].Kind)
	assert.Equal(t, "B", warnings[0].Solution)
	assert.Equal(t, "Missing 2.0.0", warnings[0].Dependency)
}

func TestStaleMoves(t *testing.T) {
	solutions := abc(t)

	p, err := Build(solutions, false)
	require.NoError(t, err)
	assert.Empty(t, p.StaleMoves())

	p, err = Build(solutions, true)
	require.NoError(t, err)
	warnings := p.StaleMoves()
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnPublisherNotBuilt, warnings[0].Kind)
	assert.Equal(t, "C", warnings[0].Solution)
	assert.Equal(t, "B.Core 2.0.0", warnings[0].Dependency)
}
