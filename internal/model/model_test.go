package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolution_Publishes(t *testing.T) {
	s := &Solution{Name: "FubuCore", Nugets: []*PublishedNuget{{Name: "FubuCore"}, {Name: "FubuCore.Testing"}}}

	n, ok := s.Publishes("fubucore.testing")
	require.True(t, ok)
	assert.Equal(t, "FubuCore.Testing", n.Name)

	_, ok = s.Publishes("Bottles")
	assert.False(t, ok)
}

func TestSolution_DependenciesKeepProjectOrder(t *testing.T) {
	a := &Dependency{Name: "A", Version: "1.0"}
	b := &Dependency{Name: "B", Version: "1.0"}
	s := &Solution{Projects: []*Project{
		{Name: "P1", Dependencies: []*Dependency{b}},
		{Name: "P2", Dependencies: []*Dependency{a, b}},
	}}

	assert.Equal(t, []*Dependency{b, a, b}, s.Dependencies())
}

func TestSolution_PackageFolder(t *testing.T) {
	s := &Solution{PackagesDir: filepath.Join("root", "packages")}
	dep := &Dependency{Name: "FubuCore", Version: "1.2.0.45"}

	assert.Equal(t, filepath.Join("root", "packages", "FubuCore.1.2.0.45"), s.PackageFolder(dep))
	assert.Equal(t, "FubuCore 1.2.0.45", dep.String())
	assert.Equal(t, "Bottles", (&Dependency{Name: "Bottles"}).PackageFolderName())
}

func TestDependency_IsPublishedBy(t *testing.T) {
	fubu := &Solution{Name: "FubuCore"}
	bottles := &Solution{Name: "Bottles"}

	assert.True(t, (&Dependency{Publisher: fubu}).IsPublishedBy([]*Solution{bottles, fubu}))
	assert.False(t, (&Dependency{Publisher: fubu}).IsPublishedBy([]*Solution{bottles}))
	assert.False(t, (&Dependency{}).IsPublishedBy([]*Solution{fubu}))
}

func TestWorkspace_Find(t *testing.T) {
	w := NewWorkspace("/ws")
	w.Solutions = append(w.Solutions, &SolutionRef{Name: "FubuCore", Path: "/ws/FubuCore"})

	ref, ok := w.Find("FubuCore")
	require.True(t, ok)
	assert.Equal(t, "/ws/FubuCore", ref.Path)

	_, ok = w.Find("Bottles")
	assert.False(t, ok)
}

func TestFSInfo_Dir(t *testing.T) {
	info := NewFSInfo(filepath.Join("ws", "ripple.hcl"))
	assert.Equal(t, "ws", info.Dir())
}
