package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FixtureSolution describes one solution written by WriteWorkspace.
type FixtureSolution struct {
	Name string
	// Publishes are package names built into src/<package>/bin.
	Publishes []string
	// DependsOn maps package names to versions for the packages.config of
	// the solution's single project.
	DependsOn map[string]string
	// BuildCommand overrides the generated build command, which writes
	// <package>.dll into the output folder of every published package.
	BuildCommand string
}

// WriteWorkspace lays out a workspace file and one directory per solution
// under a temp dir and returns the workspace dir.
func WriteWorkspace(t *testing.T, solutions ...FixtureSolution) string {
	t.Helper()
	dir := t.TempDir()

	var hcl strings.Builder
	hcl.WriteString("defaults {\n  packages_dir = \"packages\"\n}\n")
	for _, s := range solutions {
		fmt.Fprintf(&hcl, "\nsolution %q {}\n", s.Name)
		writeSolution(t, filepath.Join(dir, s.Name), s)
	}
	writeFile(t, filepath.Join(dir, "ripple.hcl"), hcl.String())
	return dir
}

func writeSolution(t *testing.T, root string, s FixtureSolution) {
	t.Helper()

	command := s.BuildCommand
	if command == "" {
		var parts []string
		for _, pkg := range s.Publishes {
			out := "src/" + pkg + "/bin"
			parts = append(parts, fmt.Sprintf("mkdir -p %s && echo %s > %s/%s.dll", out, s.Name, out, pkg))
		}
		command = strings.Join(parts, " && ")
		if command == "" {
			command = "true"
		}
	}

	var yml strings.Builder
	fmt.Fprintf(&yml, "name: %s\n", s.Name)
	fmt.Fprintf(&yml, "build:\n  command: %q\n", command)
	fmt.Fprintf(&yml, "projects:\n  - file: src/%s/%s.csproj\n    target_framework: net48\n", s.Name, s.Name)
	if len(s.Publishes) > 0 {
		yml.WriteString("nugets:\n")
		for _, pkg := range s.Publishes {
			fmt.Fprintf(&yml, "  - name: %s\n    output: src/%s/bin\n", pkg, pkg)
		}
	}
	writeFile(t, filepath.Join(root, "ripple.yaml"), yml.String())

	pkgs := make([]string, 0, len(s.DependsOn))
	for name := range s.DependsOn {
		pkgs = append(pkgs, name)
	}
	sort.Strings(pkgs)

	var xml strings.Builder
	xml.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<packages>\n")
	for _, name := range pkgs {
		fmt.Fprintf(&xml, "  <package id=%q version=%q targetFramework=\"net48\" />\n", name, s.DependsOn[name])
	}
	xml.WriteString("</packages>\n")
	writeFile(t, filepath.Join(root, "src", s.Name, "packages.config"), xml.String())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
