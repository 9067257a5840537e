package solution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/ripplego/internal/ctxlog"
	"github.com/specialistvlad/ripplego/internal/model"
)

const (
	defaultPackagesDir  = "packages"
	defaultArtifactsDir = "artifacts"
	defaultManifest     = "packages.config"
)

// Loader is the YAML implementation of config.SolutionLoader.
type Loader struct{}

// NewLoader creates a new solution file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSolution reads {ref.Path}/ripple.yaml. Values missing from the file
// fall back to defaults. Dependencies are left empty; they come from the
// packages manifests.
func (l *Loader) LoadSolution(ctx context.Context, ref *model.SolutionRef, defaults model.Defaults) (*model.Solution, error) {
	logger := ctxlog.FromContext(ctx).With("solution", ref.Name)

	path := filepath.Join(ref.Path, FileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load solution %s: %w", ref.Name, err)
	}
	defer f.Close()

	var file File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if file.Name == "" {
		file.Name = ref.Name
	}
	if !strings.EqualFold(file.Name, ref.Name) {
		return nil, fmt.Errorf("%s declares solution %q but the workspace calls it %q", path, file.Name, ref.Name)
	}

	s := &model.Solution{
		Name:          ref.Name,
		Root:          ref.Path,
		PackagesDir:   resolve(ref.Path, first(file.PackagesDir, defaults.PackagesDir, defaultPackagesDir)),
		ArtifactsDir:  resolve(ref.Path, first(file.ArtifactsDir, defaults.ArtifactsDir, defaultArtifactsDir)),
		FSInformation: model.NewFSInfo(path),
		Build: model.BuildSettings{
			Command:     first(file.Build.Command, defaults.BuildCommand),
			FastCommand: first(file.Build.FastCommand, defaults.FastCommand),
			Timeout:     file.Build.Timeout,
		},
	}
	if s.Build.Timeout < 0 {
		return nil, fmt.Errorf("%s: build timeout must not be negative", path)
	}

	for i, p := range file.Projects {
		if p.File == "" {
			return nil, fmt.Errorf("%s: project %d has no file", path, i+1)
		}
		projectFile := resolve(ref.Path, p.File)
		manifest := p.Packages
		if manifest == "" {
			manifest = filepath.Join(filepath.Dir(projectFile), defaultManifest)
		}
		s.Projects = append(s.Projects, &model.Project{
			Name:            strings.TrimSuffix(filepath.Base(projectFile), filepath.Ext(projectFile)),
			File:            projectFile,
			TargetFramework: p.TargetFramework,
			PackagesFile:    resolve(ref.Path, manifest),
		})
	}

	for i, n := range file.Nugets {
		if n.Name == "" {
			return nil, fmt.Errorf("%s: nuget %d has no name", path, i+1)
		}
		if _, dup := s.Publishes(n.Name); dup {
			return nil, fmt.Errorf("%s: nuget %q is declared twice", path, n.Name)
		}
		s.Nugets = append(s.Nugets, &model.PublishedNuget{
			Name:       n.Name,
			Output:     resolve(ref.Path, n.Output),
			Assemblies: n.Assemblies,
		})
	}

	logger.Debug("Solution loaded.", "projects", len(s.Projects), "nugets", len(s.Nugets), "packages_dir", s.PackagesDir)
	return s, nil
}

func resolve(root, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
