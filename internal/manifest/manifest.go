// Package manifest reads the package dependencies a project declares, either
// from its packages.config or, when there is none, from the PackageReference
// items of the project file.
package manifest

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/specialistvlad/ripplego/internal/ctxlog"
	"github.com/specialistvlad/ripplego/internal/model"
)

// packagesConfig models packages.config.
type packagesConfig struct {
	Packages []struct {
		ID              string `xml:"id,attr"`
		Version         string `xml:"version,attr"`
		TargetFramework string `xml:"targetFramework,attr"`
	} `xml:"package"`
}

// projectFile models the parts of an SDK style project file that carry
// package references.
type projectFile struct {
	ItemGroups []struct {
		References []struct {
			Include string `xml:"Include,attr"`
			// Version may be an attribute or a child element.
			VersionAttr string `xml:"Version,attr"`
			VersionElem string `xml:"Version"`
		} `xml:"PackageReference"`
	} `xml:"ItemGroup"`
}

// Reader is the filesystem implementation of a package manifest reader.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Read returns the dependencies of p with no publisher set. A project with
// neither a manifest nor package references has no dependencies.
func (r *Reader) Read(ctx context.Context, p *model.Project) ([]*model.Dependency, error) {
	logger := ctxlog.FromContext(ctx).With("project", p.Name)

	if p.PackagesFile != "" {
		data, err := os.ReadFile(p.PackagesFile)
		switch {
		case err == nil:
			deps, err := parsePackagesConfig(data)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", p.PackagesFile, err)
			}
			logger.Debug("Read packages manifest.", "file", p.PackagesFile, "count", len(deps))
			return deps, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", p.PackagesFile, err)
		}
	}

	if p.File == "" {
		return nil, nil
	}
	data, err := os.ReadFile(p.File)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("Project has no packages manifest and no project file.", "file", p.File)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.File, err)
	}
	deps, err := parsePackageReferences(data)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.File, err)
	}
	logger.Debug("Read package references.", "file", p.File, "count", len(deps))
	return deps, nil
}

func parsePackagesConfig(data []byte) ([]*model.Dependency, error) {
	var cfg packagesConfig
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	deps := make([]*model.Dependency, 0, len(cfg.Packages))
	for i, pkg := range cfg.Packages {
		if strings.TrimSpace(pkg.ID) == "" {
			return nil, fmt.Errorf("package %d has no id", i+1)
		}
		deps = append(deps, &model.Dependency{Name: pkg.ID, Version: pkg.Version})
	}
	return deps, nil
}

func parsePackageReferences(data []byte) ([]*model.Dependency, error) {
	var proj projectFile
	if err := xml.Unmarshal(data, &proj); err != nil {
		return nil, err
	}
	var deps []*model.Dependency
	for _, group := range proj.ItemGroups {
		for _, ref := range group.References {
			if strings.TrimSpace(ref.Include) == "" {
				continue
			}
			version := ref.VersionAttr
			if version == "" {
				version = strings.TrimSpace(ref.VersionElem)
			}
			deps = append(deps, &model.Dependency{Name: ref.Include, Version: version})
		}
	}
	return deps, nil
}
