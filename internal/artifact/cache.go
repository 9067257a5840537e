package artifact

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/ripplego/internal/ctxlog"
	"github.com/specialistvlad/ripplego/internal/fsutil"
	"github.com/specialistvlad/ripplego/internal/model"
	"github.com/specialistvlad/ripplego/internal/semver"
)

// Entry is one package found in a package cache.
type Entry struct {
	Name    string
	Version string
	Path    string
}

// Cache reads the package cache of a solution.
type Cache struct {
	ctx context.Context
}

// NewCache returns a cache reader that logs through ctx.
func NewCache(ctx context.Context) *Cache {
	return &Cache{ctx: ctx}
}

// List returns the packages installed in the cache of s: every
// {name}.{version} folder and every loose .nupkg file, sorted by name.
func (c *Cache) List(s *model.Solution) ([]Entry, error) {
	var entries []Entry

	dirs, err := fsutil.SubDirs(s.PackagesDir)
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if name, v, ok := semver.SplitPackageFileName(d); ok {
			entries = append(entries, Entry{Name: name, Version: v.String(), Path: filepath.Join(s.PackagesDir, d)})
		}
	}

	pkgs, err := fsutil.FindFilesByExtension(s.PackagesDir, nupkgExt)
	if err != nil {
		return nil, err
	}
	for _, p := range pkgs {
		base := filepath.Base(p)
		if name, v, ok := semver.SplitPackageFileName(base[:len(base)-len(nupkgExt)]); ok {
			entries = append(entries, Entry{Name: name, Version: v.String(), Path: p})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// Has reports whether dep is present in the cache of s. A cache that cannot
// be read counts as not containing the package.
func (c *Cache) Has(s *model.Solution, dep *model.Dependency) bool {
	if fsutil.IsDir(s.PackageFolder(dep)) {
		return true
	}
	entries, err := c.List(s)
	if err != nil {
		ctxlog.FromContext(c.ctx).Debug("Package cache unreadable.", "solution", s.Name, "dir", s.PackagesDir, "error", err)
		return false
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name, dep.Name) && semver.Equal(e.Version, dep.Version) {
			return true
		}
	}
	return false
}
