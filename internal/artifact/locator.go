package artifact

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/ripplego/internal/ctxlog"
	"github.com/specialistvlad/ripplego/internal/fsutil"
	"github.com/specialistvlad/ripplego/internal/model"
	"github.com/specialistvlad/ripplego/internal/semver"
)

const nupkgExt = ".nupkg"

// Locator finds package files on the local filesystem.
type Locator struct{}

// NewLocator returns a filesystem locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate returns the files of dep as built by publisher. The caller must
// Close the returned artifact. A package with no files is reported as a
// *NotFoundError.
func (l *Locator) Locate(ctx context.Context, dep *model.Dependency, publisher *model.Solution) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx).With("publisher", publisher.Name)
	notFound := &NotFoundError{Dependency: dep, Publisher: publisher.Name}

	if nuget, ok := publisher.Publishes(dep.Name); ok && nuget.Output != "" {
		notFound.Searched = append(notFound.Searched, nuget.Output)
		files, err := outputFiles(nuget)
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			logger.Debug("Found package files in build output.", "dir", nuget.Output, "count", len(files))
			return &Artifact{Dependency: dep, Source: nuget.Output, Files: files}, nil
		}
		logger.Debug("Build output holds no package files.", "dir", nuget.Output)
	}

	if publisher.ArtifactsDir != "" {
		notFound.Searched = append(notFound.Searched, filepath.Join(publisher.ArtifactsDir, dep.PackageFolderName()+nupkgExt))
		pkgPath, err := findNupkg(ctx, publisher.ArtifactsDir, dep)
		if err != nil {
			return nil, err
		}
		if pkgPath != "" {
			logger.Debug("Found package archive.", "path", pkgPath)
			return openNupkg(dep, publisher.Name, pkgPath)
		}
	}

	return nil, notFound
}

func outputFiles(nuget *model.PublishedNuget) ([]File, error) {
	patterns := nuget.Assemblies
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := map[string]bool{}
	var files []File
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(nuget.Output, pattern))
		if err != nil {
			return nil, fmt.Errorf("assembly pattern %q of %s: %w", pattern, nuget.Name, err)
		}
		for _, m := range matches {
			if seen[m] || fsutil.IsDir(m) {
				continue
			}
			seen[m] = true
			rel, err := filepath.Rel(nuget.Output, m)
			if err != nil {
				return nil, err
			}
			files = append(files, File{Rel: filepath.ToSlash(rel), Origin: m})
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })
	return files, nil
}

// findNupkg returns the archive in dir whose id and version match dep, or "".
// A dependency without a version takes the highest version found for its id.
func findNupkg(ctx context.Context, dir string, dep *model.Dependency) (string, error) {
	logger := ctxlog.FromContext(ctx)
	paths, err := fsutil.FindFilesByExtension(dir, nupkgExt)
	if err != nil {
		return "", fmt.Errorf("list packages in %s: %w", dir, err)
	}

	var latest string
	var latestVersion semver.Version
	for _, p := range paths {
		base := filepath.Base(p)
		name, version, ok := semver.SplitPackageFileName(base[:len(base)-len(nupkgExt)])
		if !ok {
			logger.Debug("Skipping package with unparseable file name.", "path", p)
			continue
		}
		if !strings.EqualFold(name, dep.Name) {
			continue
		}
		if dep.Version == "" {
			if latest == "" || semver.Compare(version, latestVersion) > 0 {
				latest, latestVersion = p, version
			}
			continue
		}
		if semver.Equal(version.String(), dep.Version) {
			return p, nil
		}
	}
	if latest != "" {
		logger.Debug("Using latest package for unversioned dependency.", "path", latest, "version", latestVersion.String())
	}
	return latest, nil
}

func openNupkg(dep *model.Dependency, publisher, pkgPath string) (*Artifact, error) {
	rc, err := zip.OpenReader(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("open package %s: %w", pkgPath, err)
	}

	var files []File
	for _, zf := range rc.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		framework, rel, ok := libEntry(zf.Name)
		if !ok {
			continue
		}
		zf := zf
		files = append(files, File{
			Rel:       rel,
			Framework: framework,
			Origin:    pkgPath + "!" + zf.Name,
			open:      func() (io.ReadCloser, error) { return zf.Open() },
		})
	}
	if len(files) == 0 {
		rc.Close()
		return nil, &NotFoundError{Dependency: dep, Publisher: publisher, Searched: []string{pkgPath + "!lib/"}}
	}
	return &Artifact{Dependency: dep, Source: pkgPath, Files: files, closer: rc}, nil
}

// libEntry splits an archive entry below lib/ into its framework folder and
// the remaining path. Entries outside lib/ or escaping it are rejected.
func libEntry(name string) (framework, rel string, ok bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	if !strings.HasPrefix(strings.ToLower(name), "lib/") {
		return "", "", false
	}
	clean := path.Clean(name[len("lib/"):])
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", "", false
	}
	parts := strings.SplitN(clean, "/", 2)
	if len(parts) == 1 {
		return "", parts[0], true
	}
	return parts[0], parts[1], true
}
