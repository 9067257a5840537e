package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/ripplego/internal/model"
)

// DefaultPatterns select the files of a package in a build output directory
// when the publisher declares none.
var DefaultPatterns = []string{"*.dll", "*.pdb", "*.xml"}

// File is one file of a package.
type File struct {
	// Rel is the path below the framework folder, slash separated.
	Rel string
	// Framework is the lib/<framework> folder the file belongs to. Files
	// taken from a build output directory have none.
	Framework string
	// Origin is where the file was found, for logs and errors.
	Origin string

	open func() (io.ReadCloser, error)
}

// Open returns the contents of the file.
func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return os.Open(f.Origin)
	}
	return f.open()
}

// Artifact is the set of files making up one package.
type Artifact struct {
	Dependency *model.Dependency
	// Source is the output directory or nupkg file the files come from.
	Source string
	Files  []File

	closer io.Closer
}

// Close releases the package archive, if any.
func (a *Artifact) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// ErrNotFound is matched by NotFoundError.
var ErrNotFound = errors.New("artifact not found")

// NotFoundError reports a package with no built files in its publisher.
type NotFoundError struct {
	Dependency *model.Dependency
	Publisher  string
	// Searched are the locations looked at, most specific first.
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no built files for %s in %s (searched %s)",
		e.Dependency, e.Publisher, strings.Join(e.Searched, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ExpectedPath is the first location searched.
func (e *NotFoundError) ExpectedPath() string {
	if len(e.Searched) == 0 {
		return ""
	}
	return e.Searched[0]
}
