package semver

import (
	"fmt"
	"strconv"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a package version.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3 that also
// accepts the four-part versions NuGet allows (1.2.3.4). The fourth part is
// kept as a revision and compared after the semantic part.
type Version struct {
	v        *mm.Version
	revision int64
	raw      string
}

func ParseVersion(raw string) (Version, error) {
	trimmed := strings.TrimSpace(raw)
	if v, err := mm.NewVersion(trimmed); err == nil {
		return Version{v: v, raw: raw}, nil
	}

	// NuGet legacy: major.minor.patch.revision[-pre]
	core, suffix, _ := strings.Cut(trimmed, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 4 {
		return Version{}, fmt.Errorf("semver: parse version %q: invalid version", raw)
	}
	rev, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: invalid revision: %w", raw, err)
	}
	base := strings.Join(parts[:3], ".")
	if suffix != "" {
		base += "-" + suffix
	}
	v, err := mm.NewVersion(base)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v, revision: rev, raw: raw}, nil
}

// String returns the version as originally written.
func (v Version) String() string {
	return v.raw
}

// Compare compares a and b, returning:
// -1 if a < b
//
//	0 if a == b
//	1 if a > b
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	if c := a.v.Compare(b.v); c != 0 {
		return c
	}
	switch {
	case a.revision < b.revision:
		return -1
	case a.revision > b.revision:
		return 1
	}
	return 0
}

// Equal reports whether two raw version strings denote the same version
// ("1.0" and "1.0.0" are equal). Strings that do not parse are compared
// verbatim.
func Equal(a, b string) bool {
	va, errA := ParseVersion(a)
	vb, errB := ParseVersion(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return Compare(va, vb) == 0
}

// CompareRaw orders two raw version strings semantically, falling back to a
// plain string comparison when either one does not parse.
func CompareRaw(a, b string) int {
	va, errA := ParseVersion(a)
	vb, errB := ParseVersion(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return Compare(va, vb)
}

// SplitPackageFileName splits a package file or folder base name such as
// "FubuCore.1.2.0.45" into its id and version. The version starts at the
// first dot-separated segment that begins with a digit and parses.
func SplitPackageFileName(base string) (name string, version Version, ok bool) {
	segments := strings.Split(base, ".")
	for i := 1; i < len(segments); i++ {
		if segments[i] == "" || segments[i][0] < '0' || segments[i][0] > '9' {
			continue
		}
		v, err := ParseVersion(strings.Join(segments[i:], "."))
		if err != nil {
			continue
		}
		return strings.Join(segments[:i], "."), v, true
	}
	return "", Version{}, false
}
