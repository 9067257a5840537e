package executor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/specialistvlad/ripplego/internal/artifact"
	"github.com/specialistvlad/ripplego/internal/ctxlog"
	"github.com/specialistvlad/ripplego/internal/fsutil"
	"github.com/specialistvlad/ripplego/internal/model"
	"github.com/specialistvlad/ripplego/internal/plan"
)

// ArtifactLocator finds the built files of a package in its publisher.
type ArtifactLocator interface {
	Locate(ctx context.Context, dep *model.Dependency, publisher *model.Solution) (*artifact.Artifact, error)
}

// StepResult is the outcome of one step.
type StepResult struct {
	Step     plan.Step
	Duration time.Duration
	// Output is the captured build output of a build step.
	Output string
	// Files is the number of files written by a move step.
	Files int
	// Err is nil on success, otherwise a *BuildFailure, a
	// *PropagationFailure or the context error when the run was cancelled.
	Err error
}

// Executor runs plan steps against the local machine.
type Executor struct {
	invoker BuildInvoker
	locator ArtifactLocator
	flags   Flags
}

// New returns an executor building through invoker and finding packages
// through locator.
func New(invoker BuildInvoker, locator ArtifactLocator, flags Flags) *Executor {
	return &Executor{invoker: invoker, locator: locator, flags: flags}
}

// Execute runs a single step and blocks until it is done.
func (e *Executor) Execute(ctx context.Context, step plan.Step) StepResult {
	start := time.Now()
	res := StepResult{Step: step}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	switch s := step.(type) {
	case plan.BuildSolution:
		res.Output, res.Err = e.build(ctx, s.Solution)
	case plan.MoveNugetAssemblies:
		res.Files, res.Err = e.move(ctx, s)
	default:
		res.Err = fmt.Errorf("unsupported step type %T", step)
	}

	res.Duration = time.Since(start)
	return res
}

func (e *Executor) build(ctx context.Context, s *model.Solution) (string, error) {
	ctx = ctxlog.With(ctx, "solution", s.Name)
	logger := ctxlog.FromContext(ctx)
	logger.Info("▶️ Building solution", "fast", e.flags.Fast)

	code, output, err := e.invoker.Invoke(ctx, s, e.flags)
	if (err != nil || code != 0) && ctx.Err() != nil {
		logger.Warn("Build interrupted.", "error", ctx.Err())
		return output, ctx.Err()
	}
	if err != nil {
		return output, &BuildFailure{Solution: s.Name, ExitCode: code, Output: output, Err: err}
	}
	if code != 0 {
		return output, &BuildFailure{Solution: s.Name, ExitCode: code, Output: output}
	}

	logger.Info("✅ Build succeeded")
	return output, nil
}

func (e *Executor) move(ctx context.Context, step plan.MoveNugetAssemblies) (int, error) {
	dep := step.Dependency
	ctx = ctxlog.With(ctx, "package", dep.Name, "version", dep.Version, "into", step.Into.Name)
	logger := ctxlog.FromContext(ctx)
	logger.Info("▶️ Moving package assemblies", "from", dep.Publisher.String())

	fail := func(expected string, err error) (int, error) {
		return 0, &PropagationFailure{Dependency: dep, Target: step.Into.Name, ExpectedPath: expected, Err: err}
	}

	if dep.Publisher == nil {
		return fail("", errors.New("package has no publisher"))
	}

	art, err := e.locator.Locate(ctx, dep, dep.Publisher)
	if err != nil {
		var nf *artifact.NotFoundError
		if errors.As(err, &nf) {
			return fail(nf.ExpectedPath(), err)
		}
		return fail("", err)
	}
	defer art.Close()

	libDir := filepath.Join(step.Into.PackageFolder(dep), "lib")
	frameworks, err := fsutil.SubDirs(libDir)
	if err != nil {
		return fail(libDir, err)
	}

	written := 0
	for _, f := range art.Files {
		for _, dst := range destinations(libDir, frameworks, f) {
			if err := writeArtifactFile(dst, f); err != nil {
				return fail(dst, fmt.Errorf("copy %s: %w", f.Origin, err))
			}
			logger.Debug("Copied file.", "src", f.Origin, "dst", dst)
			written++
		}
	}

	logger.Info("✅ Moved package assemblies", "source", art.Source, "files", written)
	return written, nil
}

// destinations lists where f goes below libDir. Files from a package archive
// keep their framework folder. Loose build outputs go into every framework
// folder the cache already has, or straight into lib when it has none.
func destinations(libDir string, frameworks []string, f artifact.File) []string {
	rel := filepath.FromSlash(f.Rel)
	if f.Framework != "" {
		return []string{filepath.Join(libDir, f.Framework, rel)}
	}
	if len(frameworks) == 0 {
		return []string{filepath.Join(libDir, rel)}
	}
	out := make([]string, 0, len(frameworks))
	for _, fw := range frameworks {
		out = append(out, filepath.Join(libDir, fw, rel))
	}
	return out
}

func writeArtifactFile(dst string, f artifact.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return fsutil.WriteFile(dst, rc, 0o644)
}
