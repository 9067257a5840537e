package hcl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/ripplego/internal/ctxlog"
	"github.com/specialistvlad/ripplego/internal/model"
)

// ErrNoWorkspace is returned when no workspace file exists at or above the
// starting path.
var ErrNoWorkspace = errors.New("no " + FileName + " found")

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL workspace loader.
func NewLoader() *Loader {
	return &Loader{environ: processEnviron}
}

// FindWorkspaceFile returns the workspace file for path. path may name the
// file itself or any directory; directories are searched upwards.
func FindWorkspaceFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return abs, nil
	}

	for dir := abs; ; {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or any parent directory", ErrNoWorkspace, abs)
		}
		dir = parent
	}
}

// Load reads the workspace file at or above path.
func (l *Loader) Load(ctx context.Context, path string) (*model.Workspace, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	file, err := FindWorkspaceFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Found workspace file.", "file", file)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
	}

	ws, diags := l.decode(hclFile.Body, filepath.Dir(file))
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}
	ws.FSInformation = model.NewFSInfo(file)

	logger.Debug("HCL loading complete.", "solutions", len(ws.Solutions))
	return ws, nil
}

func (l *Loader) decode(body hcl.Body, dir string) (*model.Workspace, hcl.Diagnostics) {
	content, diags := body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	evalCtx := evalContext(dir, l.environ())
	ws := model.NewWorkspace(dir)

	defaults, moreDiags := findUniqueBlock(content.Blocks, "defaults")
	diags = append(diags, moreDiags...)
	if defaults != nil {
		var d defaultsBlock
		diags = append(diags, gohcl.DecodeBody(defaults.Body, evalCtx, &d)...)
		ws.Defaults = model.Defaults{
			PackagesDir:  d.PackagesDir,
			ArtifactsDir: d.ArtifactsDir,
			BuildCommand: d.BuildCommand,
			FastCommand:  d.FastCommand,
		}
	}

	diags = append(diags, duplicateLabels(content.Blocks, "solution")...)
	for _, block := range content.Blocks.OfType("solution") {
		var s solutionBlock
		diags = append(diags, gohcl.DecodeBody(block.Body, evalCtx, &s)...)

		root := s.Path
		if root == "" {
			root = block.Labels[0]
		}
		if !filepath.IsAbs(root) {
			root = filepath.Join(dir, root)
		}
		ws.Solutions = append(ws.Solutions, &model.SolutionRef{
			Name: block.Labels[0],
			Path: filepath.Clean(root),
		})
	}

	return ws, diags
}
