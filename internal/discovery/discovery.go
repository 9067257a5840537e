// Package discovery resolves the ordered list of solutions a ripple runs
// over: it loads the workspace, every solution in it and their package
// manifests, links each dependency to the solution publishing it, and
// finally narrows the chain to the From/To/Direct bounds.
package discovery

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/ripplego/internal/config"
	"github.com/specialistvlad/ripplego/internal/ctxlog"
	"github.com/specialistvlad/ripplego/internal/model"
	"github.com/specialistvlad/ripplego/internal/plan"
)

// ManifestReader returns the dependencies declared by a project.
type ManifestReader interface {
	Read(ctx context.Context, p *model.Project) ([]*model.Dependency, error)
}

// Discovery is the filesystem SolutionDiscovery.
type Discovery struct {
	workspace config.Loader
	solutions config.SolutionLoader
	manifests ManifestReader
}

func New(workspace config.Loader, solutions config.SolutionLoader, manifests ManifestReader) *Discovery {
	return &Discovery{workspace: workspace, solutions: solutions, manifests: manifests}
}

// Result is the outcome of discovery.
type Result struct {
	Workspace *model.Workspace
	// All is every solution of the workspace, in declared order.
	All []*model.Solution
	// Chain is the bounded list the ripple runs over.
	Chain []*model.Solution
}

// Discover loads the workspace at or above path and returns its solutions.
func (d *Discovery) Discover(ctx context.Context, path string, req config.Requirements) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	ws, err := d.workspace.Load(ctx, path)
	if err != nil {
		return nil, &plan.ConfigurationError{Message: "cannot load workspace", Err: err}
	}

	all := make([]*model.Solution, 0, len(ws.Solutions))
	for _, ref := range ws.Solutions {
		s, err := d.solutions.LoadSolution(ctx, ref, ws.Defaults)
		if err != nil {
			return nil, &plan.ConfigurationError{Message: "cannot load solution " + ref.Name, Err: err}
		}
		for _, p := range s.Projects {
			deps, err := d.manifests.Read(ctx, p)
			if err != nil {
				return nil, &plan.ConfigurationError{Message: fmt.Sprintf("cannot read packages of %s/%s", s.Name, p.Name), Err: err}
			}
			p.Dependencies = deps
		}
		all = append(all, s)
	}

	if err := validate(all); err != nil {
		return nil, err
	}
	if err := LinkPublishers(all); err != nil {
		return nil, err
	}

	chain, err := Bound(all, req)
	if err != nil {
		return nil, err
	}

	logger.Debug("Solutions discovered.", "workspace", len(all), "chain", names(chain))
	return &Result{Workspace: ws, All: all, Chain: chain}, nil
}

// validate rejects duplicate names and shared package caches.
func validate(all []*model.Solution) error {
	byName := map[string]*model.Solution{}
	byCache := map[string]*model.Solution{}
	for _, s := range all {
		key := strings.ToLower(s.Name)
		if prev, ok := byName[key]; ok {
			return &plan.ConfigurationError{Message: fmt.Sprintf("solutions %s and %s have the same name", prev.Name, s.Name)}
		}
		byName[key] = s

		cache := filepath.Clean(s.PackagesDir)
		if prev, ok := byCache[cache]; ok {
			return &plan.ConfigurationError{Message: fmt.Sprintf("solutions %s and %s share the package cache %s", prev.Name, s.Name, cache)}
		}
		byCache[cache] = s
	}
	return nil
}

// LinkPublishers sets the publisher of every dependency to the solution of
// all that publishes a package with that name. Dependencies nobody publishes
// keep a nil publisher.
func LinkPublishers(all []*model.Solution) error {
	publishers := map[string]*model.Solution{}
	for _, s := range all {
		for _, n := range s.Nugets {
			key := strings.ToLower(n.Name)
			if prev, ok := publishers[key]; ok && prev != s {
				return &plan.ConfigurationError{Message: fmt.Sprintf("package %s is published by both %s and %s", n.Name, prev.Name, s.Name)}
			}
			publishers[key] = s
		}
	}
	for _, s := range all {
		for _, dep := range s.Dependencies() {
			dep.Publisher = publishers[strings.ToLower(dep.Name)]
		}
	}
	return nil
}

// Bound narrows all to the solutions from req.From to req.To, both
// inclusive. With req.Direct only the two ends are kept.
func Bound(all []*model.Solution, req config.Requirements) ([]*model.Solution, error) {
	if err := req.Validate(); err != nil {
		return nil, &plan.ConfigurationError{Message: "invalid bounds", Err: err}
	}
	if len(all) == 0 {
		return nil, nil
	}

	from, to := 0, len(all)-1
	if req.From != "" {
		i, err := index(all, req.From)
		if err != nil {
			return nil, err
		}
		from = i
	}
	if req.To != "" {
		i, err := index(all, req.To)
		if err != nil {
			return nil, err
		}
		to = i
	}
	if from > to {
		return nil, &plan.ConfigurationError{Message: fmt.Sprintf("%s comes after %s in the workspace", all[from].Name, all[to].Name)}
	}

	if req.Direct && to > from {
		return []*model.Solution{all[from], all[to]}, nil
	}
	return append([]*model.Solution(nil), all[from:to+1]...), nil
}

func index(all []*model.Solution, name string) (int, error) {
	for i, s := range all {
		if strings.EqualFold(s.Name, name) {
			return i, nil
		}
	}
	return -1, &plan.ConfigurationError{Message: fmt.Sprintf("unknown solution %q", name)}
}

func names(solutions []*model.Solution) []string {
	out := make([]string, len(solutions))
	for i, s := range solutions {
		out[i] = s.Name
	}
	return out
}
