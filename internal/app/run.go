package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/ripplego/internal/artifact"
	"github.com/specialistvlad/ripplego/internal/ctxlog"
	"github.com/specialistvlad/ripplego/internal/executor"
	"github.com/specialistvlad/ripplego/internal/plan"
	"github.com/specialistvlad/ripplego/internal/progress"
	"github.com/specialistvlad/ripplego/internal/runner"
)

// AbortedError is returned by Run when a step failed or the run was
// cancelled.
type AbortedError struct {
	Result *runner.RunResult
}

func (e *AbortedError) Error() string {
	if e.Result.Failed == nil {
		return fmt.Sprintf("ripple aborted: %v", e.Result.Err)
	}
	return fmt.Sprintf("ripple aborted at step %d of %d (%s): %v",
		e.Result.Failed.Index, e.Result.Total, e.Result.Failed.Step, e.Result.Err)
}

func (e *AbortedError) Unwrap() error {
	return e.Result.Err
}

// Run discovers the solutions, builds the plan and, for the local command,
// executes it. The plan command prints the plan and returns a nil result.
func (a *App) Run(ctx context.Context) (*runner.RunResult, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	a.startHealthCheckServer()
	defer a.closeHealthCheckServer()

	req := a.config.Requirements
	found, err := a.discovery.Discover(ctx, a.config.WorkspacePath, req)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Workspace resolved.", "file", found.Workspace.FSInformation.FilePath, "solutions", len(found.Chain))

	p, err := plan.Build(found.Chain, req.SkipBuild)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Plan built.", "steps", p.Len())

	warnings := plan.MissingExternal(found.Chain, artifact.NewCache(ctx).Has)

	if a.config.Command == CommandPlan {
		a.printPlan(p, append(warnings, p.StaleMoves()...))
		return nil, nil
	}

	exec := executor.New(a.invoker, a.locator, executor.Flags{Fast: req.Fast, Verbose: req.Verbose})
	sink := progress.Multi{
		progress.NewLogSink(a.logger),
		progress.NewConsoleSink(a.outW),
		a.metrics,
	}

	res, err := runner.New(exec, sink, runner.WithWarnings(warnings...)).Run(ctx, p)
	if err != nil {
		return nil, err
	}
	if res.State == runner.Aborted {
		return res, &AbortedError{Result: res}
	}

	a.logger.Debug("App.Run method finished.")
	return res, nil
}

func (a *App) printPlan(p *plan.Plan, warnings []plan.Warning) {
	names := make([]string, 0, len(p.Solutions()))
	for _, s := range p.Solutions() {
		names = append(names, s.Name)
	}
	fmt.Fprintf(a.outW, "Ripple %s: %d steps\n", strings.Join(names, " -> "), p.Len())
	fmt.Fprint(a.outW, p.String())
	for _, w := range warnings {
		fmt.Fprintf(a.outW, "warning: %s\n", w.Message)
	}
}
