package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/ripplego/internal/ctxlog"
	"github.com/specialistvlad/ripplego/internal/executor"
	"github.com/specialistvlad/ripplego/internal/plan"
	"github.com/specialistvlad/ripplego/internal/progress"
)

// ErrAlreadyStarted is returned when Run is called on a used Runner.
var ErrAlreadyStarted = errors.New("runner: already started")

// StepExecutor runs a single step, blocking until it is done.
type StepExecutor interface {
	Execute(ctx context.Context, step plan.Step) executor.StepResult
}

// FailedStep identifies the step that aborted a run.
type FailedStep struct {
	// Index is 1-based.
	Index int
	Step  plan.Step
	Err   error
}

// RunResult is the outcome of a run.
type RunResult struct {
	State    State
	Executed int
	Total    int
	Warnings []plan.Warning
	Failed   *FailedStep
	// Err is the reason the run was aborted.
	Err      error
	Results  []executor.StepResult
	Duration time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithWarnings adds warnings found before the run to its summary.
func WithWarnings(w ...plan.Warning) Option {
	return func(r *Runner) {
		r.warnings = append(r.warnings, w...)
	}
}

// Runner executes one plan. It is single use.
type Runner struct {
	exec     StepExecutor
	sink     progress.Sink
	warnings []plan.Warning

	mu    sync.Mutex
	state State
}

// New returns an idle runner.
func New(exec StepExecutor, sink progress.Sink, opts ...Option) *Runner {
	if sink == nil {
		sink = progress.Discard{}
	}
	r := &Runner{exec: exec, sink: sink}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) transition(from, to State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != from {
		return false
	}
	r.state = to
	return true
}

// Run executes p and returns its result. The returned error is non-nil only
// when the run could not start; a failed step is reported through the result.
// Cancelling ctx aborts the run before the next step.
func (r *Runner) Run(ctx context.Context, p *plan.Plan) (*RunResult, error) {
	if p == nil {
		return nil, errors.New("runner: nil plan")
	}
	if !r.transition(Idle, Running) {
		return nil, ErrAlreadyStarted
	}

	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	steps := p.Steps()
	res := &RunResult{
		Total:    len(steps),
		Warnings: append(append([]plan.Warning(nil), r.warnings...), p.StaleMoves()...),
	}
	logger.Info("🚀 Starting ripple", "steps", res.Total)

	for i, step := range steps {
		index := i + 1
		if err := ctx.Err(); err != nil {
			res.Failed = &FailedStep{Index: index, Step: step, Err: err}
			res.Err = fmt.Errorf("ripple cancelled before step %d of %d: %w", index, res.Total, err)
			break
		}

		logger.Debug("Executing step.", "index", index, "total", res.Total, "step", step.String())
		sr := r.exec.Execute(ctx, step)
		res.Results = append(res.Results, sr)
		res.Executed++

		r.sink.StepFinished(progress.StepEvent{
			Index:    index,
			Total:    res.Total,
			Step:     step,
			Duration: sr.Duration,
			Err:      sr.Err,
		})

		if sr.Err != nil {
			res.Failed = &FailedStep{Index: index, Step: step, Err: sr.Err}
			res.Err = sr.Err
			break
		}
	}

	res.Duration = time.Since(start)
	res.State = Completed
	if res.Err != nil {
		res.State = Aborted
	}
	r.transition(Running, res.State)

	summary := progress.Summary{
		State:    res.State.String(),
		Executed: res.Executed,
		Total:    res.Total,
		Warnings: res.Warnings,
		Err:      res.Err,
		Duration: res.Duration,
	}
	if res.Failed != nil {
		summary.Failed = res.Failed.Step
	}
	r.sink.RunFinished(summary)

	return res, nil
}
