// Package progress reports a ripple while it runs. The runner pushes one
// event per executed step and a summary at the end; sinks decide where those
// go (structured logs, the console, metrics).
package progress

import (
	"fmt"
	"time"

	"github.com/specialistvlad/ripplego/internal/plan"
)

// StepEvent describes a step that has finished, successfully or not.
type StepEvent struct {
	// Index is 1-based.
	Index    int
	Total    int
	Step     plan.Step
	Duration time.Duration
	Err      error
}

// Line is the one-line progress record for a successful step.
func (e StepEvent) Line() string {
	return fmt.Sprintf("Finished step %d of %d", e.Index, e.Total)
}

// Summary is the final outcome of a run.
type Summary struct {
	// State is the terminal runner state, "completed" or "aborted".
	State    string
	Executed int
	Total    int
	Warnings []plan.Warning
	// Failed is the step that aborted the run, if any.
	Failed   plan.Step
	Err      error
	Duration time.Duration
}

// Sink receives progress. Calls happen from the runner goroutine, in order.
type Sink interface {
	StepFinished(StepEvent)
	RunFinished(Summary)
}

// Multi fans every call out to each sink in order.
type Multi []Sink

func (m Multi) StepFinished(e StepEvent) {
	for _, s := range m {
		s.StepFinished(e)
	}
}

func (m Multi) RunFinished(s Summary) {
	for _, sink := range m {
		sink.RunFinished(s)
	}
}

// Discard drops everything.
type Discard struct{}

func (Discard) StepFinished(StepEvent) {}
func (Discard) RunFinished(Summary)    {}
