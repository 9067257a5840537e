package progress

import (
	"log/slog"

	"github.com/specialistvlad/ripplego/internal/plan"
)

// LogSink writes progress as structured log records.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (l *LogSink) StepFinished(e StepEvent) {
	if e.Err != nil {
		l.logger.Error("❌ Step failed", "step", e.Step.String(), "index", e.Index, "total", e.Total, "error", e.Err)
		return
	}
	l.logger.Info(e.Line(), "step", e.Step.String(), "duration", e.Duration)
}

func (l *LogSink) RunFinished(s Summary) {
	for _, w := range s.Warnings {
		l.logger.Warn(w.Message, "kind", string(w.Kind), "solution", w.Solution, "package", w.Dependency)
	}
	if s.Err != nil {
		l.logger.Error("🛑 Ripple aborted", "executed", s.Executed, "total", s.Total, "failed_step", stepName(s.Failed), "error", s.Err)
		return
	}
	l.logger.Info("🏁 Ripple completed", "executed", s.Executed, "total", s.Total, "warnings", len(s.Warnings), "duration", s.Duration)
}

func stepName(s plan.Step) string {
	if s == nil {
		return ""
	}
	return s.String()
}
