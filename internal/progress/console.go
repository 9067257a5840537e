package progress

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// detailer is implemented by errors that carry more than one line of
// context, such as a failed build with its output.
type detailer interface {
	Details() string
}

// ConsoleSink prints human-readable progress. Colours are used only when w
// is a terminal.
type ConsoleSink struct {
	w io.Writer

	ok    lipgloss.Style
	fail  lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
	title lipgloss.Style
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	r := lipgloss.NewRenderer(w)
	return &ConsoleSink{
		w:     w,
		ok:    r.NewStyle().Foreground(lipgloss.Color("#5FD787")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#F5C26B")),
		muted: r.NewStyle().Foreground(lipgloss.Color("#888888")),
		title: r.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true),
	}
}

func (c *ConsoleSink) StepFinished(e StepEvent) {
	if e.Err != nil {
		fmt.Fprintf(c.w, "%s %s\n", c.fail.Render("✗"), e.Step)
		return
	}
	fmt.Fprintf(c.w, "%s %s %s\n", c.ok.Render("✓"), e.Line(), c.muted.Render(fmt.Sprintf("%s (%s)", e.Step, e.Duration.Round(time.Millisecond))))
}

func (c *ConsoleSink) RunFinished(s Summary) {
	for _, w := range s.Warnings {
		fmt.Fprintf(c.w, "%s %s\n", c.warn.Render("warning:"), w.Message)
	}
	if s.Err != nil {
		fmt.Fprintln(c.w, c.fail.Render(fmt.Sprintf("Ripple aborted after %d of %d steps", s.Executed, s.Total)))
		if s.Failed != nil {
			fmt.Fprintf(c.w, "  failed step: %s\n", s.Failed)
		}
		msg := s.Err.Error()
		var d detailer
		if errors.As(s.Err, &d) {
			msg = d.Details()
		}
		for _, line := range strings.Split(msg, "\n") {
			fmt.Fprintf(c.w, "  %s\n", line)
		}
		return
	}
	fmt.Fprintln(c.w, c.title.Render(fmt.Sprintf("Ripple completed: %d steps, %d warnings", s.Executed, len(s.Warnings))))
}
