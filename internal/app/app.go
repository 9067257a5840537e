package app

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/ripplego/internal/artifact"
	"github.com/specialistvlad/ripplego/internal/discovery"
	"github.com/specialistvlad/ripplego/internal/executor"
	"github.com/specialistvlad/ripplego/internal/hcl"
	"github.com/specialistvlad/ripplego/internal/manifest"
	"github.com/specialistvlad/ripplego/internal/metrics"
	"github.com/specialistvlad/ripplego/internal/solution"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	discovery  *discovery.Discovery
	invoker    executor.BuildInvoker
	locator    executor.ArtifactLocator
	metrics    *metrics.Metrics
	httpServer *http.Server
}

// Option customises an App, mostly for tests.
type Option func(*App)

// WithInvoker replaces the process build invoker.
func WithInvoker(inv executor.BuildInvoker) Option {
	return func(a *App) { a.invoker = inv }
}

// NewApp is the constructor for the main application. Progress and plans go
// to outW, logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		discovery: discovery.New(hcl.NewLoader(), solution.NewLoader(), manifest.NewReader()),
		invoker:   executor.NewProcessInvoker(outW),
		locator:   artifact.NewLocator(),
		metrics:   metrics.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Metrics returns the collectors fed by runs of this app.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}
