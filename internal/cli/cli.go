package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/ripplego/internal/app"
	"github.com/specialistvlad/ripplego/internal/config"
	"github.com/specialistvlad/ripplego/internal/plan"
)

// Exit codes returned by the ripple binary.
const (
	ExitOK            = 0
	ExitAborted       = 1
	ExitConfiguration = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// The first argument may name a command ("local" or "plan"). Without one the
// local command runs.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	command := app.CommandLocal
	if len(args) > 0 && (args[0] == app.CommandLocal || args[0] == app.CommandPlan) {
		command, args = args[0], args[1:]
	}

	flagSet := flag.NewFlagSet("ripple "+command, flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Ripple - rebuilds a chain of solutions and carries fresh packages downstream.

Usage:
  ripple [local|plan] [options] [WORKSPACE]

Commands:
  local   Build the chain and copy packages into downstream caches (default).
  plan    Print the steps a local run would execute, then exit.

Arguments:
  WORKSPACE
    Path to ripple.hcl or a directory at or below it. Defaults to ".".

Options:
`)
		flagSet.PrintDefaults()
	}

	workspaceFlag := flagSet.String("workspace", "", "Path to the workspace file or directory.")
	wFlag := flagSet.String("w", "", "Path to the workspace file or directory (shorthand).")
	fromFlag := flagSet.String("from", "", "First solution of the ripple. Defaults to the head of the chain.")
	fFlag := flagSet.String("f", "", "First solution of the ripple (shorthand).")
	toFlag := flagSet.String("to", "", "Last solution of the ripple. Defaults to the tail of the chain.")
	directFlag := flagSet.Bool("direct", false, "Ripple only between -from and -to, skipping the solutions in between.")
	fastFlag := flagSet.Bool("fast", false, "Use each solution's fast build command (no tests).")
	xFlag := flagSet.Bool("x", false, "Use each solution's fast build command (shorthand).")
	noBuildFlag := flagSet.Bool("nobuild", false, "Build only the first solution and just copy packages downstream.")
	nFlag := flagSet.Bool("n", false, "Build only the first solution (shorthand).")
	verboseFlag := flagSet.Bool("verbose", false, "Stream build output to the console.")
	vFlag := flagSet.Bool("v", false, "Stream build output to the console (shorthand).")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitConfiguration, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: ExitConfiguration, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args()[1:], " "))}
	}

	path := first(*workspaceFlag, *wFlag, flagSet.Arg(0), ".")
	slog.Debug("Workspace path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitConfiguration, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitConfiguration, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		Command:       command,
		WorkspacePath: path,
		Requirements: config.Requirements{
			From:      first(*fromFlag, *fFlag),
			To:        *toFlag,
			Direct:    *directFlag,
			Fast:      *fastFlag || *xFlag,
			SkipBuild: *noBuildFlag || *nFlag,
			Verbose:   *verboseFlag || *vFlag,
		},
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitConfiguration, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

// ToExitError maps an error returned by the app to the process exit code.
// A nil error maps to nil.
func ToExitError(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	var cfgErr *plan.ConfigurationError
	if errors.As(err, &cfgErr) {
		return &ExitError{Code: ExitConfiguration, Message: err.Error()}
	}
	return &ExitError{Code: ExitAborted, Message: err.Error()}
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
