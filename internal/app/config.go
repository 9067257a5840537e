package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/ripplego/internal/config"
)

// Commands understood by the app.
const (
	CommandLocal = "local"
	CommandPlan  = "plan"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string
	// WorkspacePath is the workspace file or any directory at or below it.
	WorkspacePath string
	Requirements  config.Requirements

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkspacePath == "" {
		return nil, errors.New("WorkspacePath is a required configuration field and cannot be empty")
	}
	switch cfg.Command {
	case "":
		cfg.Command = CommandLocal
	case CommandLocal, CommandPlan:
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if err := cfg.Requirements.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
