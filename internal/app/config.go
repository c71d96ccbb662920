package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SettingsPath string // JSON benchmark-configuration document

	PlanDir  string // directory for the rendered task plan
	PlanFile string // plan file name inside PlanDir

	FrontendURL       string // socket.io endpoint of the web frontend, empty disables publishing
	FrontendNamespace string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SettingsPath == "" {
		return nil, errors.New("SettingsPath is a required configuration field and cannot be empty")
	}

	if cfg.PlanDir == "" {
		cfg.PlanDir = "."
	}
	if cfg.PlanFile == "" {
		cfg.PlanFile = "task-plan.json"
	}

	return &cfg, nil
}
