package app

import (
	"io"
	"log/slog"

	"github.com/vk/tracebench/internal/cgroup"
	"github.com/vk/tracebench/internal/settings"
	"github.com/vk/tracebench/internal/task"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. One App owns one cgroup registry, so one App instance
// corresponds to one process-wide task namespace.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   *settings.Loader
	registry *cgroup.Registry
	builder  *task.Builder
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	registry := cgroup.NewRegistry()

	return &App{
		outW:     outW,
		logger:   logger,
		config:   config,
		loader:   settings.NewLoader(),
		registry: registry,
		builder:  task.NewBuilder(registry),
	}
}

// Registry returns the application's cgroup registry. This is primarily
// for testing.
func (a *App) Registry() *cgroup.Registry {
	return a.registry
}
