package app

import (
	"context"
	"fmt"

	"github.com/vk/tracebench/internal/ctxlog"
	"github.com/vk/tracebench/internal/plan"
	"github.com/vk/tracebench/internal/stream"
)

// Run executes the main application logic: load the settings document,
// build and validate every task descriptor, write the plan, and publish it
// to the frontend when one is configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		go a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	doc, err := a.loader.Load(ctx, a.config.SettingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	a.logger.Info("🔧 Building task descriptors...", "settings", a.config.SettingsPath)
	list, err := a.builder.BuildAll(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to build task descriptors: %w", err)
	}

	for _, d := range list {
		a.logger.Debug("Task descriptor validated.",
			"cgroup_id", d.CgroupID,
			"scheduler", d.Scheduler,
			"device", d.Device,
			"trace_data_path", d.TraceDataPath,
		)
	}
	a.logger.Info("✅ All task descriptors validated.", "count", len(list))

	report := plan.New(list)
	path, err := plan.NewWriter(a.config.PlanDir).Write(ctx, report, a.config.PlanFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "validated %d tasks, plan written to %s\n", len(list), path)

	if a.config.FrontendURL != "" {
		err := stream.Publish(ctx, stream.Options{
			URL:       a.config.FrontendURL,
			Namespace: a.config.FrontendNamespace,
		}, report)
		if err != nil {
			return fmt.Errorf("failed to publish plan to frontend: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
