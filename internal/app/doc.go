// Package app wires the tracebench subsystems together: it owns the
// configured logger, the settings loader, the cgroup registry, and the task
// builder, and drives one load-validate-report cycle per Run.
package app
