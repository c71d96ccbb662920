package task

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vk/tracebench/internal/cgroup"
	"github.com/vk/tracebench/internal/ctxlog"
	"github.com/vk/tracebench/internal/fsutil"
	"github.com/vk/tracebench/internal/scheduler"
	"github.com/vk/tracebench/internal/settings"
	"github.com/vk/tracebench/internal/workload"
)

// DefaultFallbackDir is where bare trace-replay executable names are looked
// up when the configured path does not exist as given.
const DefaultFallbackDir = "/usr/bin"

// Builder turns a settings document into validated task descriptors. Field
// resolution is two-phase: the top-level settings populate every field
// first, then the indexed task_option element overrides whatever it
// carries. Construction either returns a fully validated descriptor or a
// typed error; partial descriptors never escape.
type Builder struct {
	registry    *cgroup.Registry
	fallbackDir string
}

// NewBuilder creates a Builder claiming control-group identifiers from
// registry.
func NewBuilder(registry *cgroup.Registry) *Builder {
	return &Builder{
		registry:    registry,
		fallbackDir: DefaultFallbackDir,
	}
}

// Build constructs the descriptor for task_option[index].
func (b *Builder) Build(ctx context.Context, doc *settings.Document, index int) (*Descriptor, error) {
	d := &Descriptor{
		TraceRepeat: DefaultTraceRepeat,
		MQID:        UnsetIPC,
		SemID:       UnsetIPC,
		ShmID:       UnsetIPC,
	}

	if err := b.applyGlobal(ctx, doc, d); err != nil {
		return nil, err
	}
	if err := b.applyTask(ctx, doc, index, d); err != nil {
		return nil, err
	}
	return d, nil
}

// BuildAll constructs one descriptor per task_option element, in array
// order. The first failing task aborts the whole build.
func (b *Builder) BuildAll(ctx context.Context, doc *settings.Document) ([]*Descriptor, error) {
	count, err := doc.TaskCount()
	if err != nil {
		if errors.Is(err, settings.ErrKeyNotFound) {
			return nil, &MissingFieldError{Key: settings.TaskOptionKey}
		}
		return nil, err
	}

	list := make([]*Descriptor, 0, count)
	for index := 0; index < count; index++ {
		d, err := b.Build(ctx, doc, index)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", index, err)
		}
		list = append(list, d)
	}
	return list, nil
}

// applyGlobal is the first resolution phase, reading the top-level settings
// object. The seven core fields are mandatory here; the tuning knobs are
// optional and keep their defaults when absent.
func (b *Builder) applyGlobal(ctx context.Context, doc *settings.Document, d *Descriptor) error {
	logger := ctxlog.FromContext(ctx)

	if err := readInt(doc, "time", &d.Time, required); err != nil {
		return err
	}
	if err := readInt(doc, "q_depth", &d.QDepth, required); err != nil {
		return err
	}
	if err := readInt(doc, "nr_thread", &d.NrThread, required); err != nil {
		return err
	}
	if err := readStr(doc, "prefix_cgroup_name", &d.PrefixCgroupName, required); err != nil {
		return err
	}
	if err := readStr(doc, "scheduler", &d.Scheduler, required); err != nil {
		return err
	}
	if err := readStr(doc, "device", &d.Device, required); err != nil {
		return err
	}
	if err := readStr(doc, "trace_replay_path", &d.TraceReplayPath, required); err != nil {
		return err
	}

	if err := b.resolveReplayPath(ctx, d); err != nil {
		return err
	}

	kind, err := scheduler.Validate(d.Scheduler)
	if err != nil {
		return err
	}
	d.SchedulerKind = kind

	if err := readInt(doc, "weight", &d.Weight, optional); err != nil {
		return err
	}
	if err := readInt(doc, "trace_repeat", &d.TraceRepeat, optional); err != nil {
		return err
	}
	if err := readInt(doc, "wss", &d.WSS, optional); err != nil {
		return err
	}
	if err := readInt(doc, "utilization", &d.Utilization, optional); err != nil {
		return err
	}
	if err := readInt(doc, "iosize", &d.IOSize, optional); err != nil {
		return err
	}
	// Existence is checked in the per-task phase, after overrides landed.
	if err := readStr(doc, "trace_data_path", &d.TraceDataPath, optional); err != nil {
		return err
	}

	logger.Debug("Global settings applied.", "scheduler", d.Scheduler, "device", d.Device)
	return nil
}

// applyTask is the second resolution phase, operating on one task_option
// element. Every field read globally may be overridden here; trace source
// and control-group identity become mandatory at this granularity.
func (b *Builder) applyTask(ctx context.Context, doc *settings.Document, index int, d *Descriptor) error {
	logger := ctxlog.FromContext(ctx)

	taskDoc, err := doc.Task(index)
	if err != nil {
		if errors.Is(err, settings.ErrKeyNotFound) {
			return &MissingFieldError{Key: settings.TaskOptionKey}
		}
		return err
	}

	if err := readInt(taskDoc, "time", &d.Time, optional); err != nil {
		return err
	}
	if err := readInt(taskDoc, "q_depth", &d.QDepth, optional); err != nil {
		return err
	}
	if err := readInt(taskDoc, "nr_thread", &d.NrThread, optional); err != nil {
		return err
	}
	if err := readInt(taskDoc, "weight", &d.Weight, optional); err != nil {
		return err
	}
	if err := readInt(taskDoc, "trace_repeat", &d.TraceRepeat, optional); err != nil {
		return err
	}
	if err := readInt(taskDoc, "wss", &d.WSS, optional); err != nil {
		return err
	}
	if err := readInt(taskDoc, "utilization", &d.Utilization, optional); err != nil {
		return err
	}
	if err := readInt(taskDoc, "iosize", &d.IOSize, optional); err != nil {
		return err
	}
	if err := readStr(taskDoc, "prefix_cgroup_name", &d.PrefixCgroupName, optional); err != nil {
		return err
	}
	if err := readStr(taskDoc, "scheduler", &d.Scheduler, optional); err != nil {
		return err
	}
	if err := readStr(taskDoc, "device", &d.Device, optional); err != nil {
		return err
	}
	if taskDoc.Has("trace_replay_path") {
		if err := readStr(taskDoc, "trace_replay_path", &d.TraceReplayPath, required); err != nil {
			return err
		}
		// An override must satisfy the same existence invariant as the
		// global value.
		if err := b.resolveReplayPath(ctx, d); err != nil {
			return err
		}
	}

	kind, err := scheduler.Validate(d.Scheduler)
	if err != nil {
		return err
	}
	d.SchedulerKind = kind

	if kind.WeightBased() {
		// A weight-based scheduler needs an explicit weight on the task
		// element itself; a global default is not enough to express a
		// deliberate per-task priority.
		if err := readInt(taskDoc, "weight", &d.Weight, required); err != nil {
			return err
		}
	}

	if err := readStr(taskDoc, "trace_data_path", &d.TraceDataPath, required); err != nil {
		return err
	}
	if err := readStr(taskDoc, "cgroup_id", &d.CgroupID, required); err != nil {
		return err
	}

	if !workload.IsSynthetic(d.TraceDataPath) {
		if !fsutil.Exists(d.TraceDataPath) {
			return &TraceDataNotFoundError{Path: d.TraceDataPath}
		}
		logger.Debug("Trace data file exists.", "path", d.TraceDataPath)
	}

	d.PPID = os.Getpid()

	if err := b.registry.Register(d.CgroupID); err != nil {
		return err
	}

	logger.Debug("Task settings applied.", "index", index, "cgroup_id", d.CgroupID)
	return nil
}

// resolveReplayPath applies the fallback-directory rewrite to the current
// trace_replay_path and stores the resolved location.
func (b *Builder) resolveReplayPath(ctx context.Context, d *Descriptor) error {
	resolved, redirected, err := fsutil.ResolveExecutable(d.TraceReplayPath, b.fallbackDir)
	if err != nil {
		return &ExecutableNotFoundError{Path: d.TraceReplayPath}
	}
	if redirected {
		ctxlog.FromContext(ctx).Warn("Trace-replay executable redirected.",
			"from", d.TraceReplayPath, "to", resolved)
	}
	d.TraceReplayPath = resolved
	return nil
}

// Severity of an absent key for readInt/readStr.
const (
	required = true
	optional = false
)

// readInt copies the integer at key into dst. When the key is absent an
// optional read leaves dst untouched; a required read fails with a
// *MissingFieldError. Malformed values fail either way.
func readInt(doc *settings.Document, key string, dst *int, req bool) error {
	n, err := doc.Int(key)
	if errors.Is(err, settings.ErrKeyNotFound) {
		if req {
			return &MissingFieldError{Key: key}
		}
		return nil
	}
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

// readStr is the string counterpart of readInt.
func readStr(doc *settings.Document, key string, dst *string, req bool) error {
	s, err := doc.Str(key)
	if errors.Is(err, settings.ErrKeyNotFound) {
		if req {
			return &MissingFieldError{Key: key}
		}
		return nil
	}
	if err != nil {
		return err
	}
	*dst = s
	return nil
}
