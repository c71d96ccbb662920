package task

import "github.com/vk/tracebench/internal/scheduler"

// UnsetIPC is the sentinel for IPC handles that have not been allocated
// yet. The IPC-resource allocator fills the real identifiers in after
// construction.
const UnsetIPC = -1

// DefaultTraceRepeat is used when neither scope sets trace_repeat.
const DefaultTraceRepeat = 1

// Descriptor carries everything one benchmarked process needs: timing
// limits, scheduler and device selection, trace source, and the unique
// control-group identifier the process is attached to for accounting.
// A descriptor is immutable once returned by the builder, apart from the
// later out-of-scope population of the IPC handles.
//
// The JSON tags mirror the keys of the settings document so a rendered
// descriptor reads like the configuration that produced it.
type Descriptor struct {
	Time        int `json:"time"`
	QDepth      int `json:"q_depth"`
	NrThread    int `json:"nr_thread"`
	Weight      int `json:"weight"`
	TraceRepeat int `json:"trace_repeat"`
	WSS         int `json:"wss"`
	Utilization int `json:"utilization"`
	IOSize      int `json:"iosize"`

	PrefixCgroupName string `json:"prefix_cgroup_name"`
	Scheduler        string `json:"scheduler"`
	TraceReplayPath  string `json:"trace_replay_path"`
	Device           string `json:"device"`
	TraceDataPath    string `json:"trace_data_path"`
	CgroupID         string `json:"cgroup_id"`

	// SchedulerKind is the validated classification of Scheduler.
	SchedulerKind scheduler.Kind `json:"-"`

	// PPID is the pid of the process that constructed the descriptor,
	// i.e. the parent of the replay process to be spawned.
	PPID int `json:"ppid"`

	// IPC identifiers, UnsetIPC until the allocator claims them.
	MQID  int `json:"mqid"`
	SemID int `json:"semid"`
	ShmID int `json:"shmid"`
}
