// Package scheduler validates I/O scheduler names against the set the
// benchmark driver knows how to configure, and classifies them so the task
// builder can enforce scheduler-specific requirements (a weight-based
// scheduler makes the per-task weight mandatory).
package scheduler

import "fmt"

// Kind identifies a supported I/O scheduler.
type Kind int

// The supported schedulers. The multi-queue set is what a current kernel
// exposes; the single-queue names are kept for replaying old recordings on
// legacy hosts.
const (
	None Kind = iota
	Noop
	Deadline
	MQDeadline
	Kyber
	BFQ
	CFQ
)

// kinds maps the sysfs scheduler name to its Kind.
var kinds = map[string]Kind{
	"none":        None,
	"noop":        Noop,
	"deadline":    Deadline,
	"mq-deadline": MQDeadline,
	"kyber":       Kyber,
	"bfq":         BFQ,
	"cfq":         CFQ,
}

// names is the inverse of kinds, for diagnostics.
var names = map[Kind]string{
	None:       "none",
	Noop:       "noop",
	Deadline:   "deadline",
	MQDeadline: "mq-deadline",
	Kyber:      "kyber",
	BFQ:        "bfq",
	CFQ:        "cfq",
}

// String returns the sysfs name of the scheduler.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("scheduler.Kind(%d)", int(k))
}

// WeightBased reports whether the scheduler's behavior depends on a numeric
// priority weight. For these schedulers every task must carry an explicit
// weight value.
func (k Kind) WeightBased() bool {
	return k == BFQ || k == CFQ
}

// UnsupportedError reports a scheduler name outside the supported table.
type UnsupportedError struct {
	Name string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported scheduler %q", e.Name)
}

// Validate resolves a scheduler name to its Kind. Unknown names fail with
// an *UnsupportedError.
func Validate(name string) (Kind, error) {
	kind, ok := kinds[name]
	if !ok {
		return None, &UnsupportedError{Name: name}
	}
	return kind, nil
}
