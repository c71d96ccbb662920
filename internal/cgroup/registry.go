// Package cgroup tracks the control-group identifiers claimed by task
// descriptors. Every benchmarked process is attached to its own cgroup for
// resource accounting, so an identifier appearing twice in a configuration
// would silently merge two tasks' accounting; the registry rejects the
// second claim instead.
package cgroup

import (
	"fmt"
	"sync"
)

// Registry is a process-wide set of claimed control-group identifiers. The
// zero value is not usable; create instances with NewRegistry and inject
// them into whoever constructs descriptors. All methods are safe for
// concurrent use.
type Registry struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewRegistry returns an empty, ready-to-use registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

// DuplicateError reports an attempt to claim an identifier that is already
// registered.
type DuplicateError struct {
	ID string
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate control-group identifier %q", e.ID)
}

// Register claims id. If the identifier is already present it fails with a
// *DuplicateError and leaves the registry unchanged.
func (r *Registry) Register(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[id]; ok {
		return &DuplicateError{ID: id}
	}
	r.ids[id] = struct{}{}
	return nil
}

// Contains reports whether id has been claimed.
func (r *Registry) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[id]
	return ok
}

// Len returns the number of claimed identifiers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

// Reset discards every claimed identifier. Callers that rebuild a full task
// set from scratch must Reset first; descriptors constructed before the
// Reset keep identifiers the registry no longer knows about.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = make(map[string]struct{})
}
