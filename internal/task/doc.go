// Package task constructs and validates the per-task descriptors used to
// launch containerized trace-replay workloads.
//
// Resolution mirrors the settings document's "global defaults, per-task
// overrides" layout: phase one reads the top-level object and fails hard on
// any missing core field, phase two re-reads the same keys from the indexed
// task_option element and overrides where present. On top of the merge the
// builder enforces the pipeline's invariants: the replay executable and any
// file-backed trace must exist, the scheduler name must validate (and bring
// a weight when it is weight-based), and every control-group identifier is
// claimed exactly once through the injected cgroup registry.
package task
