// Package workload classifies a task's trace source. A trace_data_path is
// either one of the fixed synthetic generator keywords understood by the
// trace-replay executable, or a path to a recorded trace file that has to
// exist on disk.
package workload

// syntheticTypes is the fixed set of generator keywords. The names follow
// the trace-replay specification and matching is exact and case-sensitive.
var syntheticTypes = map[string]struct{}{
	"rand_read":  {},
	"rand_write": {},
	"rand_mixed": {},
	"seq_read":   {},
	"seq_write":  {},
	"seq_mixed":  {},
}

// IsSynthetic reports whether traceDataPath names a synthetic workload
// generator rather than a trace file.
func IsSynthetic(traceDataPath string) bool {
	_, ok := syntheticTypes[traceDataPath]
	return ok
}

// SyntheticTypes returns the generator keywords as a fresh slice, for use
// in help text and diagnostics. Order is unspecified.
func SyntheticTypes() []string {
	names := make([]string, 0, len(syntheticTypes))
	for name := range syntheticTypes {
		names = append(names, name)
	}
	return names
}
