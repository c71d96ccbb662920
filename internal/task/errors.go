package task

import "fmt"

// MissingFieldError reports a mandatory settings key that is absent in the
// scope where it became mandatory.
type MissingFieldError struct {
	Key string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing mandatory field %q", e.Key)
}

// ExecutableNotFoundError reports a trace_replay_path that resolved to
// nothing even after the fallback-directory rewrite.
type ExecutableNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("trace-replay executable not found: %s", e.Path)
}

// TraceDataNotFoundError reports a non-synthetic trace_data_path with no
// file behind it.
type TraceDataNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *TraceDataNotFoundError) Error() string {
	return fmt.Sprintf("trace data file not found: %s", e.Path)
}
