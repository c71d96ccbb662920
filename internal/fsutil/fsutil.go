// Package fsutil provides the small set of file system checks the task
// pipeline depends on: existence tests, executable path resolution with a
// well-known fallback directory, and collision-free output file naming.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Exists reports whether path names an existing file system entry. Symlinks
// are not followed, so a dangling link still counts as existing.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// ResolveExecutable returns a path to an existing executable. If path exists
// as given it is returned unchanged. Otherwise the bare value is retried
// under fallbackDir, which models accepting plain executable names (e.g.
// "fio") as shorthand for a well-known install location. The boolean result
// reports whether the fallback rewrite was applied.
func ResolveExecutable(path, fallbackDir string) (string, bool, error) {
	if Exists(path) {
		return path, false, nil
	}

	fallback := filepath.Join(fallbackDir, path)
	if Exists(fallback) {
		return fallback, true, nil
	}

	return "", false, fmt.Errorf("executable not found at %q or %q", path, fallback)
}

// UniqueName returns path if nothing exists there yet, or the first
// "path.1", "path.2", ... suffix that is free. It never overwrites a
// previous run's output.
func UniqueName(path string) string {
	if !Exists(path) {
		return path
	}

	for number := 1; ; number++ {
		candidate := fmt.Sprintf("%s.%d", path, number)
		if !Exists(candidate) {
			return candidate
		}
	}
}
