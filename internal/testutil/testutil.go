// Package testutil provides shared helpers for building settings fixtures
// and quiet loggers in tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

// SettingsParams describes a settings document to synthesize for a test.
type SettingsParams struct {
	// Globals holds the top-level fields. Values marshal as-is.
	Globals map[string]any
	// Tasks holds raw JSON objects to place in the task_option array. Raw
	// text keeps malformed-element cases expressible.
	Tasks []string
}

// SettingsJSON renders the params as a settings document. Tasks may be
// empty, in which case no task_option key is emitted.
func SettingsJSON(p SettingsParams) string {
	doc := make(map[string]json.RawMessage, len(p.Globals)+1)
	for key, val := range p.Globals {
		raw, err := json.Marshal(val)
		if err != nil {
			panic(fmt.Sprintf("testutil: unmarshalable global %q: %v", key, err))
		}
		doc[key] = raw
	}

	if len(p.Tasks) > 0 {
		tasks := make([]json.RawMessage, len(p.Tasks))
		for i, task := range p.Tasks {
			tasks[i] = json.RawMessage(task)
		}
		raw, err := json.Marshal(tasks)
		if err != nil {
			panic(fmt.Sprintf("testutil: unmarshalable task_option: %v", err))
		}
		doc["task_option"] = raw
	}

	out, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("testutil: unmarshalable settings document: %v", err))
	}
	return string(out)
}

// DiscardLogger returns a logger that drops everything, for tests that only
// need a context-carried logger to exist.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
