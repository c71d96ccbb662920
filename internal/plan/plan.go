// Package plan renders a validated descriptor list as a JSON report and
// writes it next to earlier runs without overwriting them. The report is
// what an operator (or the web frontend) inspects before actually launching
// the workloads.
package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/tracebench/internal/ctxlog"
	"github.com/vk/tracebench/internal/fsutil"
	"github.com/vk/tracebench/internal/task"
)

// DefaultFileName is the report name used when the caller does not pick one.
const DefaultFileName = "task-plan.json"

// Report is the serializable form of a build: the task count plus one entry
// per descriptor, keyed like the settings document that produced them.
type Report struct {
	NrTasks int                `json:"nr_tasks"`
	Tasks   []*task.Descriptor `json:"task_option"`
}

// New assembles a report for the given descriptor list.
func New(list []*task.Descriptor) *Report {
	return &Report{
		NrTasks: len(list),
		Tasks:   list,
	}
}

// Render returns the indented JSON form of the report.
func (r *Report) Render() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to render plan: %w", err)
	}
	return append(data, '\n'), nil
}

// Writer persists reports into a fixed directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write renders the report into dir under name, rotating the file name
// instead of clobbering output from a previous run. It returns the path
// actually written.
func (w *Writer) Write(ctx context.Context, r *Report, name string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := r.Render()
	if err != nil {
		return "", err
	}

	path := fsutil.UniqueName(filepath.Join(w.dir, name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write plan: %w", err)
	}

	logger.Info("Task plan written.", "path", path, "tasks", r.NrTasks)
	return path, nil
}
