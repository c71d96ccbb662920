package settings

import (
	"context"
	"fmt"
	"os"

	hcljson "github.com/hashicorp/hcl/v2/json"
	"github.com/vk/tracebench/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Parse decodes a JSON settings document from src. The filename is only
// used in diagnostics.
func Parse(src []byte, filename string) (*Document, error) {
	file, diags := hcljson.Parse(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read attributes of %s: %w", filename, diags)
	}

	vals := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %q in %s: %w", name, filename, diags)
		}
		vals[name] = val
	}

	return &Document{attrs: vals}, nil
}

// Loader reads settings documents from the file system.
type Loader struct{}

// NewLoader creates a settings loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the settings document at path.
func (l *Loader) Load(ctx context.Context, path string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading settings document.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	doc, err := Parse(src, path)
	if err != nil {
		return nil, err
	}

	logger.Debug("Settings document loaded.", "path", path, "keys", len(doc.attrs))
	return doc, nil
}
