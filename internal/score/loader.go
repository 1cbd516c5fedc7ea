// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"context"
	"os"

	"gitlab.com/tozd/go/errors"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scoreconv/internal/notation"
)

// Loader opens .scr/.scrj files into Documents.
type Loader struct{}

var _ notation.Loader = (*Loader)(nil)

// NewLoader returns a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the score at path. stylePath, when non-empty, names a YAML
// style overlay merged into the score's styles. force bypasses the format
// version check.
func (l *Loader) Load(ctx context.Context, path, stylePath string, force bool) (notation.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading score: %w", err)
	}

	f, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	if !force {
		if f.Version < 1 {
			return nil, errors.Errorf("%s: missing or invalid format version", path)
		}
		if f.Version > CurrentVersion {
			return nil, errors.Errorf("%s: format version %d is newer than supported %d", path, f.Version, CurrentVersion)
		}
	}

	if stylePath != "" {
		if err := applyStyle(f, stylePath); err != nil {
			return nil, err
		}
	}

	return &Document{file: f, part: -1}, nil
}

// applyStyle merges a YAML style overlay (a flat string map) into the
// score's styles. Overlay entries win over the score's own values.
func applyStyle(f *File, stylePath string) error {
	data, err := os.ReadFile(stylePath)
	if err != nil {
		return errors.Errorf("reading style %s: %w", stylePath, err)
	}

	var overlay map[string]string
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return errors.Errorf("parsing style %s: %w", stylePath, err)
	}

	if f.Styles == nil {
		f.Styles = make(map[string]string, len(overlay))
	}
	for k, v := range overlay {
		f.Styles[k] = v
	}
	return nil
}
