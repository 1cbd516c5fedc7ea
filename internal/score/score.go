// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score implements the native document format behind the loader
// contract: a notation container persisted as YAML (.scr) or JSON (.scrj),
// with named parts, page counts, and a sound profile.
package score

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
	"go.yaml.in/yaml/v3"
)

// Native format suffixes, without a dot.
const (
	SuffixYAML = "scr"
	SuffixJSON = "scrj"
)

// CurrentVersion is the newest format version this build reads without
// force mode.
const CurrentVersion = 2

// NativeSuffixes lists the output kinds handled by native save.
func NativeSuffixes() []string {
	return []string{SuffixYAML, SuffixJSON}
}

// File is the on-disk representation of a score.
type File struct {
	Version       int               `yaml:"version" json:"version"`
	Title         string            `yaml:"title" json:"title"`
	SoundProfile  string            `yaml:"sound_profile,omitempty" json:"sound_profile,omitempty"`
	Transposition int               `yaml:"transposition,omitempty" json:"transposition,omitempty"`
	Styles        map[string]string `yaml:"styles,omitempty" json:"styles,omitempty"`
	Pages         int               `yaml:"pages" json:"pages"`
	Parts         []PartData        `yaml:"parts" json:"parts"`
}

// PartData is one named part of a score.
type PartData struct {
	Name        string            `yaml:"name" json:"name"`
	Pages       int               `yaml:"pages" json:"pages"`
	Lines       []string          `yaml:"lines,omitempty" json:"lines,omitempty"`
	InputParams map[string]string `yaml:"input_params,omitempty" json:"input_params,omitempty"`
}

// decode unmarshals data according to the file suffix.
func decode(path string, data []byte) (*File, error) {
	var f File
	switch suffixOf(path) {
	case SuffixYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Errorf("parsing %s: %w", path, err)
		}
	case SuffixJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, errors.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, errors.Errorf("unsupported input format %q", suffixOf(path))
	}
	return &f, nil
}

// encode marshals f according to the destination suffix.
func encode(path string, f *File) ([]byte, error) {
	switch suffixOf(path) {
	case SuffixYAML:
		return yaml.Marshal(f)
	case SuffixJSON:
		return json.MarshalIndent(f, "", "  ")
	}
	return nil, errors.Errorf("unsupported native format %q", suffixOf(path))
}

// save writes f to path in the format the suffix selects.
func save(path string, f *File) error {
	data, err := encode(path, f)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func suffixOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
