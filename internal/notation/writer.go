// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notation

import (
	"context"
	"sort"
	"strings"
)

// OptionKey enumerates the per-write options a writer may receive.
type OptionKey string

const (
	// OptionPageNumber carries the 0-based page index for page-segmented
	// writes. Output file names use 1-based numbering; the writer sees the
	// internal 0-based index.
	OptionPageNumber OptionKey = "page_number"

	// OptionUnitType carries a UnitType.
	OptionUnitType OptionKey = "unit_type"
)

// UnitType tells a writer whether it is serializing a whole document or a
// single extracted part.
type UnitType int

const (
	UnitWholeDocument UnitType = iota
	UnitPerPart
)

// Options is the transient per-write option mapping. Built fresh for each
// write call, never persisted.
type Options map[OptionKey]any

// PageNumber returns the 0-based page index, or -1 when absent.
func (o Options) PageNumber() int {
	if v, ok := o[OptionPageNumber].(int); ok {
		return v
	}
	return -1
}

// Unit returns the unit type, defaulting to UnitWholeDocument.
func (o Options) Unit() UnitType {
	if v, ok := o[OptionUnitType].(UnitType); ok {
		return v
	}
	return UnitWholeDocument
}

// Writer serializes a document (or one part of it) into a specific output
// format.
type Writer interface {
	Write(ctx context.Context, doc Document, out *OutFile, opts Options) error
}

// Registry maps output-kind identifiers (file suffixes, without a dot) to
// writers. Lookups are case-insensitive. Not safe for concurrent mutation;
// register everything up front.
type Registry struct {
	writers map[string]Writer
}

// NewRegistry returns an empty writer registry.
func NewRegistry() *Registry {
	return &Registry{writers: make(map[string]Writer)}
}

// Register binds a writer to an output suffix, replacing any previous
// binding.
func (r *Registry) Register(suffix string, w Writer) {
	r.writers[strings.ToLower(suffix)] = w
}

// Lookup returns the writer for the given suffix, if one is registered.
func (r *Registry) Lookup(suffix string) (Writer, bool) {
	w, ok := r.writers[strings.ToLower(suffix)]
	return w, ok
}

// Suffixes returns the registered output kinds in sorted order.
func (r *Registry) Suffixes() []string {
	out := make([]string, 0, len(r.writers))
	for s := range r.writers {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
