// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the conversion pipeline:
// jobs, output specifications, transposition options, batch results, and
// configuration.
package types

import (
	"path"
	"strings"
)

// PartPlaceholder is the marker that stands in for a part name inside a
// templated output path. It is recognized in the batch job wire format and
// never survives into resolved paths.
const PartPlaceholder = "*"

// OutputSpec describes where a job writes its result. It is a closed
// variant: either a single concrete path, or a template that expands to one
// path per part of the input document. The variant is decided once, at
// parse time; downstream code never re-scans paths for placeholder markers.
type OutputSpec struct {
	single string

	// Templated form. base may contain PartPlaceholder occurrences; ext is
	// the literal suffix without a leading dot.
	dir       string
	base      string
	ext       string
	templated bool
}

// SingleOutput returns an OutputSpec for one concrete output path.
func SingleOutput(p string) OutputSpec {
	return OutputSpec{single: p}
}

// TemplatedOutput returns an OutputSpec that expands per part. base is the
// file base name template containing at least one PartPlaceholder; ext is
// the output suffix without a dot.
func TemplatedOutput(dir, base, ext string) OutputSpec {
	return OutputSpec{dir: dir, base: base, ext: ext, templated: true}
}

// IsTemplated reports whether the spec expands to one output per part.
func (o OutputSpec) IsTemplated() bool {
	return o.templated
}

// Path returns the concrete output path of a single spec. For templated
// specs it returns the display form with the placeholder still present.
func (o OutputSpec) Path() string {
	if !o.templated {
		return o.single
	}
	return joinDir(o.dir, o.base+"."+o.ext)
}

// Suffix returns the output kind identifier: the file extension without a
// leading dot, lower-cased.
func (o OutputSpec) Suffix() string {
	if o.templated {
		return strings.ToLower(o.ext)
	}
	ext := path.Ext(o.single)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ForPart resolves a templated spec to the concrete path for one part.
// Every placeholder occurrence in the base name is substituted with the
// part's display name. Pure: same inputs always yield the same path.
// Collisions between parts whose substituted names coincide are not
// detected.
func (o OutputSpec) ForPart(partName string) string {
	name := strings.ReplaceAll(o.base, PartPlaceholder, partName)
	return joinDir(o.dir, name+"."+o.ext)
}

// String renders the spec for error messages and progress labels.
func (o OutputSpec) String() string {
	return o.Path()
}

func joinDir(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}

// Job is one normalized unit of work: one input document converted into
// one output artifact (or one artifact per part, for templated outputs).
// Immutable once constructed by the batch parser; each Job carries enough
// information to be processed in isolation.
type Job struct {
	In        string
	Out       OutputSpec
	Transpose *TransposeOptions
}

// JobError records one failed job inside a batch, with enough context to
// reconstruct which job failed.
type JobError struct {
	In      string
	Out     string
	Message string
}

// BatchResult is the aggregate outcome of a batch run. Errors preserves
// job declaration order. Immutable once returned by the runner.
type BatchResult struct {
	OK     bool
	Total  int
	Errors []JobError
}

// ErrorText joins the individual failure messages into the newline-joined,
// human-readable form exposed to callers.
func (r BatchResult) ErrorText() string {
	lines := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		lines = append(lines, e.Message)
	}
	return strings.Join(lines, "\n")
}
