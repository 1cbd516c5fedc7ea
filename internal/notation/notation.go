// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notation defines the contracts the conversion core consumes:
// document loading, format writers, output file handles, extensions, and
// transposition option parsing. Concrete document formats and encoders
// live behind these interfaces (see internal/score and internal/render).
package notation

import (
	"context"

	"github.com/pdiddy/scoreconv/pkg/types"
)

// Document is a loaded input document. It is owned by exactly one job for
// the duration of its conversion and must be closed when the job finishes,
// on every exit path.
type Document interface {
	// Title returns the document's display title.
	Title() string

	// Parts returns the document's parts in declaration order. The slice
	// and its elements are read-only from the caller's perspective.
	Parts() []Part

	// PageCount returns the number of pages the document lays out.
	PageCount() int

	// SetSoundProfile clears per-track input parameters and activates the
	// named sound profile.
	SetSoundProfile(profile string)

	// Transpose applies the given transposition to the document in place.
	Transpose(opts types.TransposeOptions) error

	// SaveNative writes the document in its own on-disk format, bypassing
	// the writer registry.
	SaveNative(path string) error

	// Close releases the document. Safe to call exactly once.
	Close() error
}

// Part is one named, ordered element of a document's part list.
type Part interface {
	// Name returns the part's display name, used for templated output
	// path substitution.
	Name() string

	// Doc returns a document view scoped to this part, suitable for
	// passing to a writer.
	Doc() Document
}

// Loader opens an input path into a Document. stylePath, when non-empty,
// names a style overlay applied on load. force bypasses version and
// compatibility checks.
type Loader interface {
	Load(ctx context.Context, path, stylePath string, force bool) (Document, error)
}
