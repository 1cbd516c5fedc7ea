// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render provides the reference writers registered by the CLI:
// text and JSON document export, per-page PNG and SVG rasters, and an
// exec-backed audio encoder. They exist to exercise the conversion
// pipeline end to end, not to be faithful format encoders.
package render

import (
	"context"
	"encoding/json"
	"fmt"

	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/internal/notation"
	"github.com/pdiddy/scoreconv/internal/score"
)

// NewDefaultRegistry builds the writer registry the CLI starts from.
func NewDefaultRegistry() *notation.Registry {
	r := notation.NewRegistry()
	doc := &DocWriter{}
	r.Register("txt", doc)
	r.Register("pdf", doc)
	r.Register("json", &MetaWriter{})
	r.Register("png", &PageImageWriter{})
	r.Register("svg", &PageSVGWriter{})
	r.Register("mp3", &AudioWriter{})
	return r
}

// DocWriter serializes a document (or one part of it) as plain text.
type DocWriter struct{}

func (w *DocWriter) Write(ctx context.Context, doc notation.Document, out *notation.OutFile, opts notation.Options) error {
	if _, err := fmt.Fprintf(out, "%s\n", doc.Title()); err != nil {
		return errors.Errorf("writing document text: %w", err)
	}
	if opts.Unit() == notation.UnitPerPart {
		fmt.Fprintln(out, "(part)")
	}
	fmt.Fprintf(out, "pages: %d\n\n", doc.PageCount())

	if sd, ok := doc.(*score.Document); ok {
		for _, line := range sd.Lines() {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return errors.Errorf("writing document text: %w", err)
			}
		}
	}
	return nil
}

// docMeta is the JSON shape MetaWriter emits.
type docMeta struct {
	Title        string     `json:"title"`
	Pages        int        `json:"pages"`
	Parts        []partMeta `json:"parts,omitempty"`
	SoundProfile string     `json:"sound_profile,omitempty"`
	PerPart      bool       `json:"per_part,omitempty"`
}

type partMeta struct {
	Name  string `json:"name"`
	Pages int    `json:"pages"`
}

// MetaWriter exports document metadata as JSON.
type MetaWriter struct{}

func (w *MetaWriter) Write(ctx context.Context, doc notation.Document, out *notation.OutFile, opts notation.Options) error {
	meta := docMeta{
		Title:   doc.Title(),
		Pages:   doc.PageCount(),
		PerPart: opts.Unit() == notation.UnitPerPart,
	}
	for _, p := range doc.Parts() {
		meta.Parts = append(meta.Parts, partMeta{Name: p.Name(), Pages: p.Doc().PageCount()})
	}
	if sd, ok := doc.(*score.Document); ok {
		meta.SoundProfile = sd.SoundProfile()
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.Errorf("marshaling document metadata: %w", err)
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return errors.Errorf("writing document metadata: %w", err)
	}
	return nil
}
