// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/internal/notation"
	"github.com/pdiddy/scoreconv/pkg/types"
)

// Document adapts a File to the notation.Document contract. A Document
// either views the whole score (part == -1) or one part of it.
type Document struct {
	file *File
	part int
}

var _ notation.Document = (*Document)(nil)

// NewDocument wraps an in-memory File as a whole-document view.
func NewDocument(f *File) *Document {
	return &Document{file: f, part: -1}
}

// Title returns the score title, or the part name for a part view.
func (d *Document) Title() string {
	if d.part >= 0 {
		return d.file.Parts[d.part].Name
	}
	return d.file.Title
}

// Parts returns the score's parts in declaration order. A part view has
// no parts of its own.
func (d *Document) Parts() []notation.Part {
	if d.part >= 0 {
		return nil
	}
	parts := make([]notation.Part, len(d.file.Parts))
	for i := range d.file.Parts {
		parts[i] = &partView{doc: &Document{file: d.file, part: i}}
	}
	return parts
}

// PageCount returns the page count of the whole score or of the viewed
// part.
func (d *Document) PageCount() int {
	if d.part >= 0 {
		return d.file.Parts[d.part].Pages
	}
	return d.file.Pages
}

// SetSoundProfile clears per-part input parameters and activates the
// named profile.
func (d *Document) SetSoundProfile(profile string) {
	for i := range d.file.Parts {
		d.file.Parts[i].InputParams = nil
	}
	d.file.SoundProfile = profile
}

// Transpose shifts the score by the interval the options describe. The
// shift is recorded as an absolute semitone offset on the file.
func (d *Document) Transpose(opts types.TransposeOptions) error {
	delta, err := semitones(d.file, opts)
	if err != nil {
		return err
	}
	d.file.Transposition += delta
	return nil
}

// SaveNative writes the score in its own format, selected by the
// destination suffix.
func (d *Document) SaveNative(path string) error {
	return save(path, d.file)
}

// Close releases the document.
func (d *Document) Close() error {
	d.file = nil
	return nil
}

// Lines returns the rendered notation lines of the viewed part, or of all
// parts in order for a whole-document view.
func (d *Document) Lines() []string {
	if d.part >= 0 {
		return d.file.Parts[d.part].Lines
	}
	var lines []string
	for _, p := range d.file.Parts {
		lines = append(lines, p.Lines...)
	}
	return lines
}

// SoundProfile returns the active sound profile name.
func (d *Document) SoundProfile() string {
	return d.file.SoundProfile
}

// Transposition returns the accumulated semitone offset.
func (d *Document) Transposition() int {
	return d.file.Transposition
}

// partView satisfies notation.Part.
type partView struct {
	doc *Document
}

func (p *partView) Name() string { return p.doc.file.Parts[p.doc.part].Name }

func (p *partView) Doc() notation.Document { return p.doc }

// keyNumbers maps key names to semitone offsets from C.
var keyNumbers = map[string]int{
	"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3, "E": 4, "F": 5,
	"F#": 6, "Gb": 6, "G": 7, "G#": 8, "Ab": 8, "A": 9, "A#": 10,
	"Bb": 10, "B": 11,
}

// semitones computes the signed semitone shift for the given options.
// Interval modes apply the interval directly, signed by direction. Key mode
// shifts toward the target key; direction picks which of the two octave
// neighbours to use.
func semitones(f *File, opts types.TransposeOptions) (int, error) {
	switch opts.Mode {
	case types.TransposeByInterval, types.TransposeDiatonically:
		delta := opts.Interval
		if opts.Direction == types.TransposeDown {
			delta = -delta
		}
		return delta, nil

	case types.TransposeByKey:
		n, ok := keyNumbers[opts.TargetKey]
		if !ok {
			return 0, errors.Errorf("unknown target key %q", opts.TargetKey)
		}
		delta := n - ((f.Transposition%12)+12)%12

		switch opts.Direction {
		case types.TransposeUp:
			if delta <= 0 {
				delta += 12
			}
		case types.TransposeDown:
			if delta >= 0 {
				delta -= 12
			}
		case types.TransposeClosest:
			if delta > 6 {
				delta -= 12
			} else if delta < -6 {
				delta += 12
			}
		default:
			return 0, errors.Errorf("unknown transpose direction %q", opts.Direction)
		}
		return delta, nil
	}

	return 0, errors.Errorf("unknown transpose mode %q", opts.Mode)
}
