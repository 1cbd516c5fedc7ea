// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/scoreconv/internal/notation"
	"github.com/pdiddy/scoreconv/pkg/types"
)

// fakeDoc implements notation.Document for dispatcher tests.
type fakeDoc struct {
	title        string
	pages        int
	parts        []*fakePart
	profile      string
	transposed   []types.TransposeOptions
	transposeErr error
	saved        []string
	closed       int
}

func (d *fakeDoc) Title() string { return d.title }

func (d *fakeDoc) Parts() []notation.Part {
	out := make([]notation.Part, len(d.parts))
	for i, p := range d.parts {
		out[i] = p
	}
	return out
}

func (d *fakeDoc) PageCount() int { return d.pages }

func (d *fakeDoc) SetSoundProfile(profile string) { d.profile = profile }

func (d *fakeDoc) Transpose(opts types.TransposeOptions) error {
	if d.transposeErr != nil {
		return d.transposeErr
	}
	d.transposed = append(d.transposed, opts)
	return nil
}

func (d *fakeDoc) SaveNative(path string) error {
	d.saved = append(d.saved, path)
	return nil
}

func (d *fakeDoc) Close() error {
	d.closed++
	return nil
}

type fakePart struct {
	name string
	doc  *fakeDoc
}

func (p *fakePart) Name() string { return p.name }

func (p *fakePart) Doc() notation.Document { return p.doc }

type fakeLoader struct {
	doc   *fakeDoc
	err   error
	loads int
}

func (l *fakeLoader) Load(ctx context.Context, path, stylePath string, force bool) (notation.Document, error) {
	l.loads++
	if l.err != nil {
		return nil, l.err
	}
	return l.doc, nil
}

type writeCall struct {
	docTitle string
	path     string
	dirMeta  string
	page     int
	unit     notation.UnitType
}

// fakeWriter records write calls and fails on the failAt-th call (1-based).
type fakeWriter struct {
	failAt int
	calls  []writeCall
	trace  *[]string
}

func (w *fakeWriter) Write(ctx context.Context, doc notation.Document, out *notation.OutFile, opts notation.Options) error {
	w.calls = append(w.calls, writeCall{
		docTitle: doc.Title(),
		path:     out.Meta(notation.MetaFilePath),
		dirMeta:  out.Meta(notation.MetaDirPath),
		page:     opts.PageNumber(),
		unit:     opts.Unit(),
	})
	if w.trace != nil {
		*w.trace = append(*w.trace, "write")
	}
	if w.failAt == len(w.calls) {
		return errors.New("writer exploded")
	}
	return nil
}

type fakeExtensions struct {
	err   error
	uris  []string
	trace *[]string
}

func (e *fakeExtensions) Perform(ctx context.Context, uri string, doc notation.Document) error {
	e.uris = append(e.uris, uri)
	if e.trace != nil {
		*e.trace = append(*e.trace, "ext")
	}
	return e.err
}

// newTestConverter wires a converter with one writer registered for each
// given suffix and "scr" as the native-save kind.
func newTestConverter(loader *fakeLoader, writer *fakeWriter, ext notation.ExtensionRunner, suffixes ...string) *Converter {
	registry := notation.NewRegistry()
	for _, s := range suffixes {
		registry.Register(s, writer)
	}
	return New(loader, registry, ext, "scr")
}

func TestDecideStrategy(t *testing.T) {
	tests := []struct {
		name                                        string
		templated, hasExtension, native, paginated bool
		want                                        Strategy
	}{
		{"default is whole document", false, false, false, false, StrategyWholeDocument},
		{"page segmented kind", false, false, false, true, StrategyPageByPage},
		{"native save", false, false, true, false, StrategyNativeSave},
		{"extension", false, true, false, false, StrategyExtension},
		{"template", true, false, false, false, StrategyPerPart},
		{"template beats extension", true, true, false, false, StrategyPerPart},
		{"extension beats native save", false, true, true, false, StrategyExtension},
		{"native save beats pagination", false, false, true, true, StrategyNativeSave},
		{"extension beats pagination", false, true, false, true, StrategyExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decideStrategy(tt.templated, tt.hasExtension, tt.native, tt.paginated)
			if got != tt.want {
				t.Errorf("decideStrategy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnknownTypeFailsBeforeLoad(t *testing.T) {
	loader := &fakeLoader{doc: &fakeDoc{title: "Quartet", pages: 1}}
	conv := newTestConverter(loader, &fakeWriter{}, nil, "pdf")

	job := types.Job{In: "a.scr", Out: types.SingleOutput("a.xyz")}
	err := conv.ConvertFile(context.Background(), job, types.ConvertConfig{})

	if !errors.Is(err, ErrConvertTypeUnknown) {
		t.Fatalf("error = %v, want ErrConvertTypeUnknown", err)
	}
	if !strings.Contains(err.Error(), "supported: pdf") {
		t.Errorf("error %q does not list the registered formats", err)
	}
	if loader.loads != 0 {
		t.Errorf("loader called %d times before writer lookup succeeded, want 0", loader.loads)
	}
}

func TestLoadFailureIsRemapped(t *testing.T) {
	loader := &fakeLoader{err: errors.New("disk sector vanished")}
	conv := newTestConverter(loader, &fakeWriter{}, nil, "pdf")

	job := types.Job{In: "a.scr", Out: types.SingleOutput(filepath.Join(t.TempDir(), "a.pdf"))}
	err := conv.ConvertFile(context.Background(), job, types.ConvertConfig{})

	if !errors.Is(err, ErrInFileFailedLoad) {
		t.Fatalf("error = %v, want ErrInFileFailedLoad", err)
	}
	// Loader detail is logged, not propagated.
	if strings.Contains(err.Error(), "disk sector") {
		t.Errorf("error %q leaks loader detail", err)
	}
}

func TestTransposeErrorPropagatesVerbatim(t *testing.T) {
	transposeErr := errors.New("interval out of range")
	doc := &fakeDoc{title: "Quartet", pages: 1, transposeErr: transposeErr}
	loader := &fakeLoader{doc: doc}
	writer := &fakeWriter{}
	conv := newTestConverter(loader, writer, nil, "pdf")

	job := types.Job{
		In:        "a.scr",
		Out:       types.SingleOutput(filepath.Join(t.TempDir(), "a.pdf")),
		Transpose: &types.TransposeOptions{Mode: types.TransposeByInterval, Direction: types.TransposeUp, Interval: 99},
	}
	err := conv.ConvertFile(context.Background(), job, types.ConvertConfig{})

	if !errors.Is(err, transposeErr) {
		t.Fatalf("error = %v, want the collaborator's own error", err)
	}
	if len(writer.calls) != 0 {
		t.Error("writer was called after transpose failed")
	}
	if doc.closed != 1 {
		t.Errorf("document closed %d times, want 1", doc.closed)
	}
}

func TestWholeDocumentConversion(t *testing.T) {
	doc := &fakeDoc{title: "Quartet", pages: 3}
	loader := &fakeLoader{doc: doc}
	writer := &fakeWriter{}
	conv := newTestConverter(loader, writer, nil, "pdf")

	out := filepath.Join(t.TempDir(), "quartet.pdf")
	job := types.Job{In: "a.scr", Out: types.SingleOutput(out)}
	cfg := types.ConvertConfig{SoundProfile: "chamber"}

	if err := conv.ConvertFile(context.Background(), job, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(writer.calls) != 1 {
		t.Fatalf("writer called %d times, want 1", len(writer.calls))
	}
	call := writer.calls[0]
	if call.path != out || call.page != -1 || call.unit != notation.UnitWholeDocument {
		t.Errorf("write call = %+v", call)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file not created: %v", err)
	}
	if doc.profile != "chamber" {
		t.Errorf("sound profile = %q, want %q", doc.profile, "chamber")
	}
	if doc.closed != 1 {
		t.Errorf("document closed %d times, want 1", doc.closed)
	}
}

func TestNativeSaveBypassesRegistry(t *testing.T) {
	doc := &fakeDoc{title: "Quartet", pages: 1}
	loader := &fakeLoader{doc: doc}
	// No writer registered at all: native kinds must not need one.
	conv := New(loader, notation.NewRegistry(), nil, "scr")

	out := filepath.Join(t.TempDir(), "copy.scr")
	job := types.Job{In: "a.scr", Out: types.SingleOutput(out)}

	if err := conv.ConvertFile(context.Background(), job, types.ConvertConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.saved) != 1 || doc.saved[0] != out {
		t.Errorf("saved = %v, want [%s]", doc.saved, out)
	}
}

func TestExtensionRunsBeforeWrite(t *testing.T) {
	var trace []string
	doc := &fakeDoc{title: "Quartet", pages: 1}
	loader := &fakeLoader{doc: doc}
	writer := &fakeWriter{trace: &trace}
	ext := &fakeExtensions{trace: &trace}
	conv := newTestConverter(loader, writer, ext, "pdf")

	out := filepath.Join(t.TempDir(), "a.pdf")
	job := types.Job{In: "a.scr", Out: types.SingleOutput(out)}
	cfg := types.ConvertConfig{ExtensionURI: "ext://reharmonize?style=jazz"}

	if err := conv.ConvertFile(context.Background(), job, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ext.uris) != 1 || ext.uris[0] != cfg.ExtensionURI {
		t.Errorf("extension uris = %v", ext.uris)
	}
	want := []string{"ext", "write"}
	if len(trace) != 2 || trace[0] != want[0] || trace[1] != want[1] {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}

func TestExtensionFailureAbortsJob(t *testing.T) {
	extErr := errors.New("extension crashed")
	doc := &fakeDoc{title: "Quartet", pages: 1}
	writer := &fakeWriter{}
	conv := newTestConverter(&fakeLoader{doc: doc}, writer, &fakeExtensions{err: extErr}, "pdf")

	job := types.Job{In: "a.scr", Out: types.SingleOutput(filepath.Join(t.TempDir(), "a.pdf"))}
	err := conv.ConvertFile(context.Background(), job, types.ConvertConfig{ExtensionURI: "ext://broken"})

	if !errors.Is(err, extErr) {
		t.Fatalf("error = %v, want extension error propagated", err)
	}
	if len(writer.calls) != 0 {
		t.Error("writer was called after extension failed")
	}
}
