// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scoreconv/internal/notation"
	"github.com/pdiddy/scoreconv/internal/score"
)

func testDoc() *score.Document {
	return score.NewDocument(&score.File{
		Version:      score.CurrentVersion,
		Title:        "Quartet in D",
		SoundProfile: "chamber",
		Pages:        2,
		Parts: []score.PartData{
			{Name: "Violin", Pages: 1, Lines: []string{"v1", "v2"}},
			{Name: "Cello", Pages: 1, Lines: []string{"c1"}},
		},
	})
}

// renderTo runs w against a fresh out file and returns the written bytes.
func renderTo(t *testing.T, w notation.Writer, doc notation.Document, opts notation.Options) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out")
	out, err := notation.CreateOutFile(path)
	require.NoError(t, err)

	err = w.Write(context.Background(), doc, out, opts)
	require.NoError(t, out.Close())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	for _, suffix := range []string{"txt", "pdf", "json", "png", "svg", "mp3"} {
		w, ok := r.Lookup(suffix)
		assert.True(t, ok, suffix)
		assert.NotNil(t, w, suffix)
	}
	_, ok := r.Lookup("docx")
	assert.False(t, ok)

	assert.Equal(t, []string{"json", "mp3", "pdf", "png", "svg", "txt"}, r.Suffixes())
}

func TestDocWriter(t *testing.T) {
	got := string(renderTo(t, &DocWriter{}, testDoc(), nil))

	assert.True(t, strings.HasPrefix(got, "Quartet in D\n"))
	assert.Contains(t, got, "pages: 2")
	assert.Contains(t, got, "v2\n")
	assert.Contains(t, got, "c1\n")
	assert.NotContains(t, got, "(part)")
}

func TestDocWriterPerPart(t *testing.T) {
	part := testDoc().Parts()[0].Doc()
	opts := notation.Options{notation.OptionUnitType: notation.UnitPerPart}

	got := string(renderTo(t, &DocWriter{}, part, opts))

	assert.True(t, strings.HasPrefix(got, "Violin\n(part)\n"))
	assert.Contains(t, got, "v1\n")
	assert.NotContains(t, got, "c1")
}

func TestMetaWriter(t *testing.T) {
	got := renderTo(t, &MetaWriter{}, testDoc(), nil)

	var meta docMeta
	require.NoError(t, json.Unmarshal(got, &meta))

	assert.Equal(t, "Quartet in D", meta.Title)
	assert.Equal(t, 2, meta.Pages)
	assert.Equal(t, "chamber", meta.SoundProfile)
	assert.False(t, meta.PerPart)
	require.Len(t, meta.Parts, 2)
	assert.Equal(t, partMeta{Name: "Cello", Pages: 1}, meta.Parts[1])
}

func TestPageImageWriter(t *testing.T) {
	opts := notation.Options{notation.OptionPageNumber: 1}

	first := renderTo(t, &PageImageWriter{}, testDoc(), opts)
	second := renderTo(t, &PageImageWriter{}, testDoc(), opts)
	assert.Equal(t, first, second, "page raster must be reproducible")

	img, err := png.Decode(bytes.NewReader(first))
	require.NoError(t, err)
	assert.Equal(t, pageWidth, img.Bounds().Dx())
	assert.Equal(t, pageHeight, img.Bounds().Dy())

	other := renderTo(t, &PageImageWriter{}, testDoc(), notation.Options{notation.OptionPageNumber: 0})
	assert.NotEqual(t, first, other, "different pages render differently")
}

func TestPageImageWriterOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	out, err := notation.CreateOutFile(path)
	require.NoError(t, err)
	defer out.Close()

	err = (&PageImageWriter{}).Write(context.Background(), testDoc(), out, notation.Options{notation.OptionPageNumber: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestPageSVGWriter(t *testing.T) {
	got := string(renderTo(t, &PageSVGWriter{}, testDoc(), notation.Options{notation.OptionPageNumber: 1}))

	assert.Contains(t, got, "<svg")
	assert.Contains(t, got, "Quartet in D, page 2")
}

func TestAudioWriterRaw(t *testing.T) {
	doc := score.NewDocument(&score.File{
		Version: score.CurrentVersion,
		Title:   "Solo",
		Pages:   1,
		Parts:   []score.PartData{{Name: "A", Pages: 1, Lines: []string{"ab"}}},
	})

	got := renderTo(t, &AudioWriter{}, doc, nil)
	assert.Equal(t, []byte{'S', 'C', 'A', '1', 'a', 'b', 0}, got)
}

func TestAudioWriterTransposed(t *testing.T) {
	f := &score.File{
		Version:       score.CurrentVersion,
		Title:         "Solo",
		Pages:         1,
		Transposition: 2,
		Parts:         []score.PartData{{Name: "A", Pages: 1, Lines: []string{"ab"}}},
	}

	got := renderTo(t, &AudioWriter{}, score.NewDocument(f), nil)
	assert.Equal(t, []byte{'S', 'C', 'A', '1', 'a' + 2, 'b' + 2, 0}, got)
}

func TestAudioWriterEncoder(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	doc := score.NewDocument(&score.File{
		Version: score.CurrentVersion,
		Title:   "Solo",
		Pages:   1,
		Parts:   []score.PartData{{Name: "A", Pages: 1, Lines: []string{"x"}}},
	})

	// cat passes the sample stream through untouched.
	got := renderTo(t, &AudioWriter{Encoder: "cat"}, doc, nil)
	assert.Equal(t, []byte{'S', 'C', 'A', '1', 'x', 0}, got)
}

func TestAudioWriterEncoderMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mp3")
	out, err := notation.CreateOutFile(path)
	require.NoError(t, err)
	defer out.Close()

	err = (&AudioWriter{Encoder: "no-such-encoder-binary"}).Write(context.Background(), testDoc(), out, nil)
	require.Error(t, err)
}
