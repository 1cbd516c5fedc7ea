// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"os/exec"

	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/internal/notation"
	"github.com/pdiddy/scoreconv/internal/score"
)

// AudioWriter exports a document's audio rendition. When Encoder names a
// binary, the rendered samples are piped through it (stdin to stdout) and
// the encoder's output is written to the file; otherwise the raw samples
// are written directly.
type AudioWriter struct {
	// Encoder is the external encoder binary, e.g. "lame". Args are
	// appended after the binary name.
	Encoder string
	Args    []string
}

func (w *AudioWriter) Write(ctx context.Context, doc notation.Document, out *notation.OutFile, opts notation.Options) error {
	samples := renderSamples(doc)

	if w.Encoder == "" {
		if _, err := out.Write(samples); err != nil {
			return errors.Errorf("writing audio: %w", err)
		}
		return nil
	}

	cmd := exec.CommandContext(ctx, w.Encoder, w.Args...)
	cmd.Stdin = bytes.NewReader(samples)
	cmd.Stdout = out
	if err := cmd.Run(); err != nil {
		return errors.Errorf("encoding audio with %s: %w", w.Encoder, err)
	}
	return nil
}

// renderSamples produces a deterministic pseudo-sample stream from the
// document's lines and transposition.
func renderSamples(doc notation.Document) []byte {
	var shift int
	var lines []string
	if sd, ok := doc.(*score.Document); ok {
		shift = sd.Transposition()
		lines = sd.Lines()
	}

	var buf bytes.Buffer
	buf.WriteString("SCA1") // stream marker
	for _, line := range lines {
		for _, r := range line {
			buf.WriteByte(byte((int(r) + shift) & 0xff))
		}
		buf.WriteByte(0)
	}
	return buf.Bytes()
}
