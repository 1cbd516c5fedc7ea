// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/internal/notation"
	"github.com/pdiddy/scoreconv/pkg/types"
)

// convertParts produces one output per part of the document, in part
// declaration order. Only document export (pdf), page-image export (png),
// and audio export (mp3) support part splitting. The first failing part
// aborts the remaining parts of the job.
func (c *Converter) convertParts(ctx context.Context, writer notation.Writer, doc notation.Document, out types.OutputSpec) error {
	switch out.Suffix() {
	case suffixPDF, suffixMP3:
		return c.convertPartsWhole(ctx, writer, doc, out)
	case suffixPNG:
		return c.convertPartsPages(ctx, writer, doc, out)
	}
	return errors.Errorf("%w: %q", ErrNotSupported, out.Suffix())
}

// convertPartsWhole writes each part as one artifact with the per-part
// unit option set.
func (c *Converter) convertPartsWhole(ctx context.Context, writer notation.Writer, doc notation.Document, out types.OutputSpec) error {
	for _, part := range doc.Parts() {
		outPath := out.ForPart(part.Name())

		f, err := notation.CreateOutFile(outPath)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("path", outPath).Msg("failed to open output")
			return errors.Errorf("%w: %s", ErrOutFileFailedOpen, outPath)
		}

		opts := notation.Options{notation.OptionUnitType: notation.UnitPerPart}
		err = writer.Write(ctx, part.Doc(), f, opts)
		f.Close()
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("path", outPath).Msg("failed to write part")
			return errors.Errorf("%w: %s", ErrOutFileFailedWrite, outPath)
		}
	}
	return nil
}

// convertPartsPages expands each part to one page-segmented output set.
func (c *Converter) convertPartsPages(ctx context.Context, writer notation.Writer, doc notation.Document, out types.OutputSpec) error {
	for _, part := range doc.Parts() {
		if err := c.convertPages(ctx, writer, part.Doc(), out.ForPart(part.Name())); err != nil {
			return err
		}
	}
	return nil
}
