// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/internal/notation"
)

// convertWhole writes the entire document as one artifact with no special
// options.
func (c *Converter) convertWhole(ctx context.Context, writer notation.Writer, doc notation.Document, out string) error {
	f, err := notation.CreateOutFile(out)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("path", out).Msg("failed to open output")
		return errors.Errorf("%w: %s", ErrOutFileFailedOpen, out)
	}

	err = writer.Write(ctx, doc, f, nil)
	f.Close()
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("path", out).Msg("failed to write output")
		return errors.Errorf("%w: %s", ErrOutFileFailedWrite, out)
	}
	return nil
}
