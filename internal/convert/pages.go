// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/internal/notation"
)

// convertPages writes one file per page. File names carry a 1-based page
// number; the writer option carries the 0-based index. Stops at the first
// write failure.
func (c *Converter) convertPages(ctx context.Context, writer notation.Writer, doc notation.Document, out string) error {
	for i := 0; i < doc.PageCount(); i++ {
		pagePath := PagePath(out, i+1)

		f, err := notation.CreateOutFile(pagePath)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("path", pagePath).Msg("failed to open output")
			return errors.Errorf("%w: %s", ErrOutFileFailedOpen, pagePath)
		}
		f.SetMeta(notation.MetaDirPath, out)

		opts := notation.Options{notation.OptionPageNumber: i}
		err = writer.Write(ctx, doc, f, opts)
		f.Close()
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("path", pagePath).Msg("failed to write page")
			return errors.Errorf("%w: %s", ErrOutFileFailedWrite, pagePath)
		}
	}
	return nil
}
