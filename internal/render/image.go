// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"

	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/internal/notation"
)

// Page raster dimensions, a rough A4 aspect ratio.
const (
	pageWidth  = 420
	pageHeight = 594
)

// PageImageWriter renders one page as a PNG. The pixel pattern is derived
// deterministically from the document title and the page number, so
// re-running a batch over unchanged inputs reproduces identical bytes.
type PageImageWriter struct{}

func (w *PageImageWriter) Write(ctx context.Context, doc notation.Document, out *notation.OutFile, opts notation.Options) error {
	page := opts.PageNumber()
	if page < 0 {
		page = 0
	}
	if pc := doc.PageCount(); page >= pc {
		return errors.Errorf("page %d out of range (%d pages)", page, pc)
	}

	h := fnv.New32a()
	fmt.Fprintf(h, "%s/%d", doc.Title(), page)
	seed := h.Sum32()

	img := image.NewGray(image.Rect(0, 0, pageWidth, pageHeight))
	for y := 0; y < pageHeight; y++ {
		for x := 0; x < pageWidth; x++ {
			v := uint8(255)
			if (uint32(x*y)+seed)%97 == 0 {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	if err := png.Encode(out, img); err != nil {
		return errors.Errorf("encoding page %d: %w", page, err)
	}
	return nil
}

// PageSVGWriter renders one page as a minimal SVG document.
type PageSVGWriter struct{}

func (w *PageSVGWriter) Write(ctx context.Context, doc notation.Document, out *notation.OutFile, opts notation.Options) error {
	page := opts.PageNumber()
	if page < 0 {
		page = 0
	}
	if pc := doc.PageCount(); page >= pc {
		return errors.Errorf("page %d out of range (%d pages)", page, pc)
	}

	_, err := fmt.Fprintf(out,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n"+
			`  <text x="20" y="40">%s, page %d</text>`+"\n"+
			"</svg>\n",
		pageWidth, pageHeight, doc.Title(), page+1)
	if err != nil {
		return errors.Errorf("writing svg page %d: %w", page, err)
	}
	return nil
}
