// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the single-job conversion dispatcher: it
// resolves the requested output kind, picks a conversion strategy, and
// drives the writer collaborator. Batch iteration lives in internal/batch.
package convert

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/internal/notation"
	"github.com/pdiddy/scoreconv/pkg/types"
)

// Output suffixes the dispatcher special-cases. Any other registered
// suffix gets whole-document handling.
const (
	suffixPDF = "pdf"
	suffixPNG = "png"
	suffixSVG = "svg"
	suffixMP3 = "mp3"
)

// isPageSegmented reports whether the output kind produces one file per
// page instead of one file per document.
func isPageSegmented(suffix string) bool {
	return suffix == suffixPNG || suffix == suffixSVG
}

// Strategy identifies how one job's output request is fulfilled.
type Strategy int

const (
	StrategyPerPart Strategy = iota
	StrategyExtension
	StrategyNativeSave
	StrategyPageByPage
	StrategyWholeDocument
)

// decideStrategy is the decision table for a job's request shape. The
// cases are evaluated in fixed precedence: part template beats extension,
// extension beats native save, native save beats page segmentation.
func decideStrategy(templated, hasExtension, isNative, pageSegmented bool) Strategy {
	switch {
	case templated:
		return StrategyPerPart
	case hasExtension:
		return StrategyExtension
	case isNative:
		return StrategyNativeSave
	case pageSegmented:
		return StrategyPageByPage
	default:
		return StrategyWholeDocument
	}
}

// Converter dispatches single conversion jobs to the loader, writer, and
// extension collaborators.
type Converter struct {
	loader  notation.Loader
	writers *notation.Registry
	ext     notation.ExtensionRunner
	natives map[string]struct{}
}

// New creates a Converter. nativeSuffixes lists the output kinds handled
// by the document's own save operation instead of a registered writer.
// ext may be nil when no extension facility is wired.
func New(loader notation.Loader, writers *notation.Registry, ext notation.ExtensionRunner, nativeSuffixes ...string) *Converter {
	natives := make(map[string]struct{}, len(nativeSuffixes))
	for _, s := range nativeSuffixes {
		natives[s] = struct{}{}
	}
	return &Converter{loader: loader, writers: writers, ext: ext, natives: natives}
}

func (c *Converter) isNative(suffix string) bool {
	_, ok := c.natives[suffix]
	return ok
}

// ConvertFile runs one job end to end. The loaded document is owned by
// this call alone and released on every exit path. The first failure at
// any stage aborts the job; partial output files are not cleaned up.
func (c *Converter) ConvertFile(ctx context.Context, job types.Job, cfg types.ConvertConfig) error {
	log := zerolog.Ctx(ctx)
	log.Info().Str("in", job.In).Str("out", job.Out.String()).Msg("converting")

	suffix := job.Out.Suffix()
	isNative := c.isNative(suffix)

	// Writer lookup happens before the input is loaded so that an unknown
	// output kind fails without touching the input. Native-save kinds
	// bypass the registry entirely.
	var writer notation.Writer
	if !isNative {
		w, ok := c.writers.Lookup(suffix)
		if !ok {
			return errors.Errorf("%w: %q (supported: %s)",
				ErrConvertTypeUnknown, suffix, strings.Join(c.writers.Suffixes(), ", "))
		}
		writer = w
	}

	doc, err := c.loader.Load(ctx, job.In, cfg.StylePath, cfg.ForceMode)
	if err != nil {
		// Loader detail is logged and discarded; every load failure
		// surfaces as the same code.
		log.Error().Err(err).Str("path", job.In).Msg("failed to load input")
		return errors.Errorf("%w: %s", ErrInFileFailedLoad, job.In)
	}
	defer doc.Close()

	if cfg.SoundProfile != "" {
		doc.SetSoundProfile(cfg.SoundProfile)
	}

	if job.Transpose != nil {
		if err := doc.Transpose(*job.Transpose); err != nil {
			log.Error().Err(err).Msg("failed to apply transposition")
			return err
		}
	}

	switch decideStrategy(job.Out.IsTemplated(), cfg.ExtensionURI != "", isNative, isPageSegmented(suffix)) {
	case StrategyPerPart:
		return c.convertParts(ctx, writer, doc, job.Out)
	case StrategyExtension:
		return c.convertByExtension(ctx, writer, doc, job.Out.Path(), cfg.ExtensionURI)
	case StrategyNativeSave:
		return doc.SaveNative(job.Out.Path())
	case StrategyPageByPage:
		return c.convertPages(ctx, writer, doc, job.Out.Path())
	default:
		return c.convertWhole(ctx, writer, doc, job.Out.Path())
	}
}

// convertByExtension runs the extension first (it may mutate the document)
// and then performs a single whole-document write. When the output kind is
// a native-save kind there is no registered writer; the mutated document
// is saved natively instead.
func (c *Converter) convertByExtension(ctx context.Context, writer notation.Writer, doc notation.Document, out, extensionURI string) error {
	if c.ext == nil {
		return errors.New("no extension runner configured")
	}
	if err := c.ext.Perform(ctx, extensionURI, doc); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("extension", extensionURI).Msg("extension failed")
		return err
	}

	if writer == nil {
		return doc.SaveNative(out)
	}
	return c.convertWhole(ctx, writer, doc, out)
}
