// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "gitlab.com/tozd/go/errors"

// Failure codes for the conversion pipeline. Per-job codes are collected
// by the batch runner without aborting the batch; ErrBatchJobFileOpen,
// ErrBatchJobFileParse, and transpose parse errors abort the batch before
// any job runs.
var (
	// ErrBatchJobFileOpen: the batch job file could not be read.
	ErrBatchJobFileOpen = errors.New("failed to open batch job file")

	// ErrBatchJobFileParse: the batch job file is not a well-formed job array.
	ErrBatchJobFileParse = errors.New("failed to parse batch job file")

	// ErrConvertTypeUnknown: no writer is registered for the output suffix.
	ErrConvertTypeUnknown = errors.New("unknown conversion type")

	// ErrInFileFailedLoad: the input document failed to load. Loader error
	// detail is logged and discarded; callers always see this code.
	ErrInFileFailedLoad = errors.New("failed to load input file")

	// ErrOutFileFailedOpen: an output file could not be opened for writing.
	ErrOutFileFailedOpen = errors.New("failed to open output file")

	// ErrOutFileFailedWrite: a writer reported an error.
	ErrOutFileFailedWrite = errors.New("failed to write output file")

	// ErrConvertFailed: batch aggregate; at least one job failed.
	ErrConvertFailed = errors.New("convert failed")

	// ErrNotSupported: part conversion was requested for an output kind
	// that cannot be split per part.
	ErrNotSupported = errors.New("part conversion is not supported for this format")
)
