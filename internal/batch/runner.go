// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/internal/convert"
	"github.com/pdiddy/scoreconv/pkg/types"
)

// Progress receives batch lifecycle callbacks. Implementations may run
// arbitrary code between jobs; the runner never calls them concurrently.
type Progress interface {
	Start()

	// Progress reports the 1-based index of the job about to run, the
	// total job count, and the job's input path.
	Progress(current, total int64, label string)

	// Finish receives the final aggregate outcome exactly once per run:
	// nil on full success, the aggregate error otherwise.
	Finish(err error)
}

// JobConverter converts one job. Satisfied by *convert.Converter.
type JobConverter interface {
	ConvertFile(ctx context.Context, job types.Job, cfg types.ConvertConfig) error
}

// Runner iterates jobs in declaration order. One failing job never aborts
// the rest; failures are collected and reported once, at the end.
type Runner struct {
	converter JobConverter
}

// NewRunner creates a Runner driving the given converter.
func NewRunner(c JobConverter) *Runner {
	return &Runner{converter: c}
}

// RunFile parses a batch job file and runs it. progress may be nil.
func (r *Runner) RunFile(ctx context.Context, jobFile string, cfg types.ConvertConfig, progress Progress) (types.BatchResult, error) {
	if progress != nil {
		progress.Start()
	}

	jobs, err := ParseJobFile(jobFile)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("path", jobFile).Msg("failed to parse batch job file")
		if progress != nil {
			progress.Finish(err)
		}
		return types.BatchResult{}, err
	}

	return r.run(ctx, jobs, cfg, progress)
}

// Run processes pre-parsed jobs. progress may be nil.
func (r *Runner) Run(ctx context.Context, jobs []types.Job, cfg types.ConvertConfig, progress Progress) (types.BatchResult, error) {
	if progress != nil {
		progress.Start()
	}
	return r.run(ctx, jobs, cfg, progress)
}

func (r *Runner) run(ctx context.Context, jobs []types.Job, cfg types.ConvertConfig, progress Progress) (types.BatchResult, error) {
	log := zerolog.Ctx(ctx)
	result := types.BatchResult{OK: true, Total: len(jobs)}
	total := int64(len(jobs))

	for i, job := range jobs {
		// Cancellation is cooperative and checked between jobs only;
		// aborting a partially written output file is unsafe.
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.OK = false
			err := errors.Errorf("batch canceled after %d of %d jobs: %w", i, total, ctxErr)
			if progress != nil {
				progress.Finish(err)
			}
			return result, err
		}

		if progress != nil {
			progress.Progress(int64(i+1), total, job.In)
		}

		if err := r.converter.ConvertFile(ctx, job, cfg); err != nil {
			log.Error().Err(err).Str("in", job.In).Str("out", job.Out.String()).Msg("job failed")
			result.Errors = append(result.Errors, types.JobError{
				In:      job.In,
				Out:     job.Out.String(),
				Message: fmt.Sprintf("failed convert, err: %s, in: %s, out: %s", err, job.In, job.Out),
			})
		}
	}

	var err error
	if len(result.Errors) > 0 {
		result.OK = false
		err = errors.Errorf("%w:\n%s", convert.ErrConvertFailed, result.ErrorText())
	}
	if progress != nil {
		progress.Finish(err)
	}
	return result, err
}
