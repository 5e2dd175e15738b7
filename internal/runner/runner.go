// Package runner validates query batches, one worker per query.
package runner

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Maharajan0604/CenQuery/internal/report"
	"github.com/Maharajan0604/CenQuery/internal/validate"
)

// Runner fans a batch of queries out over a bounded worker pool. The
// validator is stateless, so workers share it without locking.
type Runner struct {
	validator *validate.Validator
	workers   int
	logger    *slog.Logger
}

// New creates a runner. workers caps concurrent validations; values
// below 1 mean one worker.
func New(v *validate.Validator, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{validator: v, workers: workers, logger: logger}
}

// Run validates every query in the batch. Each result lands in the
// slot matching its query index, so the report ordering is stable no
// matter how the workers interleave.
func (r *Runner) Run(ctx context.Context, queries []string) (*report.Report, error) {
	r.logger.Info("starting validation run", "queries", len(queries), "workers", r.workers)

	results := make([]report.Result, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, query := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			diags := r.validator.Validate(query)
			results[i] = report.Result{
				Index:       i + 1,
				Query:       query,
				Pass:        len(diags) == 0,
				Diagnostics: diags,
			}
			r.logger.Debug("validated query", "index", i+1, "diagnostics", len(diags))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := report.New(results)
	passed, failed := rep.Counts()
	r.logger.Info("validation run finished", "run_id", rep.RunID, "passed", passed, "failed", failed)
	return rep, nil
}
