// Package report assembles per-query validation results into a run
// report.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/Maharajan0604/CenQuery/internal/validate"
)

// Result is the outcome for one query. Index is the query's 1-based
// position in the batch.
type Result struct {
	Index       int                   `json:"index"`
	Query       string                `json:"query"`
	Pass        bool                  `json:"pass"`
	Diagnostics []validate.Diagnostic `json:"diagnostics,omitempty"`
}

// Report is the outcome of a validation run. Results are ordered by
// query index regardless of the order workers finished in; only the
// RunID and GeneratedAt stamps vary between runs over the same input.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Results     []Result  `json:"results"`
}

// New wraps results, which must already be in query index order, into
// a report with a fresh run ID.
func New(results []Result) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Results:     results,
	}
}

// AllPass reports whether every query validated cleanly.
func (r *Report) AllPass() bool {
	for _, res := range r.Results {
		if !res.Pass {
			return false
		}
	}
	return true
}

// Counts returns how many queries passed and failed.
func (r *Report) Counts() (passed, failed int) {
	for _, res := range r.Results {
		if res.Pass {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// DiagnosticCount is the total number of diagnostics across the run.
func (r *Report) DiagnosticCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Diagnostics)
	}
	return n
}
