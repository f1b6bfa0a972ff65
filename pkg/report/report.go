// Package report aggregates per-step outcomes and renders the final
// run summary. The summary reflects what actually happened, not the
// static configuration: optional steps can fail or be skipped
// independently.
package report

import (
	"github.com/riceup/riceup/pkg/plan"
)

// Status is the recorded outcome for one step.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result captures the outcome of a single step.
type Result struct {
	ID       string
	Kind     plan.Kind
	Severity plan.Severity
	Target   string
	Desc     string
	Status   Status
	Message  string
	Err      error
}

// Report is the accumulated run outcome.
type Report struct {
	Vendor  string
	DryRun  bool
	Results []Result

	// Aborted is set when a required step failed and the rest of the
	// plan did not run.
	Aborted bool

	// Backups lists every file preserved before overwrite.
	Backups []string
}

// Add appends a result.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Counts tallies results per status.
func (r *Report) Counts() (done, skipped, failed int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusDone:
			done++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return done, skipped, failed
}

// Failed reports whether any required step failed; this decides the
// process exit code.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFailed && res.Severity == plan.Required {
			return true
		}
	}
	return false
}

// Warnings returns the failed optional results, surfaced prominently
// in the summary so they are never silently swallowed.
func (r *Report) Warnings() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed && res.Severity == plan.Optional {
			out = append(out, res)
		}
	}
	return out
}
