// Package executor walks a provisioning plan top to bottom. It owns
// the failure policy: required step failures abort the remaining plan,
// optional failures are recorded and the run continues.
package executor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/riceup/riceup/pkg/logging"
	"github.com/riceup/riceup/pkg/plan"
	"github.com/riceup/riceup/pkg/report"
)

// Confirmer asks the user whether to proceed past an advisory warning.
type Confirmer interface {
	Confirm(message string) bool
}

// Executor runs plans sequentially. Steps never overlap: every
// external call runs to completion before the next step starts.
type Executor struct {
	dryRun   bool
	confirm  Confirmer
	progress *plan.Progress
	logger   zerolog.Logger
}

// New creates an Executor. progress is the tracker shared with the
// plan's step closures.
func New(progress *plan.Progress, confirm Confirmer, dryRun bool) *Executor {
	return &Executor{
		dryRun:   dryRun,
		confirm:  confirm,
		progress: progress,
		logger:   logging.GetLogger("executor"),
	}
}

// Run executes the plan and returns the accumulated report.
func (e *Executor) Run(ctx context.Context, p *plan.Plan) *report.Report {
	rep := &report.Report{
		Vendor: string(p.Vendor),
		DryRun: e.dryRun,
	}

	aborted := false
	for _, step := range p.Steps {
		res := e.runStep(ctx, step, aborted)
		rep.Add(res)

		if res.Status == report.StatusFailed && step.Severity == plan.Required {
			e.logger.Error().
				Str("step", step.ID).
				Err(res.Err).
				Msg("Required step failed, aborting remaining plan")
			aborted = true
			rep.Aborted = true
		}
	}

	rep.Backups = e.progress.Backups()
	return rep
}

func (e *Executor) runStep(ctx context.Context, step plan.Step, aborted bool) report.Result {
	res := report.Result{
		ID:       step.ID,
		Kind:     step.Kind,
		Severity: step.Severity,
		Target:   step.Target,
		Desc:     step.Desc,
	}

	switch {
	case aborted:
		res.Status = report.StatusSkipped
		res.Message = "not run: earlier required step failed"
		return res

	case step.SkipReason != "":
		res.Status = report.StatusSkipped
		res.Message = step.SkipReason
		return res
	}

	if step.Check != nil {
		skip, reason, err := step.Check(ctx)
		if err != nil {
			res.Status = report.StatusFailed
			res.Err = err
			return res
		}
		if skip {
			res.Status = report.StatusSkipped
			res.Message = reason
			return res
		}
	}

	if step.Advisory != nil && !e.dryRun {
		if warning := step.Advisory(ctx); warning != "" {
			e.logger.Warn().Str("step", step.ID).Msg(warning)
			if !e.confirm.Confirm(warning + ", continue anyway?") {
				res.Status = report.StatusSkipped
				res.Message = "declined after warning: " + warning
				return res
			}
		}
	}

	if e.dryRun {
		res.Status = report.StatusSkipped
		res.Message = "dry run"
		return res
	}

	e.logger.Info().Str("step", step.ID).Str("target", step.Target).Msg(step.Desc)

	if err := step.Execute(ctx); err != nil {
		res.Status = report.StatusFailed
		res.Err = err
		return res
	}

	res.Status = report.StatusDone
	return res
}
