// Package plan models provisioning as an ordered list of idempotent
// steps derived once from configuration plus live GPU detection. The
// plan is immutable after Build; the executor walks it top to bottom.
package plan

import (
	"context"

	"github.com/riceup/riceup/pkg/gpu"
)

// Kind identifies the unit of work a step performs.
type Kind string

const (
	KindInstallPackages Kind = "install-packages"
	KindCloneOrUpdate   Kind = "clone-or-update"
	KindApplyPatch      Kind = "apply-patch"
	KindBuildInstall    Kind = "build-install"
	KindWriteFile       Kind = "write-file"
	KindRunCommand      Kind = "run-command"
)

// Severity decides what a step failure does to the rest of the run.
type Severity string

const (
	// Required failures abort the remaining plan.
	Required Severity = "required"

	// Optional failures are recorded and the run continues.
	Optional Severity = "optional"
)

// Step is a single unit of work. Steps carry their own idempotency
// check and execution closure; the executor owns sequencing and
// failure policy.
type Step struct {
	ID       string
	Kind     Kind
	Severity Severity
	Target   string
	Desc     string

	// NeedsRoot marks steps requiring elevated privilege. Privilege is
	// validated once for the whole plan, not per call site.
	NeedsRoot bool

	// SkipReason pre-skips the step at plan build time, e.g. an empty
	// optional package group. Check and Execute are not consulted.
	SkipReason string

	// Check reports whether the step is already satisfied (skip) or
	// cannot run at all (err). Nil means the step always executes.
	Check func(ctx context.Context) (skip bool, reason string, err error)

	// Advisory returns a warning to surface before execution, or ""
	// when there is nothing to warn about. Nil means no advisory.
	Advisory func(ctx context.Context) string

	// Execute performs the step. Nil only for pre-skipped steps.
	Execute func(ctx context.Context) error
}

// Plan is the ordered step list for one run.
type Plan struct {
	Vendor gpu.Vendor
	Steps  []Step
}

// NeedsRoot reports whether any step in the plan requires elevated
// privilege.
func (p *Plan) NeedsRoot() bool {
	for _, s := range p.Steps {
		if s.NeedsRoot && s.SkipReason == "" {
			return true
		}
	}
	return false
}
