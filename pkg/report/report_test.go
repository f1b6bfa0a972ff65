// pkg/report/report_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test result aggregation and summary rendering

package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	riceuperrors "github.com/riceup/riceup/pkg/errors"
	"github.com/riceup/riceup/pkg/plan"
	"github.com/riceup/riceup/pkg/report"
)

func sampleReport() *report.Report {
	r := &report.Report{Vendor: "intel"}
	r.Add(report.Result{
		ID: "install-required", Kind: plan.KindInstallPackages,
		Severity: plan.Required, Target: "essential", Status: report.StatusDone,
	})
	r.Add(report.Result{
		ID: "install-audio", Kind: plan.KindInstallPackages,
		Severity: plan.Optional, Target: "audio", Status: report.StatusSkipped,
		Message: "empty group",
	})
	r.Add(report.Result{
		ID: "build-st", Kind: plan.KindBuildInstall,
		Severity: plan.Optional, Target: "st", Status: report.StatusFailed,
		Err: riceuperrors.Newf(riceuperrors.ErrBuildFailed, "build failed for st: missing libXft"),
	})
	return r
}

func TestCounts(t *testing.T) {
	done, skipped, failed := sampleReport().Counts()
	assert.Equal(t, 1, done)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, failed)
}

func TestFailedOnlyForRequiredSteps(t *testing.T) {
	r := sampleReport()
	assert.False(t, r.Failed(), "optional failure must not fail the run")

	r.Add(report.Result{
		ID: "build-dwm", Severity: plan.Required,
		Target: "dwm", Status: report.StatusFailed,
	})
	assert.True(t, r.Failed())
}

func TestWarningsListOptionalFailures(t *testing.T) {
	warnings := sampleReport().Warnings()
	assert.Len(t, warnings, 1)
	assert.Equal(t, "st", warnings[0].Target)
}

func TestRenderPlain(t *testing.T) {
	out := report.RenderPlain(sampleReport())

	assert.Contains(t, out, "Provisioning summary")
	assert.Contains(t, out, "gpu: intel")
	assert.Contains(t, out, "audio")
	assert.Contains(t, out, "empty group")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "missing libXft")
	assert.Contains(t, out, "[BUILD_FAILED]")
	assert.Contains(t, out, "1 done, 1 skipped, 1 failed")
}

func TestRenderPlainDryRunAndAborted(t *testing.T) {
	r := sampleReport()
	r.DryRun = true
	r.Aborted = true
	r.Backups = []string{"/home/u/.xinitrc.riceup.bak"}

	out := report.RenderPlain(r)
	assert.Contains(t, out, "(dry run)")
	assert.Contains(t, out, "run aborted")
	assert.Contains(t, out, ".xinitrc.riceup.bak")
}
