// Package up implements riceup's primary command: derive the
// provisioning plan from configuration plus GPU detection, validate
// its preconditions, and execute it.
package up

import (
	"context"
	"os"
	"time"

	"github.com/riceup/riceup/pkg/cmdrun"
	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/dotfiles"
	"github.com/riceup/riceup/pkg/errors"
	"github.com/riceup/riceup/pkg/executor"
	"github.com/riceup/riceup/pkg/gpu"
	"github.com/riceup/riceup/pkg/logging"
	"github.com/riceup/riceup/pkg/paths"
	"github.com/riceup/riceup/pkg/pkgmgr"
	"github.com/riceup/riceup/pkg/plan"
	"github.com/riceup/riceup/pkg/report"
	"github.com/riceup/riceup/pkg/srcbuild"
)

// Options holds the flags for the up command.
type Options struct {
	// ConfigPath overrides the user config file location.
	ConfigPath string

	// DryRun computes and reports the plan without executing it.
	DryRun bool

	// Force re-runs sentinel-guarded steps (patches) even when a
	// previous run already applied them.
	Force bool

	// AssumeYes answers advisory prompts with yes.
	AssumeYes bool

	// GPUOverride skips hardware probing and uses the given vendor.
	// Accepted values: nvidia, amd, intel, none. Empty probes lspci.
	GPUOverride string
}

// Run executes the provisioning run and returns the final report.
func Run(ctx context.Context, opts Options) (*report.Report, error) {
	defer logging.LogDuration(time.Now(), "provisioning run")
	logger := logging.GetLogger("commands.up")

	bootstrapPaths, err := paths.New("")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(bootstrapPaths, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// rebuild paths with the configured source root
	p, err := paths.New(cfg.Defaults.SourceRoot)
	if err != nil {
		return nil, err
	}

	runner := cmdrun.NewSystemRunner()

	var vendor gpu.Vendor
	if opts.GPUOverride != "" {
		vendor = gpu.Vendor(opts.GPUOverride)
		switch vendor {
		case gpu.VendorNvidia, gpu.VendorAMD, gpu.VendorIntel, gpu.VendorNone:
		default:
			return nil, errors.Newf(errors.ErrPrecondition,
				"unknown GPU vendor %q (expected nvidia, amd, intel or none)", opts.GPUOverride)
		}
	} else {
		vendor = gpu.NewProber(runner).Probe(ctx)
	}

	sudo := os.Geteuid() != 0
	fetcher := srcbuild.NewHTTPFetcher()

	deps := plan.Deps{
		Installer: pkgmgr.NewInstaller(runner, sudo),
		Builder:   srcbuild.NewBuilder(runner, fetcher, p, sudo, opts.Force),
		Generator: dotfiles.NewGenerator(p),
		Fetcher:   fetcher,
		Paths:     p,
	}

	pl, progress := plan.Build(cfg, vendor, deps)

	if !opts.DryRun {
		if err := plan.ValidatePreconditions(pl); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Int("steps", len(pl.Steps)).
		Str("gpu", string(vendor)).
		Bool("dryRun", opts.DryRun).
		Msg("Executing provisioning plan")

	var confirm executor.Confirmer = executor.InteractiveConfirmer{}
	if opts.AssumeYes {
		confirm = executor.AutoConfirmer{}
	}

	rep := executor.New(progress, confirm, opts.DryRun).Run(ctx, pl)
	return rep, nil
}
