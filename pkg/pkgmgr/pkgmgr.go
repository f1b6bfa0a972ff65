// Package pkgmgr drives the system package manager. Packages are
// installed in batches, one invocation per category, to keep external
// tool overhead down and avoid half-installed groups.
package pkgmgr

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/riceup/riceup/pkg/cmdrun"
	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/errors"
	"github.com/riceup/riceup/pkg/logging"
)

// Installer wraps apt-get. It assumes the package manager itself is
// idempotent: installing an already-installed package is a no-op.
type Installer struct {
	runner cmdrun.Runner
	sudo   bool
	logger zerolog.Logger
}

// NewInstaller creates an Installer. When sudo is true every apt-get
// and dpkg invocation is prefixed with sudo.
func NewInstaller(runner cmdrun.Runner, sudo bool) *Installer {
	return &Installer{
		runner: runner,
		sudo:   sudo,
		logger: logging.GetLogger("pkgmgr"),
	}
}

// Flatten merges the enabled groups into a single de-duplicated package
// list preserving first-seen order. Disabled (empty) groups contribute
// nothing.
func Flatten(groups ...config.PackageGroup) []string {
	seen := make(map[string]bool)
	var out []string

	for _, g := range groups {
		if !g.Enabled() {
			continue
		}
		for _, pkg := range g.Packages {
			if seen[pkg] {
				continue
			}
			seen[pkg] = true
			out = append(out, pkg)
		}
	}

	return out
}

// Install installs the given packages in one batched invocation.
// An empty list is a no-op and does not invoke the package manager.
func (i *Installer) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	i.logger.Info().Strs("packages", packages).Msg("Installing packages")

	args := append([]string{"install", "-y", "--no-install-recommends"}, packages...)
	name, argv := i.privileged("apt-get", args)

	if out, err := i.runner.Run(ctx, "", name, argv...); err != nil {
		return errors.Wrapf(err, errors.ErrPackageInstall,
			"apt-get install failed: %s", lastLine(out))
	}

	return nil
}

// Update refreshes the package indexes. Runs once before the first
// install batch so stale indexes cannot fail the batches later.
func (i *Installer) Update(ctx context.Context) error {
	i.logger.Info().Msg("Refreshing package indexes")

	name, argv := i.privileged("apt-get", []string{"update"})

	if out, err := i.runner.Run(ctx, "", name, argv...); err != nil {
		return errors.Wrapf(err, errors.ErrCommandRun,
			"apt-get update failed: %s", lastLine(out))
	}

	return nil
}

// AllInstalled reports whether every package in the list is already
// installed, via dpkg -s. Used as an idempotency check so re-runs can
// skip categories that are fully present.
func (i *Installer) AllInstalled(ctx context.Context, packages []string) bool {
	if len(packages) == 0 {
		return true
	}

	_, err := i.runner.Run(ctx, "", "dpkg", append([]string{"-s"}, packages...)...)
	return err == nil
}

// privileged prefixes a command with sudo when required.
func (i *Installer) privileged(name string, args []string) (string, []string) {
	if !i.sudo {
		return name, args
	}
	return "sudo", append([]string{name}, args...)
}

func lastLine(out string) string {
	last := ""
	start := 0
	for idx := 0; idx <= len(out); idx++ {
		if idx == len(out) || out[idx] == '\n' {
			if idx > start {
				last = out[start:idx]
			}
			start = idx + 1
		}
	}
	return last
}
