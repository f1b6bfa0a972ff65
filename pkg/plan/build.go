package plan

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/riceup/riceup/pkg/cmdrun"
	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/dotfiles"
	"github.com/riceup/riceup/pkg/errors"
	"github.com/riceup/riceup/pkg/gpu"
	"github.com/riceup/riceup/pkg/paths"
	"github.com/riceup/riceup/pkg/pkgmgr"
	"github.com/riceup/riceup/pkg/srcbuild"
)

// Deps are the components the plan's steps delegate to. All external
// tools stay behind these; the plan itself performs no I/O.
type Deps struct {
	Installer *pkgmgr.Installer
	Builder   *srcbuild.Builder
	Generator *dotfiles.Generator
	Fetcher   srcbuild.Fetcher
	Paths     paths.Paths
}

// Build derives the provisioning plan from the configuration and the
// detected GPU vendor. The returned Progress is shared by the step
// closures and must be handed to the executor's report.
func Build(cfg *config.Config, vendor gpu.Vendor, deps Deps) (*Plan, *Progress) {
	progress := NewProgress()
	p := &Plan{Vendor: vendor}

	p.Steps = append(p.Steps, packageSteps(cfg, vendor, deps, progress)...)
	p.Steps = append(p.Steps, toolSteps(cfg, deps, progress)...)
	p.Steps = append(p.Steps, dotfileSteps(cfg, deps, progress)...)

	return p, progress
}

// packageSteps installs the package groups: one batched invocation for
// required groups, one for the enabled optional groups, one for the
// GPU vendor drivers. Empty groups become pre-skipped steps so the
// report still mentions them.
func packageSteps(cfg *config.Config, vendor gpu.Vendor, deps Deps, progress *Progress) []Step {
	steps := []Step{{
		ID:        "apt-update",
		Kind:      KindRunCommand,
		Severity:  Required,
		Target:    "apt-get update",
		Desc:      "refresh package indexes",
		NeedsRoot: true,
		Execute: func(ctx context.Context) error {
			return deps.Installer.Update(ctx)
		},
	}}

	var required, optional []config.PackageGroup
	for _, g := range cfg.Groups {
		if !g.Enabled() {
			steps = append(steps, Step{
				ID:         "install-" + g.Name,
				Kind:       KindInstallPackages,
				Severity:   Optional,
				Target:     g.Name,
				Desc:       fmt.Sprintf("install %s packages", g.Name),
				SkipReason: "empty group",
			})
			continue
		}
		if g.Required {
			required = append(required, g)
		} else {
			optional = append(optional, g)
		}
	}

	requiredPkgs := pkgmgr.Flatten(required...)
	steps = append(steps, installStep(deps, progress,
		"install-required", "required", Required, requiredPkgs, required))

	optionalSeverity := Optional
	if cfg.Policy.OptionalGroupsFatal {
		optionalSeverity = Required
	}
	optionalPkgs := subtract(pkgmgr.Flatten(optional...), requiredPkgs)
	if len(optionalPkgs) > 0 {
		steps = append(steps, installStep(deps, progress,
			"install-optional", groupNames(optional), optionalSeverity, optionalPkgs, optional))
	}

	gpuPkgs := cfg.GPU.ForVendor(string(vendor))
	gpuStep := Step{
		ID:       "install-gpu",
		Kind:     KindInstallPackages,
		Severity: Optional,
		Target:   "gpu:" + string(vendor),
		Desc:     fmt.Sprintf("install %s driver packages", vendor),
	}
	switch {
	case vendor == gpu.VendorNone:
		gpuStep.SkipReason = "no supported gpu detected"
	case len(gpuPkgs) == 0:
		gpuStep.SkipReason = "no driver packages configured"
	default:
		gpuStep.NeedsRoot = true
		gpuStep.Desc = fmt.Sprintf("install %s driver packages: %s", vendor, strings.Join(gpuPkgs, " "))
		gpuStep.Check = alreadyInstalledCheck(deps, gpuPkgs)
		gpuStep.Execute = func(ctx context.Context) error {
			return deps.Installer.Install(ctx, gpuPkgs)
		}
	}
	steps = append(steps, gpuStep)

	return steps
}

func installStep(deps Deps, progress *Progress, id, target string, severity Severity, pkgs []string, groups []config.PackageGroup) Step {
	return Step{
		ID:        id,
		Kind:      KindInstallPackages,
		Severity:  severity,
		Target:    target,
		Desc:      "install packages: " + strings.Join(pkgs, " "),
		NeedsRoot: true,
		// When everything is already present the step skips, but the
		// groups still count as installed for the dotfile generator.
		Check: func(ctx context.Context) (bool, string, error) {
			if !deps.Installer.AllInstalled(ctx, pkgs) {
				return false, "", nil
			}
			for _, g := range groups {
				progress.MarkGroup(g.Name)
			}
			return true, "already installed", nil
		},
		Execute: func(ctx context.Context) error {
			if err := deps.Installer.Install(ctx, pkgs); err != nil {
				return err
			}
			for _, g := range groups {
				progress.MarkGroup(g.Name)
			}
			return nil
		},
	}
}

// alreadyInstalledCheck skips an install step when every package is
// already present.
func alreadyInstalledCheck(deps Deps, pkgs []string) func(ctx context.Context) (bool, string, error) {
	return func(ctx context.Context) (bool, string, error) {
		if deps.Installer.AllInstalled(ctx, pkgs) {
			return true, "already installed", nil
		}
		return false, "", nil
	}
}

// toolSteps builds each source tool: clone or update, optional patch,
// then build and install. Failure of one tool never blocks the others,
// but the window manager is load-bearing: its build step is required.
func toolSteps(cfg *config.Config, deps Deps, progress *Progress) []Step {
	var steps []Step

	for _, tool := range cfg.Tools {
		tool := tool

		buildSeverity := Optional
		if tool.WindowManager {
			buildSeverity = Required
		}

		steps = append(steps, Step{
			ID:       "clone-" + tool.Name,
			Kind:     KindCloneOrUpdate,
			Severity: Optional,
			Target:   tool.Name,
			Desc:     fmt.Sprintf("clone or update %s from %s", tool.Name, tool.Repo),
			Execute: func(ctx context.Context) error {
				return deps.Builder.CloneOrUpdate(ctx, tool)
			},
		})

		if tool.Patch != "" {
			steps = append(steps, Step{
				ID:       "patch-" + tool.Name,
				Kind:     KindApplyPatch,
				Severity: Optional,
				Target:   tool.Name,
				Desc:     fmt.Sprintf("apply patch %s", tool.Patch),
				Check:    dependsOnTool(deps, tool.Name),
				Advisory: func(ctx context.Context) string {
					if deps.Fetcher.Reachable(ctx, tool.Patch) {
						return ""
					}
					return fmt.Sprintf("patch URL %s is unreachable", tool.Patch)
				},
				Execute: func(ctx context.Context) error {
					_, err := deps.Builder.ApplyPatch(ctx, tool)
					return err
				},
			})
		}

		steps = append(steps, Step{
			ID:        "build-" + tool.Name,
			Kind:      KindBuildInstall,
			Severity:  buildSeverity,
			Target:    tool.Name,
			Desc:      fmt.Sprintf("build and install %s", tool.Name),
			NeedsRoot: true,
			Check:     dependsOnTool(deps, tool.Name),
			Execute: func(ctx context.Context) error {
				if _, err := deps.Builder.OverlayConfig(tool); err != nil {
					return err
				}
				if err := deps.Builder.BuildInstall(ctx, tool); err != nil {
					return err
				}
				progress.MarkTool(tool.Name)
				return nil
			},
		})
	}

	return steps
}

// dependsOnTool fails a step up front when an earlier step already put
// the tool into its terminal failed state.
func dependsOnTool(deps Deps, name string) func(ctx context.Context) (bool, string, error) {
	return func(ctx context.Context) (bool, string, error) {
		if deps.Builder.Failed(name) {
			return false, "", errors.Newf(errors.ErrOptionalStep, "%s failed in an earlier step", name)
		}
		return false, "", nil
	}
}

// dotfileSteps generates the session script and shell profile from
// whatever actually installed.
func dotfileSteps(cfg *config.Config, deps Deps, progress *Progress) []Step {
	sessionPath := deps.Paths.HomeFile(cfg.Defaults.SessionFile)
	profilePath := deps.Paths.HomeFile(cfg.Defaults.ProfileFile)

	return []Step{
		{
			ID:       "write-session",
			Kind:     KindWriteFile,
			Severity: Required,
			Target:   sessionPath,
			Desc:     "generate X session script",
			Execute: func(ctx context.Context) error {
				in := dotfiles.SessionInputFor(cfg, progress.InstalledGroups())
				script, err := deps.Generator.SessionScript(in)
				if err != nil {
					return err
				}
				return writeWithBackup(deps, progress, sessionPath, []byte(script), 0755)
			},
		},
		{
			ID:       "write-profile",
			Kind:     KindWriteFile,
			Severity: Required,
			Target:   profilePath,
			Desc:     "generate shell profile",
			Execute: func(ctx context.Context) error {
				profile, err := deps.Generator.ProfileSnippet()
				if err != nil {
					return err
				}
				return writeWithBackup(deps, progress, profilePath, []byte(profile), 0644)
			},
		},
	}
}

func writeWithBackup(deps Deps, progress *Progress, path string, content []byte, mode os.FileMode) error {
	_, backedUp, err := deps.Generator.WriteWithBackup(path, content, mode)
	if err != nil {
		return err
	}
	if backedUp {
		progress.AddBackup(deps.Paths.BackupPath(path))
	}
	return nil
}

// ValidatePreconditions checks, before any mutation, that the external
// tools the plan relies on exist and that elevated privilege is
// available when required.
func ValidatePreconditions(p *Plan) error {
	for _, tool := range []string{"apt-get", "git", "make"} {
		if !cmdrun.CommandExists(tool) {
			return errors.Newf(errors.ErrPrecondition, "%s not found on PATH", tool)
		}
	}

	if p.NeedsRoot() && os.Geteuid() != 0 && !cmdrun.CommandExists("sudo") {
		return errors.New(errors.ErrPrecondition,
			"plan requires elevated privilege but neither root nor sudo is available")
	}

	return nil
}

func groupNames(groups []config.PackageGroup) string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return strings.Join(names, ",")
}

func subtract(list, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, r := range remove {
		drop[r] = true
	}
	var out []string
	for _, item := range list {
		if !drop[item] {
			out = append(out, item)
		}
	}
	return out
}
