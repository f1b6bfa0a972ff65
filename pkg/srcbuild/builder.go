// Package srcbuild clones, patches and builds tools from source. Each
// tool moves through a small state machine (absent, cloned, patched,
// configured, installed, failed); a failure in one tool never blocks
// the others.
package srcbuild

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/riceup/riceup/pkg/cmdrun"
	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/errors"
	"github.com/riceup/riceup/pkg/internal/hashutil"
	"github.com/riceup/riceup/pkg/logging"
	"github.com/riceup/riceup/pkg/paths"
)

// Builder runs the per-tool pipeline against the source root.
type Builder struct {
	runner  cmdrun.Runner
	fetcher Fetcher
	paths   paths.Paths
	sudo    bool
	force   bool

	states map[string]State
	logger zerolog.Logger
}

// NewBuilder creates a Builder. When sudo is true `make install` runs
// under sudo (suckless tools install to /usr/local by default). When
// force is true patch sentinels are ignored and patches reapply.
func NewBuilder(runner cmdrun.Runner, fetcher Fetcher, p paths.Paths, sudo, force bool) *Builder {
	return &Builder{
		runner:  runner,
		fetcher: fetcher,
		paths:   p,
		sudo:    sudo,
		force:   force,
		states:  make(map[string]State),
		logger:  logging.GetLogger("srcbuild"),
	}
}

// State returns the recorded state for a tool, StateAbsent when the
// tool has not been touched this run.
func (b *Builder) State(name string) State {
	if s, ok := b.states[name]; ok {
		return s
	}
	return StateAbsent
}

// Failed reports whether the tool hit its terminal failure state.
func (b *Builder) Failed(name string) bool {
	return b.State(name) == StateFailed
}

func (b *Builder) setState(name string, s State) {
	b.states[name] = s
}

func (b *Builder) fail(name string, err error) error {
	b.setState(name, StateFailed)
	return err
}

// CloneOrUpdate ensures a local checkout of the tool exists: clone when
// absent, pull when present. An existing checkout is never thrown away.
func (b *Builder) CloneOrUpdate(ctx context.Context, tool config.SourceTool) error {
	dir := b.paths.ToolDir(tool.Name)

	if b.isCloned(tool.Name) {
		b.logger.Info().Str("tool", tool.Name).Str("dir", dir).Msg("Updating existing checkout")
		if out, err := b.runner.Run(ctx, dir, "git", "pull", "--ff-only"); err != nil {
			return b.fail(tool.Name, errors.Wrapf(err, errors.ErrGitUpdate,
				"git pull failed for %s: %s", tool.Name, firstLine(out)))
		}
		b.setState(tool.Name, StateCloned)
		return nil
	}

	if err := os.MkdirAll(b.paths.SourceRoot(), 0755); err != nil {
		return b.fail(tool.Name, errors.Wrap(err, errors.ErrDirCreate, "failed to create source root"))
	}

	b.logger.Info().Str("tool", tool.Name).Str("repo", tool.Repo).Msg("Cloning")
	if out, err := b.runner.Run(ctx, "", "git", "clone", tool.Repo, dir); err != nil {
		return b.fail(tool.Name, errors.Wrapf(err, errors.ErrGitClone,
			"git clone failed for %s: %s", tool.Name, firstLine(out)))
	}

	b.setState(tool.Name, StateCloned)
	return nil
}

// ApplyPatch downloads and applies the tool's patch, at most once. A
// sentinel keyed by the patch content records application; re-runs skip
// unless force is set.
func (b *Builder) ApplyPatch(ctx context.Context, tool config.SourceTool) (applied bool, err error) {
	if tool.Patch == "" {
		return false, nil
	}

	data, err := b.fetcher.Fetch(ctx, tool.Patch)
	if err != nil {
		return false, b.fail(tool.Name, err)
	}

	sentinel := b.paths.SentinelPath(tool.Name, "patch")
	sum := hashutil.ChecksumBytes(data)

	if !b.force {
		if prev, err := os.ReadFile(sentinel); err == nil && string(prev) == sum {
			b.logger.Debug().Str("tool", tool.Name).Msg("Patch already applied")
			b.setState(tool.Name, StatePatched)
			return false, nil
		}
	}

	tmp, err := os.CreateTemp("", "riceup-patch-*.diff")
	if err != nil {
		return false, b.fail(tool.Name, errors.Wrap(err, errors.ErrFileWrite, "failed to stage patch"))
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, b.fail(tool.Name, errors.Wrap(err, errors.ErrFileWrite, "failed to stage patch"))
	}
	if err := tmp.Close(); err != nil {
		return false, b.fail(tool.Name, errors.Wrap(err, errors.ErrFileWrite, "failed to stage patch"))
	}

	dir := b.paths.ToolDir(tool.Name)
	b.logger.Info().Str("tool", tool.Name).Str("patch", tool.Patch).Msg("Applying patch")

	if out, err := b.runner.Run(ctx, dir, "patch", "-p1", "-N", "-i", tmp.Name()); err != nil {
		return false, b.fail(tool.Name, errors.Wrapf(err, errors.ErrPatchApply,
			"patch failed for %s: %s", tool.Name, firstLine(out)))
	}

	if err := os.MkdirAll(filepath.Dir(sentinel), 0755); err != nil {
		return true, b.fail(tool.Name, errors.Wrap(err, errors.ErrDirCreate, "failed to create sentinel dir"))
	}
	if err := os.WriteFile(sentinel, []byte(sum), 0644); err != nil {
		return true, b.fail(tool.Name, errors.Wrap(err, errors.ErrFileWrite, "failed to write sentinel"))
	}

	b.setState(tool.Name, StatePatched)
	return true, nil
}

// OverlayConfig copies the user's build configuration override into the
// checkout as config.h, when one is configured and present on disk.
func (b *Builder) OverlayConfig(tool config.SourceTool) (overlaid bool, err error) {
	if tool.Config == "" {
		return false, nil
	}

	data, err := os.ReadFile(tool.Config)
	if err != nil {
		if os.IsNotExist(err) {
			b.logger.Debug().Str("tool", tool.Name).Str("config", tool.Config).
				Msg("No config override present, using upstream config")
			return false, nil
		}
		return false, b.fail(tool.Name, errors.Wrapf(err, errors.ErrFileAccess,
			"cannot read config override for %s", tool.Name))
	}

	target := filepath.Join(b.paths.ToolDir(tool.Name), "config.h")
	if existing, err := hashutil.ChecksumFile(target); err == nil && existing == hashutil.ChecksumBytes(data) {
		b.logger.Debug().Str("tool", tool.Name).Msg("config.h already matches override")
		b.setState(tool.Name, StateConfigured)
		return false, nil
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return false, b.fail(tool.Name, errors.Wrapf(err, errors.ErrFileWrite,
			"cannot write config.h for %s", tool.Name))
	}

	b.logger.Info().Str("tool", tool.Name).Str("config", tool.Config).Msg("Config override applied")
	b.setState(tool.Name, StateConfigured)
	return true, nil
}

// BuildInstall compiles and installs the tool with make.
func (b *Builder) BuildInstall(ctx context.Context, tool config.SourceTool) error {
	dir := b.paths.ToolDir(tool.Name)

	b.logger.Info().Str("tool", tool.Name).Msg("Building")
	if out, err := b.runner.Run(ctx, dir, "make", "clean"); err != nil {
		// a fresh clone has nothing to clean
		b.logger.Debug().Str("tool", tool.Name).Str("output", firstLine(out)).Msg("make clean failed, continuing")
	}

	if out, err := b.runner.Run(ctx, dir, "make"); err != nil {
		return b.fail(tool.Name, errors.Wrapf(err, errors.ErrBuildFailed,
			"build failed for %s: %s", tool.Name, firstLine(out)))
	}

	name, args := b.installCommand()
	if out, err := b.runner.Run(ctx, dir, name, args...); err != nil {
		return b.fail(tool.Name, errors.Wrapf(err, errors.ErrBuildFailed,
			"install failed for %s: %s", tool.Name, firstLine(out)))
	}

	b.setState(tool.Name, StateInstalled)
	return nil
}

// isCloned checks for an existing git checkout of the tool.
func (b *Builder) isCloned(name string) bool {
	info, err := os.Stat(filepath.Join(b.paths.ToolDir(name), ".git"))
	return err == nil && info.IsDir()
}

func (b *Builder) installCommand() (string, []string) {
	if b.sudo {
		return "sudo", []string{"make", "install"}
	}
	return "make", []string{"install"}
}

func firstLine(out string) string {
	for idx := 0; idx < len(out); idx++ {
		if out[idx] == '\n' {
			return out[:idx]
		}
	}
	return out
}
