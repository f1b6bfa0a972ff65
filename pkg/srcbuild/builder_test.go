// pkg/srcbuild/builder_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Filesystem (temp dirs), fake runner and fetcher
// PURPOSE: Test the per-tool clone/patch/configure/build pipeline

package srcbuild_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/paths"
	"github.com/riceup/riceup/pkg/srcbuild"
	"github.com/riceup/riceup/pkg/testutil"
)

type fakeFetcher struct {
	content   []byte
	err       error
	reachable bool
	fetches   int
}

func (f *fakeFetcher) Fetch(context.Context, string) ([]byte, error) {
	f.fetches++
	return f.content, f.err
}

func (f *fakeFetcher) Reachable(context.Context, string) bool {
	return f.reachable
}

func newTestPaths(t *testing.T) paths.Paths {
	t.Helper()
	t.Setenv(paths.EnvSourceRoot, filepath.Join(t.TempDir(), "src"))
	t.Setenv(paths.EnvStateDir, filepath.Join(t.TempDir(), "state"))
	t.Setenv(paths.EnvConfigDir, filepath.Join(t.TempDir(), "config"))

	p, err := paths.New("")
	require.NoError(t, err)
	return p
}

func newBuilder(t *testing.T, runner *testutil.FakeRunner, fetcher srcbuild.Fetcher) (*srcbuild.Builder, paths.Paths) {
	t.Helper()
	p := newTestPaths(t)
	return srcbuild.NewBuilder(runner, fetcher, p, false, false), p
}

var dwm = config.SourceTool{
	Name:          "dwm",
	Repo:          "https://git.suckless.org/dwm",
	WindowManager: true,
}

func TestCloneWhenAbsent(t *testing.T) {
	runner := &testutil.FakeRunner{}
	b, p := newBuilder(t, runner, &fakeFetcher{})

	require.NoError(t, b.CloneOrUpdate(context.Background(), dwm))

	require.Len(t, runner.Calls, 1)
	assert.Equal(t,
		"git clone https://git.suckless.org/dwm "+p.ToolDir("dwm"),
		runner.Calls[0].String())
	assert.Equal(t, srcbuild.StateCloned, b.State("dwm"))
}

func TestUpdateWhenPresent(t *testing.T) {
	runner := &testutil.FakeRunner{}
	b, p := newBuilder(t, runner, &fakeFetcher{})

	// simulate an existing checkout
	require.NoError(t, os.MkdirAll(filepath.Join(p.ToolDir("dwm"), ".git"), 0755))

	require.NoError(t, b.CloneOrUpdate(context.Background(), dwm))

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "git pull --ff-only", runner.Calls[0].String())
	assert.Equal(t, p.ToolDir("dwm"), runner.Calls[0].Dir)
}

func TestCloneFailureMarksToolFailed(t *testing.T) {
	runner := &testutil.FakeRunner{
		Respond: func(testutil.Call) (string, error) {
			return "fatal: unable to access", errors.New("exit status 128")
		},
	}
	b, _ := newBuilder(t, runner, &fakeFetcher{})

	err := b.CloneOrUpdate(context.Background(), dwm)
	assert.ErrorContains(t, err, "git clone failed for dwm")
	assert.True(t, b.Failed("dwm"))
}

func TestApplyPatchOnce(t *testing.T) {
	runner := &testutil.FakeRunner{}
	fetcher := &fakeFetcher{content: []byte("--- a/dwm.c\n+++ b/dwm.c\n")}
	b, p := newBuilder(t, runner, fetcher)

	patched := dwm
	patched.Patch = "https://dwm.suckless.org/patches/pertag.diff"
	require.NoError(t, os.MkdirAll(p.ToolDir("dwm"), 0755))

	applied, err := b.ApplyPatch(context.Background(), patched)
	require.NoError(t, err)
	assert.True(t, applied)
	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "patch", runner.Calls[0].Name)

	// second application is a no-op thanks to the sentinel
	runner.Calls = nil
	applied, err = b.ApplyPatch(context.Background(), patched)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, runner.Calls)
}

func TestApplyPatchWithoutPatchConfigured(t *testing.T) {
	runner := &testutil.FakeRunner{}
	fetcher := &fakeFetcher{}
	b, _ := newBuilder(t, runner, fetcher)

	applied, err := b.ApplyPatch(context.Background(), dwm)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Zero(t, fetcher.fetches)
}

func TestOverlayConfig(t *testing.T) {
	runner := &testutil.FakeRunner{}
	b, p := newBuilder(t, runner, &fakeFetcher{})

	override := filepath.Join(t.TempDir(), "dwm.config.h")
	require.NoError(t, os.WriteFile(override, []byte("#define MODKEY Mod4Mask\n"), 0644))
	require.NoError(t, os.MkdirAll(p.ToolDir("dwm"), 0755))

	tool := dwm
	tool.Config = override

	overlaid, err := b.OverlayConfig(tool)
	require.NoError(t, err)
	assert.True(t, overlaid)

	data, err := os.ReadFile(filepath.Join(p.ToolDir("dwm"), "config.h"))
	require.NoError(t, err)
	assert.Equal(t, "#define MODKEY Mod4Mask\n", string(data))
}

func TestOverlayConfigUnchangedIsNoop(t *testing.T) {
	runner := &testutil.FakeRunner{}
	b, p := newBuilder(t, runner, &fakeFetcher{})

	content := []byte("#define MODKEY Mod4Mask\n")
	override := filepath.Join(t.TempDir(), "dwm.config.h")
	require.NoError(t, os.WriteFile(override, content, 0644))
	require.NoError(t, os.MkdirAll(p.ToolDir("dwm"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(p.ToolDir("dwm"), "config.h"), content, 0644))

	tool := dwm
	tool.Config = override

	overlaid, err := b.OverlayConfig(tool)
	require.NoError(t, err)
	assert.False(t, overlaid, "identical config.h must not be rewritten")
}

func TestOverlayConfigMissingFileIsNotFatal(t *testing.T) {
	runner := &testutil.FakeRunner{}
	b, _ := newBuilder(t, runner, &fakeFetcher{})

	tool := dwm
	tool.Config = "/nonexistent/config.h"

	overlaid, err := b.OverlayConfig(tool)
	require.NoError(t, err)
	assert.False(t, overlaid)
}

func TestBuildInstall(t *testing.T) {
	runner := &testutil.FakeRunner{}
	b, p := newBuilder(t, runner, &fakeFetcher{})
	require.NoError(t, os.MkdirAll(p.ToolDir("dwm"), 0755))

	require.NoError(t, b.BuildInstall(context.Background(), dwm))

	assert.Equal(t, []string{
		"make clean",
		"make",
		"make install",
	}, runner.CommandLines())
	assert.Equal(t, srcbuild.StateInstalled, b.State("dwm"))
}

func TestBuildInstallWithSudo(t *testing.T) {
	runner := &testutil.FakeRunner{}
	p := newTestPaths(t)
	b := srcbuild.NewBuilder(runner, &fakeFetcher{}, p, true, false)
	require.NoError(t, os.MkdirAll(p.ToolDir("dwm"), 0755))

	require.NoError(t, b.BuildInstall(context.Background(), dwm))

	lines := runner.CommandLines()
	assert.Equal(t, "sudo make install", lines[len(lines)-1])
}

func TestBuildFailureMarksToolFailed(t *testing.T) {
	runner := &testutil.FakeRunner{
		Respond: func(c testutil.Call) (string, error) {
			if c.Name == "make" && len(c.Args) == 0 {
				return "dwm.c:42: error: unknown type name", errors.New("exit status 2")
			}
			return "", nil
		},
	}
	b, p := newBuilder(t, runner, &fakeFetcher{})
	require.NoError(t, os.MkdirAll(p.ToolDir("dwm"), 0755))

	err := b.BuildInstall(context.Background(), dwm)
	assert.ErrorContains(t, err, "build failed for dwm")
	assert.True(t, b.Failed("dwm"))
}

func TestForceReappliesPatch(t *testing.T) {
	runner := &testutil.FakeRunner{}
	fetcher := &fakeFetcher{content: []byte("--- a/x\n")}
	p := newTestPaths(t)
	b := srcbuild.NewBuilder(runner, fetcher, p, false, true)

	patched := dwm
	patched.Patch = "https://example.org/p.diff"
	require.NoError(t, os.MkdirAll(p.ToolDir("dwm"), 0755))

	applied, err := b.ApplyPatch(context.Background(), patched)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = b.ApplyPatch(context.Background(), patched)
	require.NoError(t, err)
	assert.True(t, applied, "force should ignore the sentinel")
}
