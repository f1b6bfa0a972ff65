// pkg/config/loader_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Filesystem (temp dirs)
// PURPOSE: Test layered config loading and override behavior

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/paths"
)

func newTestPaths(t *testing.T) paths.Paths {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, filepath.Join(t.TempDir(), "config"))
	t.Setenv(paths.EnvStateDir, filepath.Join(t.TempDir(), "state"))
	t.Setenv(paths.EnvSourceRoot, "")

	p, err := paths.New("")
	require.NoError(t, err)
	return p
}

func TestLoadDefaults(t *testing.T) {
	p := newTestPaths(t)

	cfg, err := config.Load(p, "")
	require.NoError(t, err)

	essential, ok := cfg.Group(config.EssentialGroup)
	require.True(t, ok)
	assert.True(t, essential.Required)
	assert.Contains(t, essential.Packages, "git")
	assert.Contains(t, essential.Packages, "xorg")

	assert.Equal(t, "dwm", cfg.WindowManager().Name)
	assert.Equal(t, ".xinitrc", cfg.Defaults.SessionFile)

	// source_root should be ~-expanded
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "src"), cfg.Defaults.SourceRoot)
}

func TestLoadUserConfigOverridesDefaults(t *testing.T) {
	p := newTestPaths(t)

	require.NoError(t, os.MkdirAll(p.ConfigDir(), 0755))
	userConfig := `
[defaults]
wallpaper = "/data/walls/forest.png"
`
	require.NoError(t, os.WriteFile(p.ConfigFilePath(), []byte(userConfig), 0644))

	cfg, err := config.Load(p, "")
	require.NoError(t, err)

	assert.Equal(t, "/data/walls/forest.png", cfg.Defaults.Wallpaper)
	// untouched keys keep their defaults
	assert.Equal(t, ".xinitrc", cfg.Defaults.SessionFile)
}

func TestLoadExplicitOverridePath(t *testing.T) {
	p := newTestPaths(t)

	override := filepath.Join(t.TempDir(), "site.toml")
	content := `
[[groups]]
name = "essential"
required = true
packages = ["x11-dev", "git"]

[[groups]]
name = "wm"
packages = ["feh", "picom"]

[[groups]]
name = "audio"
packages = []

[[groups]]
name = "network"
packages = ["nm"]

[[tools]]
name = "dwm"
repo = "https://git.suckless.org/dwm"
window_manager = true

[[tools]]
name = "st"
repo = "https://git.suckless.org/st"
`
	require.NoError(t, os.WriteFile(override, []byte(content), 0644))

	cfg, err := config.Load(p, override)
	require.NoError(t, err)

	// the override replaces the whole group list
	require.Len(t, cfg.Groups, 4)
	assert.Equal(t, []string{"x11-dev", "git"}, cfg.Groups[0].Packages)

	audio, ok := cfg.Group("audio")
	require.True(t, ok)
	assert.False(t, audio.Enabled())

	require.Len(t, cfg.Tools, 2)
}

func TestLoadMissingOverridePath(t *testing.T) {
	p := newTestPaths(t)

	_, err := config.Load(p, "/nonexistent/riceup.toml")
	assert.Error(t, err)
}
