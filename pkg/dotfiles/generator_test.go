// pkg/dotfiles/generator_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Filesystem (temp dirs)
// PURPOSE: Test session script generation and backup-before-overwrite

package dotfiles_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/dotfiles"
	"github.com/riceup/riceup/pkg/paths"
)

func newTestGenerator(t *testing.T) *dotfiles.Generator {
	t.Helper()
	t.Setenv(paths.EnvSourceRoot, filepath.Join(t.TempDir(), "src"))
	t.Setenv(paths.EnvStateDir, filepath.Join(t.TempDir(), "state"))
	t.Setenv(paths.EnvConfigDir, filepath.Join(t.TempDir(), "config"))

	p, err := paths.New("")
	require.NoError(t, err)
	return dotfiles.NewGenerator(p)
}

// scriptLines returns the non-comment, non-empty lines of a script.
func scriptLines(script string) []string {
	var out []string
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func TestSessionScriptAllDisabled(t *testing.T) {
	g := newTestGenerator(t)

	script, err := g.SessionScript(dotfiles.SessionInput{WindowManager: "dwm"})
	require.NoError(t, err)

	assert.Equal(t, []string{"exec dwm"}, scriptLines(script))
}

func TestSessionScriptAllEnabled(t *testing.T) {
	g := newTestGenerator(t)

	in := dotfiles.SessionInput{
		WindowManager: "dwm",
		LaunchLines: []string{
			"picom -b",
			"feh --bg-fill ~/.wallpaper.jpg &",
			"nm-applet &",
		},
	}

	script, err := g.SessionScript(in)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"picom -b",
		"feh --bg-fill ~/.wallpaper.jpg &",
		"nm-applet &",
		"exec dwm",
	}, scriptLines(script))
}

func TestSessionInputForPreservesGroupOrder(t *testing.T) {
	cfg := &config.Config{
		Groups: []config.PackageGroup{
			{Name: "essential", Required: true, Packages: []string{"xorg"}},
			{Name: "wm", Packages: []string{"feh", "picom"}, Launch: []string{"picom -b", "feh --bg-fill ~/.wallpaper.jpg &"}},
			{Name: "audio", Packages: []string{"pipewire"}},
			{Name: "network", Packages: []string{"nm"}, Launch: []string{"nm-applet &"}},
		},
		Tools: []config.SourceTool{
			{Name: "dwm", Repo: "r", WindowManager: true},
		},
	}

	in := dotfiles.SessionInputFor(cfg, map[string]bool{
		"network": true,
		"wm":      true,
	})

	assert.Equal(t, "dwm", in.WindowManager)
	assert.Equal(t, []string{
		"picom -b",
		"feh --bg-fill ~/.wallpaper.jpg &",
		"nm-applet &",
	}, in.LaunchLines)
}

func TestSessionInputForSubstitutesWallpaper(t *testing.T) {
	cfg := &config.Config{
		Defaults: config.Defaults{Wallpaper: "/data/walls/forest.png"},
		Groups: []config.PackageGroup{
			{Name: "wm", Packages: []string{"feh"}, Launch: []string{"feh --bg-fill {wallpaper} &"}},
		},
		Tools: []config.SourceTool{{Name: "dwm", Repo: "r", WindowManager: true}},
	}

	in := dotfiles.SessionInputFor(cfg, map[string]bool{"wm": true})
	assert.Equal(t, []string{"feh --bg-fill /data/walls/forest.png &"}, in.LaunchLines)
}

func TestSessionInputForSkipsUninstalledGroups(t *testing.T) {
	cfg := &config.Config{
		Groups: []config.PackageGroup{
			{Name: "wm", Packages: []string{"feh"}, Launch: []string{"picom -b"}},
		},
		Tools: []config.SourceTool{{Name: "dwm", Repo: "r", WindowManager: true}},
	}

	in := dotfiles.SessionInputFor(cfg, map[string]bool{})
	assert.Empty(t, in.LaunchLines)
}

func TestWriteWithBackup(t *testing.T) {
	g := newTestGenerator(t)
	path := filepath.Join(t.TempDir(), ".xinitrc")

	original := []byte("# my precious hand-written xinitrc\nexec i3\n")
	require.NoError(t, os.WriteFile(path, original, 0755))

	wrote, backedUp, err := g.WriteWithBackup(path, []byte("exec dwm\n"), 0755)
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.True(t, backedUp)

	backup, err := os.ReadFile(path + ".riceup.bak")
	require.NoError(t, err)
	assert.Equal(t, original, backup, "backup must preserve previous content byte-for-byte")

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "exec dwm\n", string(current))
}

func TestWriteWithBackupNewFile(t *testing.T) {
	g := newTestGenerator(t)
	path := filepath.Join(t.TempDir(), ".xinitrc")

	wrote, backedUp, err := g.WriteWithBackup(path, []byte("exec dwm\n"), 0755)
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.False(t, backedUp, "nothing to back up for a new file")
}

func TestWriteWithBackupIdenticalContentIsNoop(t *testing.T) {
	g := newTestGenerator(t)
	path := filepath.Join(t.TempDir(), ".xinitrc")
	content := []byte("exec dwm\n")
	require.NoError(t, os.WriteFile(path, content, 0755))

	wrote, backedUp, err := g.WriteWithBackup(path, content, 0755)
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.False(t, backedUp)

	_, err = os.Stat(path + ".riceup.bak")
	assert.True(t, os.IsNotExist(err), "no backup for identical content")
}

func TestProfileSnippet(t *testing.T) {
	g := newTestGenerator(t)

	profile, err := g.ProfileSnippet()
	require.NoError(t, err)

	assert.Contains(t, profile, `export PATH="$HOME/.local/bin:$PATH"`)
	assert.Contains(t, profile, "exec startx")
}
