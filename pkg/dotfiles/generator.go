// Package dotfiles generates the X session script and shell profile.
// Output is a pure function of the installed component set; existing
// files are backed up before overwrite, never silently destroyed.
package dotfiles

import (
	"bytes"
	"embed"
	"os"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/errors"
	"github.com/riceup/riceup/pkg/logging"
	"github.com/riceup/riceup/pkg/paths"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// SessionInput is everything the session script depends on, decided
// once by the caller before rendering.
type SessionInput struct {
	// WindowManager is the binary the script execs, always last.
	WindowManager string

	// LaunchLines are the feature lines contributed by installed
	// optional groups, in configuration order.
	LaunchLines []string
}

// Generator renders and writes the generated files.
type Generator struct {
	paths  paths.Paths
	logger zerolog.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(p paths.Paths) *Generator {
	return &Generator{
		paths:  p,
		logger: logging.GetLogger("dotfiles"),
	}
}

// WallpaperPlaceholder in a launch line is replaced with the
// configured wallpaper path at render time.
const WallpaperPlaceholder = "{wallpaper}"

// SessionInputFor assembles the session input from the configuration
// and the set of group names that actually installed this run. Groups
// are consulted in configuration order so output is deterministic.
func SessionInputFor(cfg *config.Config, installedGroups map[string]bool) SessionInput {
	in := SessionInput{WindowManager: cfg.WindowManager().Name}

	for _, g := range cfg.Groups {
		if !installedGroups[g.Name] {
			continue
		}
		for _, line := range g.Launch {
			in.LaunchLines = append(in.LaunchLines,
				strings.ReplaceAll(line, WallpaperPlaceholder, cfg.Defaults.Wallpaper))
		}
	}

	return in
}

// SessionScript renders the X session script. With no optional
// components enabled the output contains exactly the exec line.
func (g *Generator) SessionScript(in SessionInput) (string, error) {
	return g.render("xinitrc.tmpl", in)
}

// ProfileSnippet renders the shell startup file.
func (g *Generator) ProfileSnippet() (string, error) {
	return g.render("profile.tmpl", nil)
}

func (g *Generator) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "template %s failed", name)
	}
	return buf.String(), nil
}

// WriteWithBackup writes content to path. A pre-existing file with
// different content is first copied byte-for-byte to its backup path.
// Writing identical content is a no-op.
func (g *Generator) WriteWithBackup(path string, content []byte, mode os.FileMode) (wrote bool, backedUp bool, err error) {
	existing, readErr := os.ReadFile(path)
	switch {
	case readErr == nil:
		if bytes.Equal(existing, content) {
			g.logger.Debug().Str("path", path).Msg("File already up to date")
			return false, false, nil
		}

		backup := g.paths.BackupPath(path)
		if err := os.WriteFile(backup, existing, mode); err != nil {
			return false, false, errors.Wrapf(err, errors.ErrFileWrite, "failed to back up %s", path)
		}
		g.logger.Info().Str("path", path).Str("backup", backup).Msg("Backed up existing file")
		backedUp = true

	case !os.IsNotExist(readErr):
		return false, false, errors.Wrapf(readErr, errors.ErrFileAccess, "cannot read %s", path)
	}

	if err := os.WriteFile(path, content, mode); err != nil {
		return false, backedUp, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}

	g.logger.Info().Str("path", path).Msg("File written")
	return true, backedUp, nil
}
