// Package styles defines the visual styling for riceup's terminal
// output. Styles use semantic names and adaptive colors loaded from an
// embedded YAML definition so light and dark terminals both render
// sensibly.
package styles

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var stylesYAML []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

var registry map[string]lipgloss.Style

func init() {
	var cfg Config
	if err := yaml.Unmarshal(stylesYAML, &cfg); err != nil {
		// Embedded styles are part of the binary; a parse failure is a
		// programming error surfaced by the styles tests.
		registry = map[string]lipgloss.Style{}
		return
	}

	registry = make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		style := lipgloss.NewStyle().
			Bold(def.Bold).
			Italic(def.Italic).
			Underline(def.Underline)

		if def.Foreground != "" {
			if color, ok := cfg.Colors[def.Foreground]; ok {
				style = style.Foreground(lipgloss.AdaptiveColor{
					Light: color.Light,
					Dark:  color.Dark,
				})
			} else {
				style = style.Foreground(lipgloss.Color(def.Foreground))
			}
		}

		registry[name] = style
	}
}

// Get returns the named style, or an unstyled default for unknown names.
func Get(name string) lipgloss.Style {
	if s, ok := registry[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Names returns every defined style name, for the styles tests.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}
