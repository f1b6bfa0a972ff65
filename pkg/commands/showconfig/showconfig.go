// Package showconfig renders the effective configuration after all
// layers (embedded defaults, user file, overrides) are merged.
package showconfig

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/paths"
)

// Options holds options for the config command.
type Options struct {
	// ConfigPath overrides the user config file location.
	ConfigPath string
}

// ShowConfig loads the layered configuration and returns it
// marshaled back to TOML.
func ShowConfig(opts Options) (string, error) {
	p, err := paths.New("")
	if err != nil {
		return "", err
	}

	cfg, err := config.Load(p, opts.ConfigPath)
	if err != nil {
		return "", err
	}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal effective config: %w", err)
	}
	return string(out), nil
}
