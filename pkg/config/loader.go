package config

import (
	"os"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/riceup/riceup/pkg/errors"
	"github.com/riceup/riceup/pkg/logging"
	"github.com/riceup/riceup/pkg/paths"
)

// Load builds the Config by layering, in order:
//
//  1. embedded defaults
//  2. the user config file in the riceup config dir, if present
//  3. an explicit override path, if given
//
// Later layers win. The result is validated before being returned.
func Load(p paths.Paths, overridePath string) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}

	userPath := p.ConfigFilePath()
	if _, err := os.Stat(userPath); err == nil {
		logger.Debug().Str("path", userPath).Msg("loading user config")
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", userPath)
		}
	}

	if overridePath != "" {
		if _, err := os.Stat(overridePath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file not found: %s", overridePath)
		}
		logger.Debug().Str("path", overridePath).Msg("loading override config")
		if err := k.Load(file.Provider(overridePath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", overridePath)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	expandPaths(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("groups", len(cfg.Groups)).
		Int("tools", len(cfg.Tools)).
		Msg("config loaded")

	return &cfg, nil
}

// expandPaths resolves ~-relative paths in the loaded config.
func expandPaths(cfg *Config) {
	cfg.Defaults.SourceRoot = paths.ExpandHome(cfg.Defaults.SourceRoot)
	cfg.Defaults.Wallpaper = paths.ExpandHome(cfg.Defaults.Wallpaper)
	for i := range cfg.Tools {
		cfg.Tools[i].Config = paths.ExpandHome(cfg.Tools[i].Config)
	}
}
