// Package genconfig outputs or writes riceup's default configuration.
package genconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/logging"
	"github.com/riceup/riceup/pkg/paths"
)

// Options holds options for the gen-config command.
type Options struct {
	// Write saves the config to the user config path instead of
	// printing it.
	Write bool
}

// Result reports what gen-config produced.
type Result struct {
	ConfigContent string
	FileWritten   string
}

// GenConfig returns the default configuration content and, when
// opts.Write is set, writes it to the user config path. An existing
// config file is never overwritten.
func GenConfig(p paths.Paths, opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GetDefaultConfigContent()

	// the embedded defaults must stay parseable
	var probe map[string]interface{}
	if err := toml.Unmarshal([]byte(content), &probe); err != nil {
		return nil, fmt.Errorf("embedded default config is invalid: %w", err)
	}

	result := &Result{ConfigContent: content}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	targetPath := p.ConfigFilePath()
	if _, err := os.Stat(targetPath); err == nil {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return result, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(targetPath, []byte(content), 0644); err != nil {
		return result, fmt.Errorf("failed to write config to %s: %w", targetPath, err)
	}

	logger.Info().Str("path", targetPath).Msg("Written config file")
	result.FileWritten = targetPath
	return result, nil
}
