// Package paths provides centralized path handling for riceup.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/riceup/riceup/pkg/errors"
)

// Environment variable names
const (
	// EnvSourceRoot overrides where source tools are cloned and built
	EnvSourceRoot = "RICEUP_SOURCE_ROOT"

	// EnvConfigDir overrides the XDG config directory for riceup
	EnvConfigDir = "RICEUP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for riceup
	EnvStateDir = "RICEUP_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// RiceupDirName is the directory name for riceup-specific files
	RiceupDirName = "riceup"

	// ConfigFile is the name of the user configuration file
	ConfigFile = "riceup.toml"

	// DefaultSourceDir is the default directory for cloned source tools,
	// relative to the home directory
	DefaultSourceDir = ".local/src"

	// SentinelsDir is the state subdirectory recording completed run-once steps
	SentinelsDir = "sentinels"

	// BackupSuffix is appended to pre-existing files before overwrite
	BackupSuffix = ".riceup.bak"
)

// Paths resolves all filesystem locations riceup reads or writes.
type Paths interface {
	// SourceRoot returns the directory under which tools are cloned
	SourceRoot() string

	// ToolDir returns the clone directory for a named tool
	ToolDir(name string) string

	// ConfigDir returns the riceup config directory
	ConfigDir() string

	// ConfigFilePath returns the default user config file path
	ConfigFilePath() string

	// StateDir returns the riceup state directory
	StateDir() string

	// SentinelPath returns the sentinel file recording a completed
	// run-once step, keyed by tool and step name
	SentinelPath(tool, step string) string

	// HomeFile resolves a path relative to the user's home directory
	HomeFile(name string) string

	// BackupPath returns the backup location for a file about to be overwritten
	BackupPath(path string) string
}

type paths struct {
	sourceRoot string
	configDir  string
	stateDir   string
	home       string
}

// New creates a Paths instance. If sourceRoot is empty it is determined
// from RICEUP_SOURCE_ROOT or defaults to ~/.local/src.
func New(sourceRoot string) (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
		if home == "" {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot determine home directory")
		}
	}

	p := &paths{home: home}

	if sourceRoot == "" {
		sourceRoot = os.Getenv(EnvSourceRoot)
	}
	if sourceRoot == "" {
		sourceRoot = filepath.Join(home, DefaultSourceDir)
	}
	p.sourceRoot = ExpandHome(sourceRoot)

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.configDir = ExpandHome(configDir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, RiceupDirName)
	}

	// XDG library versions differ on StateHome, so resolve it manually
	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.stateDir = ExpandHome(stateDir)
	} else if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.stateDir = filepath.Join(stateHome, RiceupDirName)
	} else {
		p.stateDir = filepath.Join(home, ".local", "state", RiceupDirName)
	}

	return p, nil
}

func (p *paths) SourceRoot() string {
	return p.sourceRoot
}

func (p *paths) ToolDir(name string) string {
	return filepath.Join(p.sourceRoot, name)
}

func (p *paths) ConfigDir() string {
	return p.configDir
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFile)
}

func (p *paths) StateDir() string {
	return p.stateDir
}

func (p *paths) SentinelPath(tool, step string) string {
	return filepath.Join(p.stateDir, SentinelsDir, tool+"-"+step)
}

func (p *paths) HomeFile(name string) string {
	return filepath.Join(p.home, name)
}

func (p *paths) BackupPath(path string) string {
	return path + BackupSuffix
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}
