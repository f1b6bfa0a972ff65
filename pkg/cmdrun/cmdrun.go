// Package cmdrun wraps execution of external tools. Every shell-out in
// riceup goes through the Runner interface so commands can be faked in
// tests and logged uniformly.
package cmdrun

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/riceup/riceup/pkg/errors"
	"github.com/riceup/riceup/pkg/logging"
)

// Runner executes an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// SystemRunner is the real Runner backed by os/exec.
type SystemRunner struct {
	logger zerolog.Logger
}

// NewSystemRunner creates a Runner that executes commands on the host.
func NewSystemRunner() *SystemRunner {
	return &SystemRunner{
		logger: logging.GetLogger("cmdrun"),
	}
}

// Run executes name with args in dir (empty dir means the process cwd)
// and returns combined stdout/stderr.
func (r *SystemRunner) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	r.logger.Debug().
		Str("command", name).
		Strs("args", args).
		Str("dir", dir).
		Msg("Executing command")

	cmd := exec.CommandContext(ctx, name, args...)

	if dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrFileAccess,
				"working directory does not exist: %s", dir)
		}
		cmd.Dir = dir
	}

	cmd.Env = os.Environ()

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	output := out.String()

	if err != nil {
		r.logger.Debug().
			Str("command", name).
			Str("output", output).
			Err(err).
			Msg("Command failed")
		return output, errors.Wrapf(err, errors.ErrCommandRun, "%s failed", name)
	}

	return output, nil
}

// CommandExists reports whether name resolves on PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
