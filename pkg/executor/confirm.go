package executor

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/riceup/riceup/pkg/logging"
)

// InteractiveConfirmer prompts on the terminal via pterm. Outside an
// interactive terminal it proceeds with a logged warning rather than
// blocking, so unattended runs never hang on a prompt.
type InteractiveConfirmer struct{}

func (InteractiveConfirmer) Confirm(message string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		logger := logging.GetLogger("executor")
		logger.Warn().Str("warning", message).
			Msg("Non-interactive run, proceeding past advisory warning")
		return true
	}

	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(true).
		Show(message)
	if err != nil {
		return true
	}
	return ok
}

// AutoConfirmer always answers yes; used with --yes and in tests.
type AutoConfirmer struct{}

func (AutoConfirmer) Confirm(string) bool { return true }
