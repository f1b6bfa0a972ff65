package riceup

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Provision a minimal X11 desktop from one config file"
	MsgUpShort         = "Install packages, build tools and generate session files"
	MsgPlanShort       = "Show what an up run would do, without doing it"
	MsgDetectShort     = "Report the detected GPU vendor and its driver packages"
	MsgGenConfigShort  = "Output or write the default configuration"
	MsgConfigShort     = "Print the effective configuration after merging all layers"
	MsgDocsShort       = "Display built-in documentation topics"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice    = "\nDRY RUN MODE - No changes were made"
	MsgConfigWritten   = "Written config to %s\n"
	MsgConfigUntouched = "Config file already exists, nothing written\n"
	MsgNoGPU           = "No discrete GPU detected; no driver packages will be installed."
	MsgGPUDetected     = "Detected GPU vendor: %s\nDriver packages: %s\n"
	MsgDocsAvailable   = "Available topics:"
	MsgDocsItem        = "  %s\n"
	MsgDocsHint        = "\nUse \"riceup docs <topic>\" to read one."

	// Error messages
	MsgErrRun          = "provisioning run failed: %w"
	MsgErrUnknownTopic = "unknown topic %q, run \"riceup docs\" for the list"
	MsgErrStepsFailed  = "%d required step(s) failed"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Path to an additional config file merged over the defaults"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagForce   = "Re-apply patches even when a previous run already applied them"
	MsgFlagYes     = "Answer advisory prompts with yes"
	MsgFlagGPU     = "Skip GPU probing and assume a vendor (nvidia, amd, intel, none)"
	MsgFlagWrite   = "Write the config to the user config path instead of printing it"
)

// Long messages
const (
	MsgRootLong = `riceup turns a fresh Debian or Ubuntu install into a working
minimal X11 desktop: apt package groups, GPU drivers matched to the
detected hardware, suckless-style tools built from patched source,
and generated session files that start X on login.

Everything is driven by a single TOML file; runs are idempotent and
safe to repeat. Start with "riceup plan" to preview, then "riceup up".`

	MsgUpLong = `Up executes the full provisioning plan: installs the configured
package groups and GPU drivers, clones, patches and builds the source
tools, and writes the X session script and profile snippet.

Required steps abort the run on failure; optional steps only record a
warning. Re-running is safe: installed packages, applied patches and
unchanged dotfiles are skipped.`

	MsgPlanLong = `Plan computes the same step list as "riceup up" and prints it with
each step's severity and skip status, without changing the system.
Equivalent to "riceup up --dry-run".`

	MsgGenConfigLong = `Outputs the built-in default configuration as a starting point for
customization. With --write, saves it to the user config path
(~/.config/riceup/riceup.toml); an existing file is never overwritten.`

	MsgDocsLong = `Displays riceup's built-in documentation. Without arguments, lists
the available topics; with a topic name, renders that document for
the terminal.`
)
