package modlist

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort           = "Build a mod customization manifest from a package tree"
	MsgRunShort            = "Resolve packages, write the manifest and apply it"
	MsgResolveShort        = "Resolve packages and print the manifest without writing"
	MsgDecisionsShort      = "Manage stored answers"
	MsgDecisionsListShort  = "List stored answers"
	MsgDecisionsClearShort = "Forget stored answers"
	MsgPatchShort          = "Fix plugin ordering in a config file"
	MsgGenConfigShort      = "Print or write the default configuration"
	MsgGenConfigLong       = "Print the default configuration with every value commented out, or write it to the user config file with -w."
	MsgVersionShort        = "Print version information"
	MsgCompletionShort     = "Generate shell completion script"

	// Status messages
	MsgRunSucceeded      = "Run finished."
	MsgRunFailedNotice   = "Run stopped at a failed stage."
	MsgNothingToWrite    = "No install roots resolved, nothing would be written."
	MsgNoDecisions       = "No stored answers."
	MsgDecisionItem      = "  %s: %s\n"
	MsgDecisionsCleared  = "Forgot %d stored answer(s).\n"
	MsgPatchOutcome      = "%s: %s\n"
	MsgConfigWritten     = "Wrote default configuration to %s\n"
	MsgStageLine         = "%s %s %s\n"
	MsgStageWarning      = "      %s\n"
	MsgRenameLine        = "  renamed %s -> %s\n"
	MsgManifestWritten   = "Manifest: %s\n"
	MsgVersionFormat     = "modlist version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrInitPaths    = "failed to initialize paths: %w"
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrRunFailed    = "run failed at stage %s: %w"
	MsgErrResolve      = "failed to resolve packages: %w"
	MsgErrRender       = "failed to render manifest: %w"
	MsgErrDecisions    = "failed to read stored answers: %w"
	MsgErrClear        = "failed to forget answer %s: %w"
	MsgErrPatch        = "failed to patch %s: %w"
	MsgErrNoPatchFile  = "no file to patch: pass one or set patch.file"
	MsgErrConfigExists = "%s already exists, not overwriting"
	MsgErrWriteConfig  = "failed to write configuration: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot    = "Package root (default: packages.root, MODLIST_ROOT or the current directory)"
	MsgFlagConfig  = "User configuration file (default: $XDG_CONFIG_HOME/modlist/modlist.toml)"
	MsgFlagFormat  = "Output format: auto, terminal or text"
	MsgFlagPrompt  = "Prompt mode: auto, line or tui (overrides prompt.mode)"
	MsgFlagReport  = "Print a per-package report instead of the manifest"
	MsgFlagWrite   = "Write the configuration to the user config file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/resolve-long.txt
	msgResolveLongRaw string
	MsgResolveLong    = strings.TrimSpace(msgResolveLongRaw)

	//go:embed msgs/resolve-example.txt
	msgResolveExampleRaw string
	MsgResolveExample    = strings.TrimRight(msgResolveExampleRaw, "\n")

	//go:embed msgs/decisions-long.txt
	msgDecisionsLongRaw string
	MsgDecisionsLong    = strings.TrimSpace(msgDecisionsLongRaw)

	//go:embed msgs/decisions-example.txt
	msgDecisionsExampleRaw string
	MsgDecisionsExample    = strings.TrimRight(msgDecisionsExampleRaw, "\n")

	//go:embed msgs/patch-long.txt
	msgPatchLongRaw string
	MsgPatchLong    = strings.TrimSpace(msgPatchLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
