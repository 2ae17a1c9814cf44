package prompt

import (
	"io"
	"os"

	"github.com/arthur-debert/modlist/pkg/config"
	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/mattn/go-isatty"
)

// New returns the prompter for mode. Auto and tui both require stdin and
// stdout to be terminals; otherwise the line prompter is used.
func New(mode string, in io.Reader, out io.Writer) decisions.Prompter {
	logger := logging.GetLogger("prompt")

	interactive := isTerminal(in) && isTerminal(out)
	switch {
	case mode == config.PromptLine:
	case interactive:
		logger.Debug().Str("mode", mode).Msg("Using form prompter")
		return NewTUI(os.Getenv("ACCESSIBLE") != "")
	case mode == config.PromptTUI:
		logger.Warn().Msg("prompt.mode is tui but the session is not a terminal, using line prompts")
	}

	logger.Debug().Str("mode", mode).Msg("Using line prompter")
	return NewLine(in, out)
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
