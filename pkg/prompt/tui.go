package prompt

import (
	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/charmbracelet/huh"
)

// TUI asks for a selection with a huh multi-select form.
type TUI struct {
	accessible bool
}

// NewTUI returns a form-based prompter. accessible switches huh to its
// screen-reader friendly mode.
func NewTUI(accessible bool) *TUI {
	return &TUI{accessible: accessible}
}

// Select implements decisions.Prompter. An aborted form yields an empty
// selection, which skips the branch.
func (t *TUI) Select(c decisions.Choice) ([]int, error) {
	var selected []int

	opts := make([]huh.Option[int], len(c.Options))
	for i, opt := range c.Options {
		opts[i] = huh.NewOption(opt, i)
	}

	title := c.Title
	if title == "" {
		title = c.Key
	}

	sel := huh.NewMultiSelect[int]().
		Title(title).
		Description("space to toggle, enter to confirm").
		Options(opts...).
		Value(&selected)

	form := huh.NewForm(huh.NewGroup(sel)).
		WithAccessible(t.accessible)

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return nil, nil
		}
		return nil, err
	}
	return selected, nil
}
