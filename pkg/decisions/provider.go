package decisions

import (
	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/logging"
)

// Source tells where a decision came from.
type Source int

const (
	SourceStored Source = iota
	SourcePrompt
)

// Decision is a Provider's answer to a Choice.
type Decision struct {
	// Selected holds option indices in ascending order. It may be empty when
	// the operator selected nothing usable.
	Selected []int
	Source   Source
	// Discarded reports that a stored record existed but no longer matched
	// the current options and was deleted.
	Discarded bool
}

// Provider answers choices.
type Provider interface {
	Decide(c Choice) (Decision, error)
}

// Prompter asks an operator to pick options. Implementations live in
// pkg/prompt. Returned indices may be unsorted, duplicated, or out of
// range; providers filter them.
type Prompter interface {
	Select(c Choice) ([]int, error)
}

// NewProvider composes the cached strategy in front of the interactive one.
func NewProvider(store *Store, prompter Prompter) Provider {
	return Cached(store, Interactive(store, prompter))
}

type cached struct {
	store *Store
	next  Provider
}

// Cached answers from a valid stored record and otherwise defers to next.
// Stale records are deleted before next is asked.
func Cached(store *Store, next Provider) Provider {
	return &cached{store: store, next: next}
}

func (p *cached) Decide(c Choice) (Decision, error) {
	logger := logging.GetLogger("decisions")

	values, found, err := p.store.Load(c.Key)
	if err != nil {
		return Decision{}, err
	}

	discarded := false
	if found {
		if selected, ok := c.Resolve(values); ok {
			logger.Debug().
				Str("key", c.Key).
				Ints("selected", selected).
				Msg("Reusing stored decision")
			return Decision{Selected: selected, Source: SourceStored}, nil
		}

		logger.Info().
			Str("key", c.Key).
			Str("kind", c.Kind.String()).
			Strs("stored", values).
			Int("options", len(c.Options)).
			Msg("Stored decision no longer matches the options, discarding")
		if err := p.store.Delete(c.Key); err != nil {
			return Decision{}, err
		}
		discarded = true
	}

	d, err := p.next.Decide(c)
	d.Discarded = d.Discarded || discarded
	return d, err
}

type interactive struct {
	store    *Store
	prompter Prompter
}

// Interactive prompts for every choice and writes non-empty selections
// through to store.
func Interactive(store *Store, prompter Prompter) Provider {
	return &interactive{store: store, prompter: prompter}
}

func (p *interactive) Decide(c Choice) (Decision, error) {
	raw, err := p.prompter.Select(c)
	if err != nil {
		return Decision{}, errors.Wrapf(err, errors.ErrPrompt, "failed to ask for %s", c.Key).
			WithDetail("key", c.Key)
	}

	selected := c.Filter(raw)
	if len(selected) > 0 {
		if err := p.store.Save(c.Key, c.Encode(selected)); err != nil {
			return Decision{}, err
		}
	}
	return Decision{Selected: selected, Source: SourcePrompt}, nil
}
