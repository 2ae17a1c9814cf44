package testutil

import (
	"fmt"

	"github.com/arthur-debert/modlist/pkg/decisions"
)

// ScriptedPrompter answers prompts in order from Answers and records every
// choice it was shown. Running out of answers is an error so tests notice
// unexpected prompts.
type ScriptedPrompter struct {
	Answers [][]int
	Asked   []decisions.Choice
}

// NewScriptedPrompter returns a prompter that will give the answers in order
func NewScriptedPrompter(answers ...[]int) *ScriptedPrompter {
	return &ScriptedPrompter{Answers: answers}
}

// Select implements decisions.Prompter
func (p *ScriptedPrompter) Select(c decisions.Choice) ([]int, error) {
	p.Asked = append(p.Asked, c)
	if len(p.Answers) == 0 {
		return nil, fmt.Errorf("unexpected prompt for %s", c.Key)
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer, nil
}

// Count returns how many prompts were shown
func (p *ScriptedPrompter) Count() int {
	return len(p.Asked)
}
