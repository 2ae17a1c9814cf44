package prompt_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		count    int
		expected []int
	}{
		{"two_indices", "0,1", 2, []int{0, 1}},
		{"spaces_and_newline", " 1 , 0 \n", 2, []int{1, 0}},
		{"drops_non_numeric", "0,x,1", 2, []int{0, 1}},
		{"drops_out_of_range", "0,2,-1", 2, []int{0}},
		{"empty_input", "\n", 3, nil},
		{"nothing_valid", "a,b", 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, prompt.ParseSelection(tt.input, tt.count))
		})
	}
}

func TestLine_Select(t *testing.T) {
	var out bytes.Buffer
	line := prompt.NewLine(strings.NewReader("0,1\n"), &out)

	selected, err := line.Select(decisions.Choice{
		Key:     "ModB",
		Title:   "ModB",
		Options: []string{"00 Core", "01 OptionalPatch"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, selected)
	assert.Contains(t, out.String(), "[0] 00 Core")
	assert.Contains(t, out.String(), "[1] 01 OptionalPatch")
}

func TestLine_SelectReadsOneLinePerChoice(t *testing.T) {
	line := prompt.NewLine(strings.NewReader("1\n0\n"), io.Discard)
	choice := decisions.Choice{Options: []string{"a", "b"}}

	first, err := line.Select(choice)
	require.NoError(t, err)
	second, err := line.Select(choice)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, first)
	assert.Equal(t, []int{0}, second)
}

func TestLine_SelectWithoutTrailingNewline(t *testing.T) {
	line := prompt.NewLine(strings.NewReader("1"), io.Discard)
	selected, err := line.Select(decisions.Choice{Options: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, selected)
}

func TestLine_SelectClosedInput(t *testing.T) {
	line := prompt.NewLine(strings.NewReader(""), io.Discard)
	_, err := line.Select(decisions.Choice{Options: []string{"a"}})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestNew_NonTerminalUsesLine(t *testing.T) {
	for _, mode := range []string{"auto", "line", "tui"} {
		t.Run(mode, func(t *testing.T) {
			p := prompt.New(mode, strings.NewReader(""), io.Discard)
			_, ok := p.(*prompt.Line)
			assert.True(t, ok)
		})
	}
}
