package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/modlist/pkg/decisions"
)

// Line asks for a selection by printing "[i] option" lines and reading one
// line of comma-separated indices.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine returns a line prompter reading from in and writing to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

// Select implements decisions.Prompter.
func (l *Line) Select(c decisions.Choice) ([]int, error) {
	if c.Title != "" {
		fmt.Fprintf(l.out, "\n%s\n", c.Title)
	}
	for i, opt := range c.Options {
		fmt.Fprintf(l.out, "  [%d] %s\n", i, opt)
	}
	fmt.Fprint(l.out, "Select (comma-separated): ")

	input, err := l.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if err == io.EOF && input == "" {
		return nil, io.ErrUnexpectedEOF
	}
	return ParseSelection(input, len(c.Options)), nil
}

// ParseSelection turns "0, 2,x" into the in-range indices it names, in input
// order. Non-numeric and out-of-range entries are dropped.
func ParseSelection(input string, optionCount int) []int {
	var selected []int
	for _, part := range strings.Split(input, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n >= optionCount {
			continue
		}
		selected = append(selected, n)
	}
	return selected
}
