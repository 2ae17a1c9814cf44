package decisions

import (
	"sort"
	"strconv"
)

// Kind selects how a choice's selection is persisted and validated.
type Kind int

const (
	// KindIndex persists option indices; a record is valid when every index
	// is within the current option count.
	KindIndex Kind = iota
	// KindName persists option names; a record is valid when every name is
	// still among the current options.
	KindName
)

func (k Kind) String() string {
	if k == KindName {
		return "names"
	}
	return "indices"
}

// Choice is a question put to a Provider.
type Choice struct {
	Key     string
	Kind    Kind
	Title   string
	Options []string
}

// Resolve validates stored values against the current options and returns
// the selected indices in ascending order. ok is false when the record is
// empty or any value no longer matches.
func (c Choice) Resolve(values []string) (selected []int, ok bool) {
	if len(values) == 0 {
		return nil, false
	}

	seen := make(map[int]bool, len(values))
	for _, v := range values {
		idx := -1
		switch c.Kind {
		case KindIndex:
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 || n >= len(c.Options) {
				return nil, false
			}
			idx = n
		case KindName:
			for i, opt := range c.Options {
				if opt == v {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, false
			}
		}
		if !seen[idx] {
			seen[idx] = true
			selected = append(selected, idx)
		}
	}

	sort.Ints(selected)
	return selected, true
}

// Encode converts selected indices into the values persisted for this kind.
func (c Choice) Encode(selected []int) []string {
	values := make([]string, 0, len(selected))
	for _, idx := range selected {
		if c.Kind == KindName {
			values = append(values, c.Options[idx])
		} else {
			values = append(values, strconv.Itoa(idx))
		}
	}
	return values
}

// Filter drops out-of-range and duplicate indices and sorts the rest.
func (c Choice) Filter(indices []int) []int {
	seen := make(map[int]bool, len(indices))
	var out []int
	for _, idx := range indices {
		if idx < 0 || idx >= len(c.Options) || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
