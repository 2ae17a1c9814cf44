// Package patcher enforces one ordering rule on a line-oriented config file:
// a given line must appear exactly once, immediately before an anchor line.
package patcher

import (
	"os"
	"strings"

	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/filesystem"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/types"
)

// Outcome describes what Apply did
type Outcome int

const (
	// Unchanged means the file already satisfied the rule
	Unchanged Outcome = iota
	// Moved means the line existed elsewhere and was moved before the anchor
	Moved
	// Inserted means the line was missing and was added before the anchor
	Inserted
	// SkippedNoAnchor means the anchor is absent; nothing was changed
	SkippedNoAnchor
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Inserted:
		return "inserted"
	case SkippedNoAnchor:
		return "skipped: anchor not found"
	default:
		return "unchanged"
	}
}

// Apply returns lines with every occurrence of move removed and a single
// copy placed immediately before the first anchor. Lines are compared with
// surrounding whitespace trimmed.
func Apply(lines []string, move, anchor string) ([]string, Outcome) {
	move = strings.TrimSpace(move)
	anchor = strings.TrimSpace(anchor)

	if indexOf(lines, anchor) < 0 {
		return lines, SkippedNoAnchor
	}

	out := make([]string, 0, len(lines)+1)
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == move {
			found = true
			continue
		}
		out = append(out, line)
	}

	at := indexOf(out, anchor)
	out = append(out, "")
	copy(out[at+1:], out[at:])
	out[at] = move

	switch {
	case equal(lines, out):
		return lines, Unchanged
	case found:
		return out, Moved
	default:
		return out, Inserted
	}
}

// File applies the rule to the file at path, replacing it atomically when
// it changes. Line endings and a trailing newline are preserved.
func File(fsys types.FS, path, move, anchor string) (Outcome, error) {
	logger := logging.GetLogger("patcher")

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Unchanged, errors.Wrap(err, errors.ErrNotFound, "config file to patch does not exist").
				WithDetail("path", path)
		}
		return Unchanged, errors.Wrap(err, errors.ErrPatchRead, "cannot read config file").
			WithDetail("path", path)
	}

	content := string(data)
	eol := "\n"
	if strings.Contains(content, "\r\n") {
		eol = "\r\n"
	}
	trailing := strings.HasSuffix(content, eol)
	content = strings.TrimSuffix(content, eol)

	var lines []string
	if content != "" {
		lines = strings.Split(content, eol)
	}

	patched, outcome := Apply(lines, move, anchor)
	logger.Info().Str("path", path).Str("outcome", outcome.String()).Msg("Patched config file")
	if outcome == Unchanged || outcome == SkippedNoAnchor {
		return outcome, nil
	}

	result := strings.Join(patched, eol)
	if trailing {
		result += eol
	}

	perm := os.FileMode(0644)
	if info, err := fsys.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := filesystem.WriteAtomic(fsys, path, []byte(result), perm); err != nil {
		return outcome, errors.Wrap(err, errors.ErrPatchWrite, "failed to write patched config file").
			WithDetail("path", path)
	}
	return outcome, nil
}

func indexOf(lines []string, want string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == want {
			return i
		}
	}
	return -1
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
