package decisions

import (
	"path/filepath"
	"strings"
)

// Key derives the decision key for a node from its package name and its path
// relative to the package root. Runs of characters other than ASCII letters
// and digits collapse into a single underscore, so the key is identical on
// every platform and every run. suffix separates choice kinds that share a
// directory, e.g. "_plugins".
func Key(topLevelName, relPath, suffix string) string {
	raw := topLevelName
	if rel := filepath.ToSlash(relPath); rel != "" && rel != "." {
		raw += "/" + rel
	}
	return collapse(raw) + suffix
}

func collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteByte(c)
			continue
		}
		pending = true
	}
	return b.String()
}
