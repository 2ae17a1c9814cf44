package packages

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/types"
)

// SanitizeName keeps only ASCII letters and digits.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Rename records one attempted package directory rename.
type Rename struct {
	From string
	To   string
	// Err is set when the rename could not be performed. It is a warning,
	// never a reason to stop the run.
	Err error
}

// Sanitize renames every immediate child directory of root whose name
// contains characters outside [A-Za-z0-9]. It does not recurse. Hidden
// directories are not packages and keep their names.
// Only a failure to read root itself is returned as an error.
func Sanitize(fsys types.FS, root string) ([]Rename, error) {
	logger := logging.GetLogger("packages.sanitize")

	entries, err := readRoot(fsys, root)
	if err != nil {
		return nil, err
	}

	var renames []Rename
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		clean := SanitizeName(name)
		if clean == name {
			continue
		}

		r := Rename{From: name, To: clean}
		switch {
		case clean == "":
			r.Err = errEmptyName
		case exists(fsys, filepath.Join(root, clean)):
			r.Err = errNameTaken
		default:
			r.Err = fsys.Rename(filepath.Join(root, name), filepath.Join(root, clean))
		}

		if r.Err != nil {
			logger.Warn().
				Err(r.Err).
				Str("from", name).
				Str("to", clean).
				Msg("Could not rename package directory, keeping original name")
		} else {
			logger.Info().
				Str("from", name).
				Str("to", clean).
				Msg("Renamed package directory")
		}
		renames = append(renames, r)
	}

	return renames, nil
}

func exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}
