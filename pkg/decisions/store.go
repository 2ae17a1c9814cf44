package decisions

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/filesystem"
	"github.com/arthur-debert/modlist/pkg/types"
)

const recordExt = ".txt"

// Store persists decision records, one file per key.
type Store struct {
	fs  types.FS
	dir string
}

// Record is a stored decision as listed by Store.List.
type Record struct {
	Key    string
	Values []string
}

// NewStore returns a store rooted at dir.
func NewStore(fsys types.FS, dir string) *Store {
	return &Store{fs: fsys, dir: dir}
}

// Dir returns the directory records are kept in.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+recordExt)
}

// Load returns the stored values for key. found is false when no record exists.
func (s *Store) Load(key string) (values []string, found bool, err error) {
	data, err := s.fs.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, errors.ErrDecisionRead, "failed to read decision %s", key).
			WithDetail("key", key)
	}
	return parseValues(string(data)), true, nil
}

// Save replaces the record for key.
func (s *Store) Save(key string, values []string) error {
	content := strings.Join(values, "\n") + "\n"
	if err := filesystem.WriteAtomic(s.fs, s.path(key), []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrDecisionWrite, "failed to save decision %s", key).
			WithDetail("key", key)
	}
	return nil
}

// Delete removes the record for key. Deleting a missing record is not an error.
func (s *Store) Delete(key string) error {
	if err := s.fs.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrDecisionWrite, "failed to delete decision %s", key).
			WithDetail("key", key)
	}
	return nil
}

// List returns every stored record sorted by key.
func (s *Store) List() ([]Record, error) {
	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrDecisionRead, "failed to list decisions").
			WithDetail("dir", s.dir)
	}

	var records []Record
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) || strings.HasPrefix(name, ".") {
			continue
		}
		key := strings.TrimSuffix(name, recordExt)
		values, _, err := s.Load(key)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{Key: key, Values: values})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

func parseValues(content string) []string {
	var values []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			values = append(values, line)
		}
	}
	return values
}
