package assets

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/types"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of directory listings kept in memory.
const DefaultCacheSize = 4096

// Scanner reads the input tree. Listings are cached for the lifetime of the
// scanner, which must therefore not outlive a single resolution run.
type Scanner struct {
	fs     types.FS
	layout *Layout
	cache  *lru.Cache[string, []fs.DirEntry]
}

// Findings is the result of scanning a terminal candidate.
type Findings struct {
	// ContentFiles are full paths of files with a recognized extension.
	ContentFiles []string
	// DataFolders are full paths of directories named like a data folder.
	DataFolders []string
}

// Empty reports whether the scan found nothing installable.
func (f Findings) Empty() bool {
	return len(f.ContentFiles) == 0 && len(f.DataFolders) == 0
}

// NewScanner returns a scanner with a listing cache of the given size.
func NewScanner(fsys types.FS, layout *Layout, size int) (*Scanner, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []fs.DirEntry](size)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create listing cache")
	}
	return &Scanner{fs: fsys, layout: layout, cache: cache}, nil
}

// Layout returns the conventions the scanner classifies with.
func (s *Scanner) Layout() *Layout {
	return s.layout
}

// List returns the entries of dir sorted by name.
func (s *Scanner) List(dir string) ([]fs.DirEntry, error) {
	if entries, ok := s.cache.Get(dir); ok {
		return entries, nil
	}
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPackageAccess, "cannot read directory").
			WithDetail("path", dir)
	}
	s.cache.Add(dir, entries)
	return entries, nil
}

// Subdirs returns the names of the immediate subdirectories of dir in
// lexical order. Hidden directories are skipped.
func (s *Scanner) Subdirs(dir string) ([]string, error) {
	entries, err := s.List(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Options returns the subdirectories of dir that are installer options.
func (s *Scanner) Options(dir string) ([]string, error) {
	names, err := s.Subdirs(dir)
	if err != nil {
		return nil, err
	}
	var options []string
	for _, name := range names {
		if s.layout.IsOption(name) {
			options = append(options, name)
		}
	}
	return options, nil
}

// Scan walks dir recursively collecting content files and data folders.
// A matched data folder is not descended into: everything below it belongs
// to the install root that contains it. Option directories are not
// descended into either; they are reached through their own choice node.
func (s *Scanner) Scan(dir string) (Findings, error) {
	logger := logging.GetLogger("assets.scanner")

	var found Findings
	queue := []string{dir}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		entries, err := s.List(current)
		if err != nil {
			return Findings{}, err
		}
		for _, entry := range entries {
			name := entry.Name()
			full := filepath.Join(current, name)
			if entry.IsDir() {
				if strings.HasPrefix(name, ".") {
					continue
				}
				if s.layout.IsDataFolder(name) {
					found.DataFolders = append(found.DataFolders, full)
					continue
				}
				if s.layout.IsOption(name) {
					continue
				}
				queue = append(queue, full)
				continue
			}
			if s.layout.Kind(name) != NotContent {
				found.ContentFiles = append(found.ContentFiles, full)
			}
		}
	}

	logger.Trace().
		Str("dir", dir).
		Int("contentFiles", len(found.ContentFiles)).
		Int("dataFolders", len(found.DataFolders)).
		Msg("Scanned terminal candidate")
	return found, nil
}
