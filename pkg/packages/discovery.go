package packages

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/types"
)

var (
	errEmptyName = stderrors.New("sanitized name is empty")
	errNameTaken = stderrors.New("sanitized name already exists")
)

// Package is a top-level directory of the package root.
type Package struct {
	Name string
	Path string
}

// Node returns the traversal node a package starts resolution from.
func (p Package) Node() types.TraversalNode {
	return types.TraversalNode{TopLevelName: p.Name, Path: p.Path}
}

// Discover returns the packages under root sorted by name.
// Hidden directories are skipped.
func Discover(fsys types.FS, root string) ([]Package, error) {
	logger := logging.GetLogger("packages.discovery")
	logger.Trace().Str("root", root).Msg("Discovering packages")

	entries, err := readRoot(fsys, root)
	if err != nil {
		return nil, err
	}

	var pkgs []Package
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(name, ".") {
			logger.Trace().Str("name", name).Msg("Skipping hidden directory")
			continue
		}
		pkgs = append(pkgs, Package{Name: name, Path: filepath.Join(root, name)})
	}

	logger.Info().Int("count", len(pkgs)).Msg("Found packages")
	return pkgs, nil
}

// readRoot validates root and returns its entries in name order
func readRoot(fsys types.FS, root string) ([]fs.DirEntry, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrPackageRoot, "package root does not exist").
				WithDetail("path", root)
		}
		return nil, errors.Wrap(err, errors.ErrPackageAccess, "cannot access package root").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrPackageRoot, "package root is not a directory").
			WithDetail("path", root)
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPackageAccess, "cannot read package root").
			WithDetail("path", root)
	}
	return entries, nil
}
