package assets

import "path/filepath"

// Classify returns the install roots of a terminal node: the parent of every
// content file and the parent of every data folder. The result may contain
// duplicates.
func Classify(f Findings) []string {
	roots := make([]string, 0, len(f.ContentFiles)+len(f.DataFolders))
	for _, file := range f.ContentFiles {
		roots = append(roots, filepath.Dir(file))
	}
	for _, folder := range f.DataFolders {
		roots = append(roots, filepath.Dir(folder))
	}
	return roots
}
