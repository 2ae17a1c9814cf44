package manifest

import (
	"path/filepath"

	"github.com/arthur-debert/modlist/pkg/backup"
	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/filesystem"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/types"
)

// Write renders doc to path. An existing file is rotated to a backup first;
// the new file replaces it atomically.
func Write(fsys types.FS, path string, doc *Document, rotator *backup.Rotator) error {
	logger := logging.GetLogger("manifest")

	data, err := Render(doc)
	if err != nil {
		return err
	}

	if _, err := rotator.Rotate(path); err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to back up previous manifest").
			WithDetail("path", path)
	}

	if err := filesystem.WriteAtomic(fsys, path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to write manifest").
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Int("bytes", len(data)).Msg("Wrote manifest")
	return nil
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
