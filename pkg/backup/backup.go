// Package backup rotates generated files into timestamped generations and
// prunes old generations beyond a retention count.
//
// A file named "x.toml" is rotated to "x.toml.backup.20240102-150405".
// The same rotator prunes backups that other tools create with that naming
// pattern, such as the configurator's backups of its own output.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/types"
)

// TimestampFormat is the layout of the timestamp appended to backups
const TimestampFormat = "20060102-150405"

const marker = ".backup."

// Rotator archives and prunes generations of a file
type Rotator struct {
	fs        types.FS
	retention int
	now       func() time.Time
}

// NewRotator returns a rotator keeping at most retention backups per file
func NewRotator(fsys types.FS, retention int) *Rotator {
	if retention < 1 {
		retention = 1
	}
	return &Rotator{fs: fsys, retention: retention, now: time.Now}
}

// WithClock replaces the clock used for timestamps
func (r *Rotator) WithClock(now func() time.Time) *Rotator {
	r.now = now
	return r
}

// Rotate renames path to a timestamped backup and prunes old backups.
// A missing path is not an error; nothing is rotated and "" is returned.
func (r *Rotator) Rotate(path string) (string, error) {
	logger := logging.GetLogger("backup")

	if _, err := r.fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, errors.ErrBackupRotate, "cannot stat file to back up").
			WithDetail("path", path)
	}

	target := r.backupName(path)
	if err := r.fs.Rename(path, target); err != nil {
		return "", errors.Wrap(err, errors.ErrBackupRotate, "failed to rename file to backup").
			WithDetail("path", path).
			WithDetail("backup", target)
	}
	logger.Info().Str("path", path).Str("backup", target).Msg("Rotated previous file")

	if _, err := r.Prune(path); err != nil {
		return target, err
	}
	return target, nil
}

// backupName returns a backup name for path that does not exist yet
func (r *Rotator) backupName(path string) string {
	base := path + marker + r.now().Format(TimestampFormat)
	name := base
	for i := 1; ; i++ {
		if _, err := r.fs.Stat(name); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s-%d", base, i)
	}
}

// Backups returns the backups of path, newest first
func (r *Rotator) Backups(path string) ([]string, error) {
	dir := filepath.Dir(path)
	prefix := filepath.Base(path) + marker

	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrBackupRotate, "cannot list backups").
			WithDetail("dir", dir)
	}

	type backup struct {
		path    string
		modTime time.Time
		stamp   string
		seq     int
	}
	var found []backup
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrBackupRotate, "cannot stat backup").
				WithDetail("path", filepath.Join(dir, entry.Name()))
		}
		stamp, seq := splitSuffix(strings.TrimPrefix(entry.Name(), prefix))
		found = append(found, backup{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
			stamp:   stamp,
			seq:     seq,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].modTime.Equal(found[j].modTime) {
			return found[i].modTime.After(found[j].modTime)
		}
		if found[i].stamp != found[j].stamp {
			return found[i].stamp > found[j].stamp
		}
		return found[i].seq > found[j].seq
	})

	paths := make([]string, len(found))
	for i, b := range found {
		paths[i] = b.path
	}
	return paths, nil
}

// splitSuffix splits "20240102-150405-3" into its timestamp and the
// collision counter added by backupName. Names without a counter get 0.
func splitSuffix(suffix string) (string, int) {
	n := len(TimestampFormat)
	if len(suffix) > n+1 && suffix[n] == '-' {
		if seq, err := strconv.Atoi(suffix[n+1:]); err == nil {
			return suffix[:n], seq
		}
	}
	return suffix, 0
}

// Prune deletes every backup of path beyond the retention count and returns
// the removed paths.
func (r *Rotator) Prune(path string) ([]string, error) {
	logger := logging.GetLogger("backup")

	backups, err := r.Backups(path)
	if err != nil {
		return nil, err
	}
	if len(backups) <= r.retention {
		return nil, nil
	}

	var removed []string
	for _, old := range backups[r.retention:] {
		if err := r.fs.Remove(old); err != nil {
			return removed, errors.Wrap(err, errors.ErrBackupRotate, "failed to remove old backup").
				WithDetail("path", old)
		}
		logger.Debug().Str("backup", old).Msg("Removed old backup")
		removed = append(removed, old)
	}
	logger.Info().
		Str("path", path).
		Int("removed", len(removed)).
		Int("retention", r.retention).
		Msg("Pruned backups")
	return removed, nil
}
