// Package selfversion tracks the running modlist binary between runs.
//
// The SHA-256 of the executable is stored together with a local version
// number, the time of the last remote sync and the hash that sync ran
// with. When the hash changes the patch component of the version is
// bumped. Until a sync succeeds with the new hash, every successful run
// syncs regardless of the interval.
package selfversion

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/filesystem"
	"github.com/arthur-debert/modlist/pkg/internal/hashutil"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// InitialVersion is assigned the first time a binary is observed
const InitialVersion = "0.1.0"

// State is the persisted record
type State struct {
	Hash       string    `toml:"hash"`
	Version    string    `toml:"version"`
	LastSync   time.Time `toml:"last_sync"`
	SyncedHash string    `toml:"synced_hash"`
}

// Observation is the result of comparing the binary with the stored state
type Observation struct {
	State State
	// Changed is set when the hash differs from the previous observation.
	Changed bool
	// Unsynced is set when no sync has succeeded with the current hash.
	Unsynced bool
}

// ShouldSync reports whether a remote sync is due: the current binary was
// never synced, or interval has elapsed since the last sync.
func (o Observation) ShouldSync(now time.Time, interval time.Duration) bool {
	if o.Unsynced || o.State.LastSync.IsZero() {
		return true
	}
	return now.Sub(o.State.LastSync) >= interval
}

// Tracker reads and writes the state file
type Tracker struct {
	fs   types.FS
	path string
}

// NewTracker returns a tracker persisting to path
func NewTracker(fsys types.FS, path string) *Tracker {
	return &Tracker{fs: fsys, path: path}
}

// Load returns the stored state; a missing file yields the zero state
func (t *Tracker) Load() (State, error) {
	data, err := t.fs.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, errors.Wrap(err, errors.ErrVersionState, "cannot read version state").
			WithDetail("path", t.path)
	}
	var s State
	if err := toml.Unmarshal(data, &s); err != nil {
		return State{}, errors.Wrap(err, errors.ErrVersionState, "cannot parse version state").
			WithDetail("path", t.path)
	}
	return s, nil
}

func (t *Tracker) save(s State) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, errors.ErrVersionState, "cannot encode version state")
	}
	if err := filesystem.WriteAtomic(t.fs, t.path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrVersionState, "cannot write version state").
			WithDetail("path", t.path)
	}
	return nil
}

// Observe hashes the executable at exePath and records it, bumping the
// version when the hash differs from the stored one.
func (t *Tracker) Observe(exePath string) (Observation, error) {
	logger := logging.GetLogger("selfversion")

	data, err := t.fs.ReadFile(exePath)
	if err != nil {
		return Observation{}, errors.Wrap(err, errors.ErrVersionState, "cannot read executable").
			WithDetail("path", exePath)
	}
	hash, err := hashutil.CalculateChecksum(bytes.NewReader(data))
	if err != nil {
		return Observation{}, errors.Wrap(err, errors.ErrVersionState, "cannot hash executable")
	}

	state, err := t.Load()
	if err != nil {
		return Observation{}, err
	}
	if state.Hash == hash {
		return Observation{State: state, Unsynced: state.SyncedHash != hash}, nil
	}

	if state.Version == "" {
		state.Version = InitialVersion
	} else {
		state.Version = BumpPatch(state.Version)
	}
	state.Hash = hash
	if err := t.save(state); err != nil {
		return Observation{}, err
	}

	logger.Info().Str("version", state.Version).Str("hash", hash).Msg("Binary changed")
	return Observation{State: state, Changed: true, Unsynced: state.SyncedHash != hash}, nil
}

// MarkSynced records a successful remote sync of the observed binary at now
func (t *Tracker) MarkSynced(now time.Time) error {
	state, err := t.Load()
	if err != nil {
		return err
	}
	state.LastSync = now.UTC()
	state.SyncedHash = state.Hash
	return t.save(state)
}

// BumpPatch increments the last numeric component of a dotted version.
// Versions that do not parse restart at InitialVersion.
func BumpPatch(v string) string {
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return InitialVersion
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return InitialVersion
	}
	return fmt.Sprintf("%s.%s.%d", parts[0], parts[1], patch+1)
}
