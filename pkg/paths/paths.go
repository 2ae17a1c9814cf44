// Package paths provides centralized path handling for modlist.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for locating the package root and the
// directories modlist keeps its own state in.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/modlist/pkg/errors"
)

// Environment variable names
const (
	// EnvPackageRoot is the primary environment variable for the package tree location
	EnvPackageRoot = "MODLIST_ROOT"

	// EnvDataDir overrides the XDG data directory for modlist
	EnvDataDir = "MODLIST_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for modlist
	EnvConfigDir = "MODLIST_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for modlist
	EnvStateDir = "MODLIST_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Internal layout. These are not user-configurable.
const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "modlist"

	// DecisionsDir is the data subdirectory holding persisted decision records
	DecisionsDir = "decisions"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "modlist.toml"

	// VersionStateFile is the name of the self-version state file
	VersionStateFile = "version.toml"

	// LogFileName is the name of the log file
	LogFileName = "modlist.log"
)

// Paths provides centralized path management for modlist
type Paths interface {
	PackageRoot() string
	UsedFallback() bool
	PackagePath(name string) string
	DataDir() string
	ConfigDir() string
	StateDir() string
	DecisionsDir() string
	UserConfigPath() string
	VersionStatePath() string
	LogFilePath() string
}

type paths struct {
	packageRoot  string
	xdgData      string
	xdgConfig    string
	xdgState     string
	usedFallback bool
}

// New creates a new Paths instance with the given package root.
// If packageRoot is empty, MODLIST_ROOT is consulted and the current
// working directory is used as a fallback.
func New(packageRoot string) (Paths, error) {
	p := &paths{}

	if packageRoot == "" {
		if root := os.Getenv(EnvPackageRoot); root != "" {
			p.packageRoot = ExpandHome(root)
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrPackageRoot, "failed to get current directory")
			}
			p.packageRoot = cwd
			p.usedFallback = true
		}
	} else {
		p.packageRoot = ExpandHome(packageRoot)
	}

	absRoot, err := filepath.Abs(p.packageRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPackageRoot, "failed to get absolute path for package root")
	}
	p.packageRoot = absRoot

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = ExpandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = ExpandHome(stateDir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// PackageRoot returns the directory whose children are packages
func (p *paths) PackageRoot() string {
	return p.packageRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// PackagePath returns the path to a specific package
func (p *paths) PackagePath(name string) string {
	return filepath.Join(p.packageRoot, name)
}

func (p *paths) DataDir() string {
	return p.xdgData
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) StateDir() string {
	return p.xdgState
}

// DecisionsDir returns where decision records are persisted
func (p *paths) DecisionsDir() string {
	return filepath.Join(p.xdgData, DecisionsDir)
}

func (p *paths) UserConfigPath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) VersionStatePath() string {
	return filepath.Join(p.xdgState, VersionStateFile)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
