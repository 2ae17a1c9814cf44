// pkg/testutil/environment.go
// DEPENDENCIES: pkg/filesystem, pkg/decisions, pkg/config
// PURPOSE: Orchestrate test environments with proper dependencies

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modlist/pkg/config"
	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/filesystem"
	"github.com/arthur-debert/modlist/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a package root, a decision store and the
// filesystem both live on.
type TestEnvironment struct {
	Root        string
	DecisionDir string
	OutputDir   string

	FS     types.FS
	Store  *decisions.Store
	Config *config.Config

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	base := "/test"
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.FS = filesystem.NewOS()
		base = t.TempDir()
	default:
		t.Fatalf("unknown environment type %d", envType)
	}

	env.Root = filepath.Join(base, "packages")
	env.DecisionDir = filepath.Join(base, "data", "decisions")
	env.OutputDir = filepath.Join(base, "output")
	for _, dir := range []string{env.Root, env.DecisionDir, env.OutputDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	env.Store = decisions.NewStore(env.FS, env.DecisionDir)
	env.Config = config.Default()
	env.Config.Packages.Root = env.Root
	env.Config.Decisions.Dir = env.DecisionDir
	env.Config.Manifest.Path = filepath.Join(env.OutputDir, "momw-customizations.toml")
	return env
}

// WithFileTree creates a complete file tree under the package root
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.Root, tree)
	return env
}

// Path joins parts onto the package root
func (env *TestEnvironment) Path(parts ...string) string {
	return filepath.Join(append([]string{env.Root}, parts...)...)
}

// FileTree represents a directory structure for testing. String values are
// file contents; FileTree values are directories.
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", filepath.Dir(fullPath), err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
