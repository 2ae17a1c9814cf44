package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modlist/pkg/filesystem"
	"github.com/arthur-debert/modlist/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := filesystem.NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	require.NoError(t, fs.MkdirAll(filepath.Join(tmpDir, "sub", "dir"), 0755))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, fs.Remove(testFile))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestAferoReadDirIsSorted(t *testing.T) {
	fs := filesystem.NewMemory()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, fs.MkdirAll(filepath.Join("/root", name), 0755))
	}

	entries, err := fs.ReadDir("/root")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestWriteAtomic(t *testing.T) {
	tests := []struct {
		name string
		fs   func(t *testing.T) (types.FS, string)
	}{
		{
			name: "memory",
			fs: func(t *testing.T) (types.FS, string) {
				return filesystem.NewMemory(), "/out"
			},
		},
		{
			name: "os",
			fs: func(t *testing.T) (types.FS, string) {
				return filesystem.NewOS(), t.TempDir()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, dir := tt.fs(t)
			target := filepath.Join(dir, "nested", "file.txt")

			require.NoError(t, filesystem.WriteAtomic(fs, target, []byte("one"), 0644))
			require.NoError(t, filesystem.WriteAtomic(fs, target, []byte("two"), 0644))

			content, err := fs.ReadFile(target)
			require.NoError(t, err)
			assert.Equal(t, "two", string(content))

			entries, err := fs.ReadDir(filepath.Dir(target))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp files must not be left behind")
		})
	}
}
