package patcher_test

import (
	"testing"

	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/filesystem"
	"github.com/arthur-debert/modlist/pkg/patcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	move   = "content=MOMWToolsPackCustom.omwaddon"
	anchor = "content=AttendMe.omwscripts"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []string
		outcome  patcher.Outcome
	}{
		{
			name:     "moves_line_after_anchor",
			lines:    []string{"content=Morrowind.esm", anchor, "content=Other.esp", move},
			expected: []string{"content=Morrowind.esm", move, anchor, "content=Other.esp"},
			outcome:  patcher.Moved,
		},
		{
			name:     "moves_line_far_before_anchor",
			lines:    []string{move, "content=Morrowind.esm", anchor},
			expected: []string{"content=Morrowind.esm", move, anchor},
			outcome:  patcher.Moved,
		},
		{
			name:     "inserts_missing_line",
			lines:    []string{"content=Morrowind.esm", anchor},
			expected: []string{"content=Morrowind.esm", move, anchor},
			outcome:  patcher.Inserted,
		},
		{
			name:     "already_in_place",
			lines:    []string{"content=Morrowind.esm", move, anchor},
			expected: []string{"content=Morrowind.esm", move, anchor},
			outcome:  patcher.Unchanged,
		},
		{
			name:     "collapses_duplicates",
			lines:    []string{move, anchor, move},
			expected: []string{move, anchor},
			outcome:  patcher.Moved,
		},
		{
			name:     "no_anchor",
			lines:    []string{"content=Morrowind.esm", move},
			expected: []string{"content=Morrowind.esm", move},
			outcome:  patcher.SkippedNoAnchor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome := patcher.Apply(tt.lines, move, anchor)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	inputs := [][]string{
		{"data=foo", anchor},
		{anchor},
		{"a", "b", anchor, "c", anchor},
		{move, "x", anchor, move, "y"},
	}

	for _, lines := range inputs {
		once, _ := patcher.Apply(lines, move, anchor)
		twice, outcome := patcher.Apply(once, move, anchor)
		assert.Equal(t, once, twice)
		assert.Equal(t, patcher.Unchanged, outcome)

		count := 0
		for i, line := range twice {
			if line == move {
				count++
				require.Less(t, i+1, len(twice))
				assert.Equal(t, anchor, twice[i+1])
			}
		}
		assert.Equal(t, 1, count)
	}
}

func TestFile(t *testing.T) {
	fsys := filesystem.NewMemory()
	path := "/cfg/openmw.cfg"
	require.NoError(t, fsys.MkdirAll("/cfg", 0755))
	require.NoError(t, fsys.WriteFile(path, []byte("content=Morrowind.esm\r\n"+anchor+"\r\n"+move+"\r\n"), 0600))

	outcome, err := patcher.File(fsys, path, move, anchor)
	require.NoError(t, err)
	assert.Equal(t, patcher.Moved, outcome)

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content=Morrowind.esm\r\n"+move+"\r\n"+anchor+"\r\n", string(data))

	outcome, err = patcher.File(fsys, path, move, anchor)
	require.NoError(t, err)
	assert.Equal(t, patcher.Unchanged, outcome)
}

func TestFile_NoAnchorIsNotAnError(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/cfg", 0755))
	require.NoError(t, fsys.WriteFile("/cfg/openmw.cfg", []byte("content=Morrowind.esm\n"), 0644))

	outcome, err := patcher.File(fsys, "/cfg/openmw.cfg", move, anchor)
	require.NoError(t, err)
	assert.Equal(t, patcher.SkippedNoAnchor, outcome)
}

func TestFile_Missing(t *testing.T) {
	_, err := patcher.File(filesystem.NewMemory(), "/cfg/none.cfg", move, anchor)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
