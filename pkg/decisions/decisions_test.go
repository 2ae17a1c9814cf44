package decisions_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers prompts from a fixed list and records what it was asked
type scriptedPrompter struct {
	answers [][]int
	asked   []decisions.Choice
	err     error
}

func (p *scriptedPrompter) Select(c decisions.Choice) ([]int, error) {
	p.asked = append(p.asked, c)
	if p.err != nil {
		return nil, p.err
	}
	if len(p.answers) == 0 {
		return nil, nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func newStore(t *testing.T) *decisions.Store {
	t.Helper()
	return decisions.NewStore(filesystem.NewMemory(), "/data/decisions")
}

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		top      string
		rel      string
		suffix   string
		expected string
	}{
		{"package_root", "ModB", ".", "", "ModB"},
		{"empty_rel", "ModB", "", "", "ModB"},
		{"nested", "ModB", "00 Core/Textures", "", "ModB_00_Core_Textures"},
		{"collapses_runs", "ModB", "01 - Optional (Patch)", "", "ModB_01_Optional_Patch"},
		{"plugin_suffix", "ModB", "00 Core", "_plugins", "ModB_00_Core_plugins"},
		{"trailing_symbols", "ModB", "Extras!!", "", "ModB_Extras"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decisions.Key(tt.top, tt.rel, tt.suffix))
		})
	}
}

func TestChoiceResolve(t *testing.T) {
	folders := decisions.Choice{Kind: decisions.KindIndex, Options: []string{"00 Core", "01 Patch", "02 Extra"}}
	plugins := decisions.Choice{Kind: decisions.KindName, Options: []string{"A.esp", "B.esp"}}

	tests := []struct {
		name     string
		choice   decisions.Choice
		values   []string
		selected []int
		ok       bool
	}{
		{"indices_in_range", folders, []string{"2", "0"}, []int{0, 2}, true},
		{"duplicate_index", folders, []string{"1", "1"}, []int{1}, true},
		{"index_equal_to_count", folders, []string{"0", "3"}, nil, false},
		{"negative_index", folders, []string{"-1"}, nil, false},
		{"non_numeric_index", folders, []string{"x"}, nil, false},
		{"empty_record", folders, nil, nil, false},
		{"names_present", plugins, []string{"B.esp"}, []int{1}, true},
		{"name_missing", plugins, []string{"A.esp", "C.esp"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, ok := tt.choice.Resolve(tt.values)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.selected, selected)
		})
	}
}

func TestChoiceEncodeAndFilter(t *testing.T) {
	plugins := decisions.Choice{Kind: decisions.KindName, Options: []string{"A.esp", "B.esp"}}
	assert.Equal(t, []string{"B.esp"}, plugins.Encode([]int{1}))

	folders := decisions.Choice{Kind: decisions.KindIndex, Options: []string{"a", "b"}}
	assert.Equal(t, []string{"0", "1"}, folders.Encode([]int{0, 1}))
	assert.Equal(t, []int{0, 1}, folders.Filter([]int{1, 5, -1, 0, 1}))
	assert.Nil(t, folders.Filter([]int{7}))
}

func TestStore(t *testing.T) {
	store := newStore(t)

	_, found, err := store.Load("ModB")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save("ModB", []string{"0", "1"}))
	require.NoError(t, store.Save("ModA_plugins", []string{"A.esp"}))

	values, found, err := store.Load("ModB")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"0", "1"}, values)

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ModA_plugins", records[0].Key)
	assert.Equal(t, "ModB", records[1].Key)

	require.NoError(t, store.Delete("ModB"))
	require.NoError(t, store.Delete("ModB"), "deleting twice is fine")
	_, found, err = store.Load("ModB")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_ListMissingDir(t *testing.T) {
	records, err := newStore(t).List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestProvider_PromptsAndPersists(t *testing.T) {
	store := newStore(t)
	prompter := &scriptedPrompter{answers: [][]int{{1, 0, 9}}}
	provider := decisions.NewProvider(store, prompter)

	choice := decisions.Choice{Key: "ModB", Kind: decisions.KindIndex, Options: []string{"00 Core", "01 OptionalPatch"}}
	d, err := provider.Decide(choice)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, d.Selected)
	assert.Equal(t, decisions.SourcePrompt, d.Source)
	assert.False(t, d.Discarded)

	values, found, err := store.Load("ModB")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"0", "1"}, values)

	// Second run reuses the record without prompting
	d, err = provider.Decide(choice)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, d.Selected)
	assert.Equal(t, decisions.SourceStored, d.Source)
	assert.Len(t, prompter.asked, 1)
}

func TestProvider_DiscardsStaleIndexRecord(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save("ModB", []string{"0", "2"}))

	prompter := &scriptedPrompter{answers: [][]int{{1}}}
	provider := decisions.NewProvider(store, prompter)

	d, err := provider.Decide(decisions.Choice{
		Key: "ModB", Kind: decisions.KindIndex, Options: []string{"00 Core", "01 Patch"},
	})
	require.NoError(t, err)
	assert.True(t, d.Discarded)
	assert.Equal(t, decisions.SourcePrompt, d.Source)
	assert.Equal(t, []int{1}, d.Selected)
	assert.Len(t, prompter.asked, 1)

	values, _, err := store.Load("ModB")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, values)
}

func TestProvider_DiscardsStaleNameRecord(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save("ModA_plugins", []string{"Old.esp"}))

	prompter := &scriptedPrompter{answers: [][]int{{0}}}
	provider := decisions.NewProvider(store, prompter)

	d, err := provider.Decide(decisions.Choice{
		Key: "ModA_plugins", Kind: decisions.KindName, Options: []string{"A.esp", "B.esp"},
	})
	require.NoError(t, err)
	assert.True(t, d.Discarded)
	assert.Equal(t, []int{0}, d.Selected)

	values, _, err := store.Load("ModA_plugins")
	require.NoError(t, err)
	assert.Equal(t, []string{"A.esp"}, values)
}

func TestProvider_EmptySelectionIsNotPersisted(t *testing.T) {
	store := newStore(t)
	provider := decisions.NewProvider(store, &scriptedPrompter{answers: [][]int{{7}}})

	d, err := provider.Decide(decisions.Choice{Key: "ModB", Kind: decisions.KindIndex, Options: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Empty(t, d.Selected)

	_, found, err := store.Load("ModB")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProvider_PromptError(t *testing.T) {
	provider := decisions.NewProvider(newStore(t), &scriptedPrompter{err: stderrors.New("stdin closed")})

	_, err := provider.Decide(decisions.Choice{Key: "ModB", Options: []string{"a", "b"}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPrompt))
}
