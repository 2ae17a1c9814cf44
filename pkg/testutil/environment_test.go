package testutil_test

import (
	"testing"

	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		envType testutil.EnvType
	}{
		{name: "memory_only", envType: testutil.EnvMemoryOnly},
		{name: "isolated", envType: testutil.EnvIsolated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, tt.envType)

			info, err := env.FS.Stat(env.Root)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
			assert.Equal(t, env.Root, env.Config.Packages.Root)
			assert.Equal(t, env.DecisionDir, env.Store.Dir())

			env.WithFileTree(testutil.FileTree{
				"ModA": testutil.FileTree{
					"Meshes":   testutil.FileTree{"a.nif": "mesh"},
					"ModA.esp": "plugin",
				},
			})

			data, err := env.FS.ReadFile(env.Path("ModA", "Meshes", "a.nif"))
			require.NoError(t, err)
			assert.Equal(t, "mesh", string(data))

			info, err = env.FS.Stat(env.Path("ModA"))
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
}

func TestScriptedPrompter(t *testing.T) {
	p := testutil.NewScriptedPrompter([]int{1})

	got, err := p.Select(decisions.Choice{Key: "ModB", Options: []string{"01 A", "02 B"}})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)

	_, err = p.Select(decisions.Choice{Key: "ModC", Options: []string{"01 A", "02 B"}})
	assert.Error(t, err, "running out of answers must fail")
	assert.Equal(t, 2, p.Count())
}
