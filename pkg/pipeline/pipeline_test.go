// TEST TYPE: Integration Tests
// DEPENDENCIES: Memory FS, scripted prompter, fake configurator and git
// PURPOSE: Test stage gating and the run summary

package pipeline_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/modlist/pkg/configurator"
	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/pipeline"
	"github.com/arthur-debert/modlist/pkg/selfversion"
	"github.com/arthur-debert/modlist/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cfgPath = "/test/openmw/openmw.cfg"
	move    = "content=MOMWToolsPackCustom.omwaddon"
	anchor  = "content=AttendMe.omwscripts"
)

type fakeConfigurator struct {
	calls int
	err   error
}

func (f *fakeConfigurator) Run() (*configurator.Result, error) {
	f.calls++
	if f.err != nil {
		return &configurator.Result{Reported: []string{"error: bad"}}, f.err
	}
	return &configurator.Result{Lines: []string{"ok"}}, nil
}

type fakeGit struct {
	calls  []string
	failOn string
}

func (f *fakeGit) Run(dir, name string, args ...string) (string, error) {
	call := strings.Join(args, " ")
	f.calls = append(f.calls, call)
	if f.failOn != "" && strings.HasPrefix(call, f.failOn) {
		return "rejected", fmt.Errorf("exit status 1")
	}
	return "", nil
}

var now = time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T, cfgContent string) (*testutil.TestEnvironment, pipeline.Options) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Config.Configurator.OutputConfig = cfgPath
	if cfgContent != "" {
		require.NoError(t, env.FS.MkdirAll("/test/openmw", 0755))
		require.NoError(t, env.FS.WriteFile(cfgPath, []byte(cfgContent), 0644))
	}

	return env, pipeline.Options{
		FileSystem:   env.FS,
		Config:       env.Config,
		Provider:     decisions.NewProvider(env.Store, testutil.NewScriptedPrompter()),
		WorkDir:      "/test",
		Configurator: &fakeConfigurator{},
		Now:          func() time.Time { return now },
	}
}

func statusOf(t *testing.T, s *pipeline.Summary, stage pipeline.Stage) pipeline.Status {
	t.Helper()
	r, ok := s.Stage(stage)
	require.True(t, ok, "stage %s missing", stage)
	return r.Status
}

func TestRun_Success(t *testing.T) {
	env, opts := setup(t, "content=Morrowind.esm\n"+anchor+"\n"+move+"\n")
	env.WithFileTree(testutil.FileTree{
		"ModA": testutil.FileTree{
			"00 Core": testutil.FileTree{"Textures": testutil.FileTree{"a.dds": "x"}, "A.esp": "a"},
		},
		"Mod Z!": testutil.FileTree{},
	})

	summary := pipeline.New(opts).Run()

	require.True(t, summary.Success)
	assert.Len(t, summary.Stages, len(pipeline.Stages))
	assert.Equal(t, pipeline.StatusOK, statusOf(t, summary, pipeline.StageSanitize))
	assert.Equal(t, pipeline.StatusOK, statusOf(t, summary, pipeline.StageManifest))
	assert.Equal(t, pipeline.StatusOK, statusOf(t, summary, pipeline.StagePatch))
	assert.Equal(t, pipeline.StatusSkipped, statusOf(t, summary, pipeline.StageMirror))

	require.Len(t, summary.Renames, 1)
	assert.Equal(t, "ModZ", summary.Renames[0].To)
	assert.NoError(t, summary.Renames[0].Err)
	assert.Equal(t, []string{env.Path("ModA", "00 Core")}, summary.Resolution.Assets)

	data, err := env.FS.ReadFile(env.Config.Manifest.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "A.esp")

	patched, err := env.FS.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "content=Morrowind.esm\n"+move+"\n"+anchor+"\n", string(patched))
}

func TestRun_ConfiguratorFailureGatesLaterStages(t *testing.T) {
	env, opts := setup(t, anchor+"\n")
	env.WithFileTree(testutil.FileTree{"ModA": testutil.FileTree{"Meshes": testutil.FileTree{"m.nif": "x"}}})
	opts.Configurator = &fakeConfigurator{
		err: errors.New(errors.ErrConfiguratorReported, "configurator reported 1 problem(s)"),
	}
	git := &fakeGit{}
	opts.Mirror = git
	env.Config.Mirror.Enabled = true

	summary := pipeline.New(opts).Run()

	assert.False(t, summary.Success)
	result, _ := summary.Stage(pipeline.StageConfigurator)
	assert.Equal(t, pipeline.StatusFailed, result.Status)
	assert.Equal(t, []string{"error: bad"}, result.Warnings)
	assert.Equal(t, pipeline.StatusSkipped, statusOf(t, summary, pipeline.StagePatch))
	assert.Equal(t, pipeline.StatusSkipped, statusOf(t, summary, pipeline.StageMirror))
	assert.Empty(t, git.calls)

	cfg, err := env.FS.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, anchor+"\n", string(cfg), "config must not be patched after a failure")
}

func TestRun_EmptyResolutionHaltsWithoutFailing(t *testing.T) {
	env, opts := setup(t, "")
	env.WithFileTree(testutil.FileTree{"Docs": testutil.FileTree{"readme.txt": "x"}})
	fake := &fakeConfigurator{}
	opts.Configurator = fake

	summary := pipeline.New(opts).Run()

	assert.True(t, summary.Success)
	assert.Nil(t, summary.Document)
	assert.Equal(t, pipeline.StatusSkipped, statusOf(t, summary, pipeline.StageCompile))
	assert.Equal(t, pipeline.StatusSkipped, statusOf(t, summary, pipeline.StageManifest))
	assert.Zero(t, fake.calls)

	_, err := env.FS.Stat(env.Config.Manifest.Path)
	assert.Error(t, err)
}

func TestRun_MissingAnchorIsAWarning(t *testing.T) {
	env, opts := setup(t, "content=Morrowind.esm\n")
	env.WithFileTree(testutil.FileTree{"ModA": testutil.FileTree{"Meshes": testutil.FileTree{"m.nif": "x"}}})

	summary := pipeline.New(opts).Run()

	assert.True(t, summary.Success)
	result, _ := summary.Stage(pipeline.StagePatch)
	assert.Equal(t, pipeline.StatusWarning, result.Status)
	assert.NotEmpty(t, result.Warnings)
}

func TestRun_MirrorWhenDue(t *testing.T) {
	env, opts := setup(t, anchor+"\n")
	env.WithFileTree(testutil.FileTree{"ModA": testutil.FileTree{"Meshes": testutil.FileTree{"m.nif": "x"}}})
	require.NoError(t, env.FS.MkdirAll("/bin", 0755))
	require.NoError(t, env.FS.WriteFile("/bin/modlist", []byte("binary"), 0755))

	env.Config.Mirror.Enabled = true
	git := &fakeGit{}
	opts.Mirror = git
	opts.Tracker = selfversion.NewTracker(env.FS, "/test/state/version.toml")
	opts.Executable = "/bin/modlist"

	summary := pipeline.New(opts).Run()
	require.True(t, summary.Success)
	assert.Equal(t, pipeline.StatusOK, statusOf(t, summary, pipeline.StageMirror))
	assert.Contains(t, git.calls, "push origin main")

	// Same binary, within the interval: not due
	git.calls = nil
	summary = pipeline.New(opts).Run()
	require.True(t, summary.Success)
	result, _ := summary.Stage(pipeline.StageMirror)
	assert.Equal(t, pipeline.StatusSkipped, result.Status)
	assert.Equal(t, "not due", result.Detail)
	assert.Empty(t, git.calls)
}

func TestRun_MirrorRetriedAfterFailedPush(t *testing.T) {
	env, opts := setup(t, anchor+"\n")
	env.WithFileTree(testutil.FileTree{"ModA": testutil.FileTree{"Meshes": testutil.FileTree{"m.nif": "x"}}})
	require.NoError(t, env.FS.MkdirAll("/bin", 0755))
	require.NoError(t, env.FS.WriteFile("/bin/modlist", []byte("binary"), 0755))

	env.Config.Mirror.Enabled = true
	git := &fakeGit{failOn: "push"}
	opts.Mirror = git
	opts.Tracker = selfversion.NewTracker(env.FS, "/test/state/version.toml")
	opts.Executable = "/bin/modlist"

	summary := pipeline.New(opts).Run()
	assert.False(t, summary.Success)
	assert.Equal(t, pipeline.StatusFailed, statusOf(t, summary, pipeline.StageMirror))

	// Same binary, push works again: the sync is still due
	git.failOn = ""
	git.calls = nil
	summary = pipeline.New(opts).Run()
	require.True(t, summary.Success)
	assert.Equal(t, pipeline.StatusOK, statusOf(t, summary, pipeline.StageMirror))
	assert.Contains(t, git.calls, "push origin main")
}

func TestRun_ManifestRotationKeepsRetention(t *testing.T) {
	env, opts := setup(t, anchor+"\n")
	env.WithFileTree(testutil.FileTree{"ModA": testutil.FileTree{"Meshes": testutil.FileTree{"m.nif": "x"}}})
	env.Config.Backup.Retention = 2

	for i := 0; i < 4; i++ {
		tick := now.Add(time.Duration(i) * time.Minute)
		opts.Now = func() time.Time { return tick }
		summary := pipeline.New(opts).Run()
		require.True(t, summary.Success)
		require.NoError(t, env.FS.Chtimes(env.Config.Manifest.Path, tick, tick))
	}

	entries, err := env.FS.ReadDir(env.OutputDir)
	require.NoError(t, err)
	backups := 0
	for _, e := range entries {
		if strings.Contains(e.Name(), ".backup.") {
			backups++
		}
	}
	assert.Equal(t, 2, backups)
}

func TestPreview_WritesNothing(t *testing.T) {
	env, opts := setup(t, anchor+"\n")
	env.WithFileTree(testutil.FileTree{"ModA": testutil.FileTree{"Meshes": testutil.FileTree{"m.nif": "x"}}})
	fake := &fakeConfigurator{}
	opts.Configurator = fake

	summary := pipeline.New(opts).Preview()

	assert.True(t, summary.Success)
	assert.Len(t, summary.Stages, 3)
	assert.NotNil(t, summary.Document)
	assert.Zero(t, fake.calls)
	_, err := env.FS.Stat(env.Config.Manifest.Path)
	assert.Error(t, err)
}

func TestRun_MissingRootFails(t *testing.T) {
	_, opts := setup(t, "")
	opts.Config.Packages.Root = "/nowhere"

	summary := pipeline.New(opts).Run()
	assert.False(t, summary.Success)
	result, _ := summary.Stage(pipeline.StageSanitize)
	assert.Equal(t, pipeline.StatusFailed, result.Status)
	assert.True(t, errors.IsErrorCode(result.Err, errors.ErrPackageRoot))
}
