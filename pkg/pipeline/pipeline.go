// Package pipeline runs a complete modlist pass as a sequence of gated
// stages: sanitize → resolve → compile → manifest → configurator → patch →
// mirror.
//
// A single success flag is carried through the run. A fail-fast stage sets
// it to false and every later stage is recorded as skipped instead of
// running. Non-fatal problems (failed renames, a missing patch anchor) are
// recorded as warnings and leave the flag untouched. An empty resolution
// halts the run after compile without failing it.
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/modlist/pkg/config"
	"github.com/arthur-debert/modlist/pkg/configurator"
	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/manifest"
	"github.com/arthur-debert/modlist/pkg/mirror"
	"github.com/arthur-debert/modlist/pkg/packages"
	"github.com/arthur-debert/modlist/pkg/paths"
	"github.com/arthur-debert/modlist/pkg/selfversion"
	"github.com/arthur-debert/modlist/pkg/types"
	"github.com/rs/zerolog"
)

// Stage names a pipeline step
type Stage string

const (
	StageSanitize     Stage = "sanitize"
	StageResolve      Stage = "resolve"
	StageCompile      Stage = "compile"
	StageManifest     Stage = "manifest"
	StageConfigurator Stage = "configurator"
	StagePatch        Stage = "patch"
	StageMirror       Stage = "mirror"
)

// Stages lists every stage in run order
var Stages = []Stage{
	StageSanitize, StageResolve, StageCompile, StageManifest,
	StageConfigurator, StagePatch, StageMirror,
}

// Status is the outcome of a stage
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StageResult records what one stage did
type StageResult struct {
	Stage    Stage
	Status   Status
	Detail   string
	Warnings []string
	Err      error
	Duration time.Duration
}

// Summary is the outcome of a run
type Summary struct {
	Success      bool
	Stages       []StageResult
	Renames      []packages.Rename
	Resolution   *types.Resolution
	Document     *manifest.Document
	ManifestPath string
}

// Stage returns the result recorded for s, if any
func (s *Summary) Stage(stage Stage) (StageResult, bool) {
	for _, r := range s.Stages {
		if r.Stage == stage {
			return r, true
		}
	}
	return StageResult{}, false
}

// Configurator runs the external configurator to completion
type Configurator interface {
	Run() (*configurator.Result, error)
}

// Options contains the collaborators of a run
type Options struct {
	FileSystem types.FS
	Config     *config.Config
	Provider   decisions.Provider
	// WorkDir resolves relative manifest and exclusion paths.
	WorkDir string

	Configurator Configurator
	Mirror       mirror.Runner
	Tracker      *selfversion.Tracker
	// Executable is hashed to decide whether a mirror sync is due.
	Executable string

	Now func() time.Time
}

// Pipeline runs the stages against one configuration
type Pipeline struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a pipeline
func New(opts Options) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{opts: opts, logger: logging.GetLogger("pipeline")}
}

// run carries the mutable state of one pass
type run struct {
	summary *Summary
	halted  bool
}

func (r *run) gated() bool {
	return !r.summary.Success || r.halted
}

// Run executes every stage
func (p *Pipeline) Run() *Summary {
	return p.execute(Stages)
}

// Preview runs sanitize, resolve and compile only. Nothing is written
// except renamed package directories and decision records.
func (p *Pipeline) Preview() *Summary {
	return p.execute(Stages[:3])
}

func (p *Pipeline) execute(stages []Stage) *Summary {
	r := &run{summary: &Summary{Success: true}}
	done := logging.LogOperationStart(p.logger, "pipeline")
	defer done()

	for _, stage := range stages {
		if r.gated() {
			r.summary.Stages = append(r.summary.Stages, StageResult{Stage: stage, Status: StatusSkipped})
			continue
		}

		start := p.opts.Now()
		result := p.runStage(stage, r)
		result.Stage = stage
		result.Duration = p.opts.Now().Sub(start)
		r.summary.Stages = append(r.summary.Stages, result)

		event := p.logger.Info()
		if result.Status == StatusFailed {
			r.summary.Success = false
			event = p.logger.Error().Err(result.Err)
		}
		event.Str("stage", string(stage)).
			Str("status", string(result.Status)).
			Str("detail", result.Detail).
			Msg("Stage finished")
	}

	p.logger.Info().Bool("success", r.summary.Success).Msg("Run finished")
	return r.summary
}

func (p *Pipeline) runStage(stage Stage, r *run) StageResult {
	switch stage {
	case StageSanitize:
		return p.sanitize(r)
	case StageResolve:
		return p.resolve(r)
	case StageCompile:
		return p.compile(r)
	case StageManifest:
		return p.writeManifest(r)
	case StageConfigurator:
		return p.runConfigurator(r)
	case StagePatch:
		return p.patch(r)
	case StageMirror:
		return p.mirror(r)
	}
	return StageResult{Status: StatusSkipped}
}

// abs resolves path against the working directory after expanding ~
func (p *Pipeline) abs(path string) string {
	path = paths.ExpandHome(path)
	if path == "" || filepath.IsAbs(path) || p.opts.WorkDir == "" {
		return path
	}
	return filepath.Join(p.opts.WorkDir, path)
}
