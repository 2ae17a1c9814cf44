package pipeline

import (
	"fmt"

	"github.com/arthur-debert/modlist/pkg/assets"
	"github.com/arthur-debert/modlist/pkg/backup"
	"github.com/arthur-debert/modlist/pkg/manifest"
	"github.com/arthur-debert/modlist/pkg/mirror"
	"github.com/arthur-debert/modlist/pkg/packages"
	"github.com/arthur-debert/modlist/pkg/patcher"
	"github.com/arthur-debert/modlist/pkg/resolver"
)

func (p *Pipeline) sanitize(r *run) StageResult {
	cfg := p.opts.Config
	if !cfg.Packages.Sanitize {
		return StageResult{Status: StatusSkipped, Detail: "disabled"}
	}

	renames, err := packages.Sanitize(p.opts.FileSystem, cfg.Packages.Root)
	if err != nil {
		return StageResult{Status: StatusFailed, Err: err}
	}
	r.summary.Renames = renames

	result := StageResult{Status: StatusOK}
	renamed := 0
	for _, rn := range renames {
		if rn.Err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not rename %q to %q: %v", rn.From, rn.To, rn.Err))
			continue
		}
		renamed++
	}
	if len(result.Warnings) > 0 {
		result.Status = StatusWarning
	}
	result.Detail = fmt.Sprintf("%d renamed", renamed)
	return result
}

func (p *Pipeline) resolve(r *run) StageResult {
	cfg := p.opts.Config
	layout, err := assets.NewLayout(cfg.Layout)
	if err != nil {
		return StageResult{Status: StatusFailed, Err: err}
	}
	res, err := resolver.New(p.opts.FileSystem, layout, p.opts.Provider)
	if err != nil {
		return StageResult{Status: StatusFailed, Err: err}
	}
	resolution, err := res.Resolve(cfg.Packages.Root)
	if err != nil {
		return StageResult{Status: StatusFailed, Err: err}
	}
	r.summary.Resolution = resolution
	return StageResult{
		Status: StatusOK,
		Detail: fmt.Sprintf("%d install roots, %d plugins, %d prompts",
			len(resolution.Assets), len(resolution.Plugins), resolution.Prompts),
	}
}

func (p *Pipeline) compile(r *run) StageResult {
	opts, err := manifest.OptionsFromConfig(p.opts.FileSystem, p.opts.Config.Manifest, p.opts.WorkDir)
	if err != nil {
		return StageResult{Status: StatusFailed, Err: err}
	}

	doc := manifest.Compile(r.summary.Resolution, opts)
	if doc == nil {
		r.halted = true
		return StageResult{Status: StatusSkipped, Detail: "no install roots resolved, nothing to write"}
	}
	r.summary.Document = doc
	return StageResult{Status: StatusOK, Detail: fmt.Sprintf("%d paths, %d plugins",
		len(doc.Customizations[0].Insert[0].Paths), len(doc.Customizations[0].InsertContent[0].Plugins))}
}

func (p *Pipeline) rotator() *backup.Rotator {
	return backup.NewRotator(p.opts.FileSystem, p.opts.Config.Backup.Retention).WithClock(p.opts.Now)
}

func (p *Pipeline) writeManifest(r *run) StageResult {
	path := p.abs(p.opts.Config.Manifest.Path)
	if err := manifest.Write(p.opts.FileSystem, path, r.summary.Document, p.rotator()); err != nil {
		return StageResult{Status: StatusFailed, Err: err}
	}
	r.summary.ManifestPath = path
	return StageResult{Status: StatusOK, Detail: path}
}

func (p *Pipeline) runConfigurator(r *run) StageResult {
	if p.opts.Configurator == nil {
		return StageResult{Status: StatusSkipped, Detail: "no configurator"}
	}

	res, err := p.opts.Configurator.Run()
	if err != nil {
		result := StageResult{Status: StatusFailed, Err: err}
		if res != nil {
			result.Warnings = res.Reported
		}
		return result
	}

	result := StageResult{Status: StatusOK, Detail: fmt.Sprintf("%d lines of output", len(res.Lines))}
	if out := p.abs(p.opts.Config.Configurator.OutputConfig); out != "" {
		removed, err := p.rotator().Prune(out)
		if err != nil {
			result.Status = StatusWarning
			result.Warnings = append(result.Warnings, err.Error())
		} else if len(removed) > 0 {
			result.Detail += fmt.Sprintf(", pruned %d old config backups", len(removed))
		}
	}
	return result
}

func (p *Pipeline) patch(r *run) StageResult {
	cfg := p.opts.Config
	path := p.abs(cfg.PatchFile())
	if path == "" {
		return StageResult{Status: StatusSkipped, Detail: "no file to patch"}
	}

	outcome, err := patcher.File(p.opts.FileSystem, path, cfg.Patch.Move, cfg.Patch.Anchor)
	if err != nil {
		return StageResult{Status: StatusFailed, Err: err}
	}
	result := StageResult{Status: StatusOK, Detail: outcome.String()}
	if outcome == patcher.SkippedNoAnchor {
		result.Status = StatusWarning
		result.Warnings = []string{fmt.Sprintf("anchor %q not found in %s", cfg.Patch.Anchor, path)}
	}
	return result
}

func (p *Pipeline) mirror(r *run) StageResult {
	cfg := p.opts.Config.Mirror
	if !cfg.Enabled || p.opts.Mirror == nil {
		return StageResult{Status: StatusSkipped, Detail: "disabled"}
	}

	due := true
	if p.opts.Tracker != nil && p.opts.Executable != "" {
		obs, err := p.opts.Tracker.Observe(p.opts.Executable)
		if err != nil {
			return StageResult{Status: StatusFailed, Err: err}
		}
		due = obs.ShouldSync(p.opts.Now(), cfg.Interval)
	}
	if !due {
		return StageResult{Status: StatusSkipped, Detail: "not due"}
	}

	dir := p.abs(cfg.Dir)
	if dir == "" {
		dir = p.opts.WorkDir
	}
	res, err := mirror.Sync(p.opts.Mirror, mirror.Options{
		Dir:     dir,
		Remote:  cfg.Remote,
		Branch:  cfg.Branch,
		Message: cfg.Message,
	})
	if err != nil {
		return StageResult{Status: StatusFailed, Err: err}
	}
	if p.opts.Tracker != nil {
		if err := p.opts.Tracker.MarkSynced(p.opts.Now()); err != nil {
			return StageResult{Status: StatusWarning, Detail: "synced", Warnings: []string{err.Error()}}
		}
	}

	detail := "pushed"
	if !res.Committed {
		detail = "pushed, nothing new to commit"
	}
	return StageResult{Status: StatusOK, Detail: detail}
}
