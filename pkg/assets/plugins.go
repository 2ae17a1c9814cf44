package assets

import (
	"path/filepath"

	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/types"
)

// PluginSelection is the outcome of SelectPlugins.
type PluginSelection struct {
	Plugins []types.ResolvedPlugin
	// Decision is nil when no choice was needed.
	Decision *decisions.Decision
	// Candidates are the primary plugin names offered when a choice was needed.
	Candidates []string
}

// SelectPlugins decides which content files of a terminal node are kept.
// With more than one primary plugin the provider is asked, keyed by key,
// which primaries to keep; every other content file is always kept.
func (l *Layout) SelectPlugins(files []string, key string, provider decisions.Provider) (PluginSelection, error) {
	var primaries []string
	for _, file := range files {
		if l.Kind(file) == PrimaryPlugin {
			primaries = append(primaries, file)
		}
	}

	if len(primaries) <= 1 {
		return PluginSelection{Plugins: toPlugins(files)}, nil
	}

	candidates := make([]string, len(primaries))
	for i, file := range primaries {
		candidates[i] = filepath.Base(file)
	}

	d, err := provider.Decide(decisions.Choice{
		Key:     key,
		Kind:    decisions.KindName,
		Title:   "Select plugins for " + key,
		Options: candidates,
	})
	if err != nil {
		return PluginSelection{}, err
	}

	keep := make(map[string]bool, len(d.Selected))
	for _, idx := range d.Selected {
		keep[primaries[idx]] = true
	}

	var kept []string
	for _, file := range files {
		if l.Kind(file) != PrimaryPlugin || keep[file] {
			kept = append(kept, file)
		}
	}
	return PluginSelection{Plugins: toPlugins(kept), Decision: &d, Candidates: candidates}, nil
}

func toPlugins(files []string) []types.ResolvedPlugin {
	plugins := make([]types.ResolvedPlugin, 0, len(files))
	for _, file := range files {
		plugins = append(plugins, types.ResolvedPlugin{
			Filename: filepath.Base(file),
			Dir:      filepath.Dir(file),
		})
	}
	return plugins
}
