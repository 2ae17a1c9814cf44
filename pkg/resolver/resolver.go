package resolver

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modlist/pkg/assets"
	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/packages"
	"github.com/arthur-debert/modlist/pkg/types"
	"github.com/rs/zerolog"
)

// Resolver walks a package root. It holds no state between calls to
// Resolve other than its listing cache; create one per run.
type Resolver struct {
	fs       types.FS
	scanner  *assets.Scanner
	layout   *assets.Layout
	provider decisions.Provider
	logger   zerolog.Logger
}

// New creates a resolver reading through fsys and asking provider for
// every choice.
func New(fsys types.FS, layout *assets.Layout, provider decisions.Provider) (*Resolver, error) {
	scanner, err := assets.NewScanner(fsys, layout, assets.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		fs:       fsys,
		scanner:  scanner,
		layout:   layout,
		provider: provider,
		logger:   logging.GetLogger("resolver"),
	}, nil
}

// Resolve processes every package under root and returns what they
// contribute. Read failures and provider errors abort the run; everything
// else is recorded as a step.
func (r *Resolver) Resolve(root string) (*types.Resolution, error) {
	pkgs, err := packages.Discover(r.fs, root)
	if err != nil {
		return nil, err
	}

	queue := make([]types.TraversalNode, 0, len(pkgs))
	for _, pkg := range pkgs {
		queue = append(queue, pkg.Node())
	}

	res := &types.Resolution{}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		children, err := r.process(root, node, res)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children...)
	}

	r.logger.Info().
		Int("assets", len(res.Assets)).
		Int("plugins", len(res.Plugins)).
		Int("prompts", res.Prompts).
		Msg("Resolution complete")
	return res, nil
}

// process classifies one node and returns the nodes it expands into.
func (r *Resolver) process(root string, node types.TraversalNode, res *types.Resolution) ([]types.TraversalNode, error) {
	rel := relPath(root, node)
	logger := r.logger.With().Str("package", node.TopLevelName).Str("path", rel).Logger()

	options, err := r.scanner.Options(node.Path)
	if err != nil {
		return nil, err
	}

	if len(options) == 1 && r.layout.IsCore(options[0]) {
		logger.Info().Str("option", options[0]).Msg("Selecting core option")
		res.AddStep(types.StepCoreSelected, node, options[0])
		return []types.TraversalNode{child(node, options[0])}, nil
	}

	if len(options) > 0 {
		return r.choose(node, rel, options, res, logger)
	}

	found, err := r.scanner.Scan(node.Path)
	if err != nil {
		return nil, err
	}
	if !found.Empty() {
		return nil, r.terminal(node, rel, found, res, logger)
	}

	subdirs, err := r.scanner.Subdirs(node.Path)
	if err != nil {
		return nil, err
	}
	if len(subdirs) == 0 {
		logger.Info().Msg("Nothing installable here, skipping")
		res.AddStep(types.StepDeadEnd, node, "")
		return nil, nil
	}

	logger.Debug().Strs("subdirs", subdirs).Msg("Passing through")
	res.AddStep(types.StepPassThrough, node, strings.Join(subdirs, ", "))
	children := make([]types.TraversalNode, len(subdirs))
	for i, name := range subdirs {
		children[i] = child(node, name)
	}
	return children, nil
}

func (r *Resolver) choose(node types.TraversalNode, rel string, options []string, res *types.Resolution, logger zerolog.Logger) ([]types.TraversalNode, error) {
	d, err := r.provider.Decide(decisions.Choice{
		Key:     decisions.Key(node.TopLevelName, rel, ""),
		Kind:    decisions.KindIndex,
		Title:   displayName(node, rel),
		Options: options,
	})
	if err != nil {
		return nil, err
	}

	if d.Discarded {
		res.AddStep(types.StepChoiceDiscard, node, "stored selection no longer matches the options")
	}
	if d.Source == decisions.SourcePrompt {
		res.Prompts++
	}

	if len(d.Selected) == 0 {
		logger.Warn().Strs("options", options).Msg("No option selected, skipping branch")
		res.AddStep(types.StepChoiceEmpty, node, "")
		return nil, nil
	}

	selected := make([]string, len(d.Selected))
	children := make([]types.TraversalNode, len(d.Selected))
	for i, idx := range d.Selected {
		selected[i] = options[idx]
		children[i] = child(node, options[idx])
	}

	kind := types.StepChoicePrompted
	if d.Source == decisions.SourceStored {
		kind = types.StepChoiceReused
	}
	logger.Info().Str("source", string(kind)).Strs("selected", selected).Msg("Options selected")
	res.AddStep(kind, node, strings.Join(selected, ", "))
	return children, nil
}

func (r *Resolver) terminal(node types.TraversalNode, rel string, found assets.Findings, res *types.Resolution, logger zerolog.Logger) error {
	roots := assets.Classify(found)
	res.Assets = append(res.Assets, roots...)

	key := decisions.Key(node.TopLevelName, rel, r.layout.PluginKeySuffix)
	sel, err := r.layout.SelectPlugins(found.ContentFiles, key, r.provider)
	if err != nil {
		return err
	}
	res.Plugins = append(res.Plugins, sel.Plugins...)

	if d := sel.Decision; d != nil {
		if d.Discarded {
			res.AddStep(types.StepPluginDiscard, node, "stored plugin selection names missing files")
		}
		kind := types.StepPluginPrompted
		if d.Source == decisions.SourceStored {
			kind = types.StepPluginReused
		} else {
			res.Prompts++
		}
		res.AddStep(kind, node, fmt.Sprintf("%d of %d", len(d.Selected), len(sel.Candidates)))
	}

	logger.Info().
		Int("roots", len(roots)).
		Int("plugins", len(sel.Plugins)).
		Msg("Terminal asset node")
	res.AddStep(types.StepTerminal, node, fmt.Sprintf("%d install roots, %d plugins", len(roots), len(sel.Plugins)))
	return nil
}

func child(parent types.TraversalNode, name string) types.TraversalNode {
	return types.TraversalNode{
		TopLevelName: parent.TopLevelName,
		Path:         filepath.Join(parent.Path, name),
	}
}

// relPath returns the node's path relative to its package directory
func relPath(root string, node types.TraversalNode) string {
	rel, err := filepath.Rel(filepath.Join(root, node.TopLevelName), node.Path)
	if err != nil {
		return node.Path
	}
	return rel
}

func displayName(node types.TraversalNode, rel string) string {
	if rel == "." {
		return node.TopLevelName
	}
	return filepath.Join(node.TopLevelName, rel)
}
