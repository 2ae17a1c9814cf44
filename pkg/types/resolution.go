package types

import "path/filepath"

// TraversalNode is one unit of work in the resolver's worklist.
// Nodes are never mutated; expansion produces new nodes.
type TraversalNode struct {
	// TopLevelName is the name of the package directory the node belongs to.
	TopLevelName string
	// Path is the absolute path of the directory this node represents.
	Path string
}

// ResolvedPlugin is a content file accepted into the manifest's plugin set.
type ResolvedPlugin struct {
	Filename string
	Dir      string
}

// Path returns the full path of the plugin file.
func (p ResolvedPlugin) Path() string {
	return filepath.Join(p.Dir, p.Filename)
}

// StepKind names the outcome of processing a single traversal node.
type StepKind string

const (
	StepCoreSelected   StepKind = "core-selected"
	StepChoiceReused   StepKind = "choice-reused"
	StepChoiceDiscard  StepKind = "choice-discarded"
	StepChoicePrompted StepKind = "choice-prompted"
	StepChoiceEmpty    StepKind = "choice-empty"
	StepTerminal       StepKind = "terminal"
	StepPassThrough    StepKind = "pass-through"
	StepDeadEnd        StepKind = "dead-end"
	StepPluginReused   StepKind = "plugins-reused"
	StepPluginDiscard  StepKind = "plugins-discarded"
	StepPluginPrompted StepKind = "plugins-prompted"
)

// Step records one user-visible event of a resolution run.
type Step struct {
	Kind    StepKind
	Package string
	Path    string
	Detail  string
}

// Resolution accumulates everything a resolver run produced. Assets and
// Plugins may contain duplicates; the manifest compiler removes them.
type Resolution struct {
	Assets  []string
	Plugins []ResolvedPlugin
	Steps   []Step
	Prompts int
}

// AddStep appends an event to the resolution trace.
func (r *Resolution) AddStep(kind StepKind, node TraversalNode, detail string) {
	r.Steps = append(r.Steps, Step{
		Kind:    kind,
		Package: node.TopLevelName,
		Path:    node.Path,
		Detail:  detail,
	})
}

// CountSteps returns how many steps of the given kind were recorded.
func (r *Resolution) CountSteps(kind StepKind) int {
	n := 0
	for _, s := range r.Steps {
		if s.Kind == kind {
			n++
		}
	}
	return n
}
