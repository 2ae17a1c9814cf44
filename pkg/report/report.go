// Package report renders a resolution as a markdown report.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/modlist/pkg/manifest"
	"github.com/arthur-debert/modlist/pkg/types"
	"github.com/charmbracelet/glamour"
)

// Markdown describes what a resolution decided, package by package, and
// what the compiled manifest will contain. doc may be nil.
func Markdown(res *types.Resolution, doc *manifest.Document) string {
	var b strings.Builder

	b.WriteString("# Resolution report\n\n")
	fmt.Fprintf(&b, "- Install roots: %d\n", len(res.Assets))
	fmt.Fprintf(&b, "- Plugins: %d\n", len(res.Plugins))
	fmt.Fprintf(&b, "- Prompts: %d\n\n", res.Prompts)

	byPackage := make(map[string][]types.Step)
	var names []string
	for _, step := range res.Steps {
		if _, ok := byPackage[step.Package]; !ok {
			names = append(names, step.Package)
		}
		byPackage[step.Package] = append(byPackage[step.Package], step)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&b, "## %s\n\n", name)
		b.WriteString("| Step | Path | Detail |\n|---|---|---|\n")
		for _, step := range byPackage[name] {
			fmt.Fprintf(&b, "| %s | `%s` | %s |\n", step.Kind, step.Path, escapeCell(step.Detail))
		}
		b.WriteString("\n")
	}

	if doc == nil || len(doc.Customizations) == 0 {
		b.WriteString("_No install roots resolved; no manifest would be written._\n")
		return b.String()
	}

	c := doc.Customizations[0]
	fmt.Fprintf(&b, "## Manifest `%s`\n\n", c.ListName)
	for _, block := range c.Insert {
		fmt.Fprintf(&b, "### Data before `%s`\n\n", block.InsertBefore)
		for _, p := range block.Paths {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
		b.WriteString("\n")
	}
	for _, block := range c.InsertContent {
		fmt.Fprintf(&b, "### Content before `%s`\n\n", block.InsertBefore)
		for _, p := range block.Plugins {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// Render converts markdown for a terminal. With plain set, or when glamour
// cannot render, the markdown is returned as is.
func Render(markdown string, plain bool, width int) string {
	if plain {
		return markdown
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
