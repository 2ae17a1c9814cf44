package report_test

import (
	"testing"

	"github.com/arthur-debert/modlist/pkg/manifest"
	"github.com/arthur-debert/modlist/pkg/report"
	"github.com/arthur-debert/modlist/pkg/types"
	"github.com/stretchr/testify/assert"
)

func sampleResolution() *types.Resolution {
	res := &types.Resolution{Assets: []string{"/p/ModA/00 Core"}, Prompts: 1}
	res.AddStep(types.StepCoreSelected, types.TraversalNode{TopLevelName: "ModA", Path: "/p/ModA"}, "00 Core")
	res.AddStep(types.StepChoicePrompted, types.TraversalNode{TopLevelName: "ModB", Path: "/p/ModB"}, "00 Core, 01 Patch")
	return res
}

func TestMarkdown(t *testing.T) {
	res := sampleResolution()
	doc := manifest.Compile(res, manifest.Options{
		ListName:      "expanded-vanilla",
		DataAnchor:    `Tools\MOMWToolsPackCustom`,
		ContentAnchor: "AttendMe.omwscripts",
	})

	md := report.Markdown(res, doc)
	assert.Contains(t, md, "## ModA")
	assert.Contains(t, md, "## ModB")
	assert.Contains(t, md, "| core-selected | `/p/ModA` | 00 Core |")
	assert.Contains(t, md, "- Prompts: 1")
	assert.Contains(t, md, "## Manifest `expanded-vanilla`")
	assert.Contains(t, md, "- `/p/ModA/00 Core`")
}

func TestMarkdown_NoDocument(t *testing.T) {
	md := report.Markdown(&types.Resolution{}, nil)
	assert.Contains(t, md, "no manifest would be written")
}

func TestRender_Plain(t *testing.T) {
	assert.Equal(t, "# x\n", report.Render("# x\n", true, 80))
}

func TestRender_Glamour(t *testing.T) {
	out := report.Render("# Resolution report\n\nbody text\n", false, 60)
	assert.Contains(t, out, "body text")
}
