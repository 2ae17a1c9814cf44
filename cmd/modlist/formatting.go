package modlist

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/pipeline"
	"github.com/arthur-debert/modlist/pkg/style"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	// Only apply formatting if output is a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatUpper returns the string in uppercase
func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     formatUpper,
		"boldUpper": formatBoldUpper,
	})
}

// terminalWidth is the wrap width for rendered reports, 0 when unknown
func terminalWidth() int {
	if !style.IsTerminal(os.Stdout) {
		return 0
	}
	return pterm.GetTerminalWidth()
}

// printSummary writes one line per stage followed by its warnings
func printSummary(w io.Writer, format style.Format, summary *pipeline.Summary) {
	for _, rn := range summary.Renames {
		if rn.Err == nil {
			fmt.Fprintf(w, MsgRenameLine, rn.From, rn.To)
		}
	}

	for _, stage := range summary.Stages {
		detail := stage.Detail
		if stage.Err != nil {
			detail = stage.Err.Error()
		}
		name := style.Render(format, "Step", fmt.Sprintf("%-13s", stage.Stage))
		fmt.Fprintf(w, MsgStageLine, style.Badge(format, style.Status(stage.Status)), name, detail)
		for _, warning := range stage.Warnings {
			fmt.Fprintf(w, MsgStageWarning, style.Render(format, "Warning", warning))
		}
	}

	if summary.ManifestPath != "" {
		fmt.Fprintf(w, MsgManifestWritten, style.Render(format, "Path", summary.ManifestPath))
	}
	if summary.Success {
		fmt.Fprintln(w, style.Render(format, "Success", MsgRunSucceeded))
	} else {
		fmt.Fprintln(w, style.Render(format, "Error", MsgRunFailedNotice))
	}
}

// failedStage returns the first failed stage of an unsuccessful run
func failedStage(summary *pipeline.Summary) pipeline.StageResult {
	for _, stage := range summary.Stages {
		if stage.Status == pipeline.StatusFailed {
			return stage
		}
	}
	return pipeline.StageResult{Stage: "unknown", Err: fmt.Errorf("no stage reported a failure")}
}

func printDecisions(w io.Writer, format style.Format, records []decisions.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, MsgNoDecisions)
		return
	}
	for _, r := range records {
		fmt.Fprintf(w, MsgDecisionItem, style.Render(format, "Key", r.Key), strings.Join(r.Values, ", "))
	}
}
