package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status of a pipeline stage
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusWarning Status = "warning"
)

// StatusStyle returns the pterm style for a status badge
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusOK:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case StatusWarning:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Badge renders a fixed-width status label
func Badge(format Format, status Status) string {
	label := fmt.Sprintf(" %-7s ", status)
	if format != FormatTerminal {
		return "[" + string(status) + "]"
	}
	return StatusStyle(status).Sprint(label)
}
