// Package prompt implements the operator-facing side of decisions.
//
// Two prompters are provided: Line, which prints a numbered option list and
// reads a comma-separated index selection from a reader, and TUI, which shows
// a huh multi-select form. New picks one of them from the configured mode,
// falling back to Line whenever stdin or stdout is not a terminal.
package prompt
