// Package configurator runs the external configuration applier and judges
// its output.
//
// The applier prints a line-oriented log. Any line mentioning "warning" or
// "error" (case-insensitive) is reported unless it contains one of the
// allowlisted substrings; a single reported line fails the run.
package configurator

import (
	"bufio"
	"bytes"
	"io"
	"os/exec"
	"strings"

	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/logging"
)

// Runner invokes the configurator binary
type Runner struct {
	Binary string
	Args   []string
	Allow  []string
	// Dir is the working directory of the process; empty means inherit.
	Dir string
}

// Result holds what one configurator run produced
type Result struct {
	Path     string
	Lines    []string
	Reported []string
	ExitCode int
}

// LookPath resolves the binary, failing fast when it is not installed
func (r *Runner) LookPath() (string, error) {
	path, err := exec.LookPath(r.Binary)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfiguratorMissing, "configurator %q not found", r.Binary).
			WithDetail("binary", r.Binary)
	}
	return path, nil
}

// Run executes the configurator and blocks until it exits. The result is
// returned together with the error so callers can show the output of a
// failed run.
func (r *Runner) Run() (*Result, error) {
	logger := logging.GetLogger("configurator")

	path, err := r.LookPath()
	if err != nil {
		return nil, err
	}

	logging.LogCommand(path, r.Args)
	cmd := exec.Command(path, r.Args...)
	cmd.Dir = r.Dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()

	res := &Result{Path: path, Lines: splitLines(&out)}
	res.Reported = Scan(res.Lines, r.Allow)
	for _, line := range res.Reported {
		logger.Warn().Str("line", line).Msg("Configurator reported a problem")
	}

	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
		}
		return res, errors.Wrap(runErr, errors.ErrConfiguratorFailed, "configurator failed").
			WithDetail("binary", path).
			WithDetail("exitCode", res.ExitCode)
	}
	if len(res.Reported) > 0 {
		return res, errors.Newf(errors.ErrConfiguratorReported, "configurator reported %d problem(s)", len(res.Reported)).
			WithDetail("binary", path).
			WithDetail("first", res.Reported[0])
	}

	logger.Info().Int("lines", len(res.Lines)).Msg("Configurator finished cleanly")
	return res, nil
}

// Scan returns the lines that mention a warning or error and contain none
// of the allowed substrings.
func Scan(lines []string, allow []string) []string {
	var reported []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "warning") && !strings.Contains(lower, "error") {
			continue
		}
		if allowed(line, allow) {
			continue
		}
		reported = append(reported, line)
	}
	return reported
}

func allowed(line string, allow []string) bool {
	for _, a := range allow {
		if a != "" && strings.Contains(line, a) {
			return true
		}
	}
	return false
}

func splitLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines
}
