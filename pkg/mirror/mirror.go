// Package mirror pushes the working directory to a remote git repository.
//
// A sync stashes local changes, rebases onto the remote branch, restores the
// stash, commits everything and pushes. Failures are reported to the caller;
// nothing already done by the run is rolled back.
package mirror

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/logging"
)

// Runner executes a command in dir and returns its combined output
type Runner interface {
	Run(dir, name string, args ...string) (string, error)
}

// ExecRunner runs real processes
type ExecRunner struct{}

// Run implements Runner
func (ExecRunner) Run(dir, name string, args ...string) (string, error) {
	logging.LogCommand(name, args)
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

// Options describe the repository and remote to sync
type Options struct {
	Dir     string
	Remote  string
	Branch  string
	Message string
}

// Result lists what the sync did
type Result struct {
	Stashed   bool
	Committed bool
	Pushed    bool
}

// Sync runs the stash, pull, pop, commit, push sequence
func Sync(runner Runner, opts Options) (Result, error) {
	logger := logging.GetLogger("mirror")
	var res Result

	git := func(step string, args ...string) (string, error) {
		out, err := runner.Run(opts.Dir, "git", args...)
		if err != nil {
			return out, errors.Wrapf(err, errors.ErrMirrorSync, "git %s failed", step).
				WithDetail("step", step).
				WithDetail("output", strings.TrimSpace(out))
		}
		return out, nil
	}

	status, err := git("status", "status", "--porcelain")
	if err != nil {
		return res, err
	}

	if strings.TrimSpace(status) != "" {
		if _, err := git("stash", "stash", "push", "--include-untracked", "-m", "modlist sync"); err != nil {
			return res, err
		}
		res.Stashed = true
	}

	if _, err := git("pull", "pull", "--rebase", opts.Remote, opts.Branch); err != nil {
		if res.Stashed {
			if _, popErr := git("stash pop", "stash", "pop"); popErr != nil {
				logger.Error().Err(popErr).Msg("Could not restore stashed changes, run git stash pop manually")
			}
		}
		return res, err
	}

	if res.Stashed {
		if _, err := git("stash pop", "stash", "pop"); err != nil {
			return res, err
		}
	}

	if _, err := git("add", "add", "-A"); err != nil {
		return res, err
	}

	status, err = git("status", "status", "--porcelain")
	if err != nil {
		return res, err
	}
	if strings.TrimSpace(status) != "" {
		if _, err := git("commit", "commit", "-m", opts.Message); err != nil {
			return res, err
		}
		res.Committed = true
	} else {
		logger.Info().Msg("Nothing to commit")
	}

	if _, err := git("push", "push", opts.Remote, opts.Branch); err != nil {
		return res, err
	}
	res.Pushed = true

	logger.Info().
		Str("remote", opts.Remote).
		Str("branch", opts.Branch).
		Bool("committed", res.Committed).
		Msg("Mirrored working directory")
	return res, nil
}
