// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Cloner clones a single repository into dir.
type Cloner interface {
	Clone(ctx context.Context, locator, dir string) error
}

// GitCloner runs git clone --recursive with dir as its working directory.
type GitCloner struct {
	// GitPath defaults to "git", resolved from PATH.
	GitPath string
	// Out receives git's stdout and stderr. Nil discards it.
	Out io.Writer
}

func (g GitCloner) Clone(ctx context.Context, locator, dir string) error {
	return g.run(ctx, dir, "clone", "--recursive", locator)
}

func (g GitCloner) run(ctx context.Context, dir string, args ...string) error {
	gitPath := g.GitPath
	if gitPath == "" {
		gitPath = "git"
	}
	out := g.Out
	if out == nil {
		out = io.Discard
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stdout = out
	cmd.Stderr = io.MultiWriter(out, &stderr)
	if err := cmd.Run(); err != nil {
		return newGitError(args, stderr.String(), err)
	}
	return nil
}

// GitError is a failed git invocation.
type GitError struct {
	Args     []string
	ExitCode int // -1 if git did not exit normally
	Stderr   string
	err      error
}

func newGitError(args []string, stderr string, err error) *GitError {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &GitError{
		Args:     args,
		ExitCode: exitCode,
		Stderr:   stderr,
		err:      err,
	}
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.err)
	if last := lastLine(e.Stderr); last != "" {
		msg += ": " + last
	}
	return msg
}

func (e *GitError) Unwrap() error {
	return e.err
}

// IsAuthFailure reports whether err looks like a rejected credential.
func IsAuthFailure(err error) bool {
	return stderrContains(err, "authentication failed") || stderrContains(err, "permission denied")
}

// IsAlreadyExists reports whether git refused to clone over an existing path.
func IsAlreadyExists(err error) bool {
	return stderrContains(err, "already exists")
}

func stderrContains(err error, msg string) bool {
	var gitErr *GitError
	if !errors.As(err, &gitErr) {
		return false
	}
	return strings.Contains(strings.ToLower(gitErr.Stderr), msg)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
