// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DirMaker creates the inactive projects directory.
type DirMaker interface {
	// MakeDir creates path. It must fail if path already exists.
	MakeDir(path string) error
	IsDir(path string) bool
}

type osDirs struct{}

func (osDirs) MakeDir(path string) error {
	return os.Mkdir(path, 0o755)
}

func (osDirs) IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

type Bootstrapper struct {
	Cfg    Config
	Cloner Cloner
	Dirs   DirMaker
	log    *logrus.Logger
	out    io.Writer
}

// Bootstrap clones cfg.Active into cfg.Root, creates cfg.InactiveDir and
// clones cfg.Inactive into it, using the git binary on PATH.
func Bootstrap(ctx context.Context, cfg Config) error {
	out := io.Writer(os.Stderr)
	if cfg.Quiet {
		out = io.Discard
	}
	b := NewBootstrapper(cfg, GitCloner{Out: out}, nil, newLogger(cfg), out)
	result, err := b.Run(ctx)
	b.PrintResult(result)
	return err
}

// NewBootstrapper creates a Bootstrapper. A nil dirs uses the real
// filesystem, a nil log discards all log output and a nil out
// discards the summary written by PrintResult.
func NewBootstrapper(cfg Config, cloner Cloner, dirs DirMaker, log *logrus.Logger, out io.Writer) *Bootstrapper {
	if out == nil {
		out = io.Discard
	}
	if dirs == nil {
		dirs = osDirs{}
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Bootstrapper{
		Cfg:    cfg.withDefaults(),
		Cloner: cloner,
		Dirs:   dirs,
		log:    log,
		out:    out,
	}
}

func newLogger(cfg Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case cfg.Quiet:
		log.SetLevel(logrus.ErrorLevel)
	case cfg.Verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// Run executes the active pass, creates the inactive directory and
// executes the inactive pass, in that order.
func (b *Bootstrapper) Run(ctx context.Context) (Result, error) {
	result := Result{}
	var failures []error

	if err := b.clonePass(ctx, b.Cfg.Active, b.Cfg.Root, &result, &failures); err != nil {
		return result, errors.Join(append(failures, err)...)
	}

	inactiveDir := filepath.Join(b.Cfg.Root, b.Cfg.InactiveDir)
	if err := b.makeInactiveDir(inactiveDir); err != nil {
		return result, errors.Join(append(failures, err)...)
	}
	result.InactiveDir = inactiveDir

	if err := b.clonePass(ctx, b.Cfg.Inactive, inactiveDir, &result, &failures); err != nil {
		return result, errors.Join(append(failures, err)...)
	}

	if len(failures) > 0 {
		return result, errors.Join(failures...)
	}
	return result, nil
}

// clonePass returns a non-nil error only when the run must stop.
// Failures to report at the end under PolicyCollect are appended to failures.
func (b *Bootstrapper) clonePass(ctx context.Context, locators []string, dir string, result *Result, failures *[]error) error {
	for _, locator := range locators {
		if err := ctx.Err(); err != nil {
			return err
		}

		log := b.log.WithFields(locatorFields(locator)).WithField("dir", dir)
		log.Debug("cloning")

		err := b.Cloner.Clone(ctx, locator, dir)
		cr := CloneResult{Locator: locator, Dir: dir, Err: err}
		if err == nil {
			result.Cloned = append(result.Cloned, cr)
			continue
		}
		result.Failed = append(result.Failed, cr)
		err = fmt.Errorf("clone %s: %w", locator, err)

		// Returned errors are reported by the caller.
		switch b.Cfg.Policy {
		case PolicyAbort:
			log.WithError(err).Debug("clone failed, aborting")
			return err
		case PolicyCollect:
			log.WithError(err).Debug("clone failed, collecting")
			*failures = append(*failures, err)
		default:
			log.WithError(err).Debug("clone failed, ignoring")
		}
	}
	return nil
}

func (b *Bootstrapper) makeInactiveDir(dir string) error {
	err := b.Dirs.MakeDir(dir)
	if err == nil {
		b.log.WithField("dir", dir).Debug("created inactive directory")
		return nil
	}
	if b.Cfg.ReuseInactiveDir && errors.Is(err, fs.ErrExist) && b.Dirs.IsDir(dir) {
		b.log.WithField("dir", dir).Debug("reusing existing inactive directory")
		return nil
	}
	return fmt.Errorf("create inactive directory: %w", err)
}

func locatorFields(locator string) logrus.Fields {
	fields := logrus.Fields{"locator": locator}
	if l, err := ParseLocator(locator); err == nil {
		fields["host"] = l.Host
		fields["owner"] = l.Owner
		fields["name"] = l.Name
		fields["repo"] = l.String()
	}
	return fields
}

func (b *Bootstrapper) logf(format string, a ...any) {
	fmt.Fprintf(b.out, format, a...)
}

func (b *Bootstrapper) relPath(r CloneResult) string {
	path := filepath.Join(r.Dir, CloneDirName(r.Locator))
	if rel, err := filepath.Rel(b.Cfg.Root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// PrintResult writes a summary of r to the Bootstrapper's output.
func (b *Bootstrapper) PrintResult(r Result) {
	if len(r.Cloned) > 0 {
		b.logf("Cloned: %d repos\n", len(r.Cloned))
		for _, cr := range r.Cloned {
			b.logf("  - %s\n", b.relPath(cr))
		}
	}

	if len(r.Failed) > 0 {
		b.logf("Failed: %d repos\n", len(r.Failed))
		for _, cr := range r.Failed {
			b.logf("  - %s (%s)\n", b.relPath(cr), failureReason(cr.Err))
		}
	}
}

func failureReason(err error) string {
	switch {
	case IsAlreadyExists(err):
		return "already exists"
	case IsAuthFailure(err):
		return "authentication failed"
	}
	var gitErr *GitError
	if errors.As(err, &gitErr) && gitErr.ExitCode >= 0 {
		return fmt.Sprintf("exit code %d", gitErr.ExitCode)
	}
	return err.Error()
}
