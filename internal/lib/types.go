// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"fmt"
	"strings"
)

// DefaultInactiveDir is the directory, relative to the workspace root,
// that archived projects are cloned into.
const DefaultInactiveDir = "INACTIVE"

type Config struct {
	Root     string
	Active   []string
	Inactive []string

	InactiveDir string // defaults to DefaultInactiveDir
	Policy      Policy

	// ReuseInactiveDir continues with the inactive pass if InactiveDir
	// already exists as a directory.
	ReuseInactiveDir bool

	Quiet   bool
	Verbose bool
}

func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = "."
	}
	if c.InactiveDir == "" {
		c.InactiveDir = DefaultInactiveDir
	}
	if c.Policy == "" {
		c.Policy = PolicyIgnore
	}
	// Never share backing arrays with the caller.
	c.Active = append([]string(nil), c.Active...)
	c.Inactive = append([]string(nil), c.Inactive...)
	return c
}

// Policy decides what a failed clone does to the rest of the run.
type Policy string

const (
	// PolicyIgnore records failures and carries on without reporting them.
	PolicyIgnore Policy = "ignore"
	// PolicyAbort stops at the first failure.
	PolicyAbort Policy = "abort"
	// PolicyCollect carries on and returns all failures at the end.
	PolicyCollect Policy = "collect"
)

var policies = []Policy{PolicyIgnore, PolicyAbort, PolicyCollect}

func (p Policy) String() string {
	return string(p)
}

// Set implements pflag.Value.
func (p *Policy) Set(s string) error {
	for _, candidate := range policies {
		if strings.EqualFold(s, string(candidate)) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown policy %q, expected one of %s", s, policyNames())
}

// Type implements pflag.Value.
func (p *Policy) Type() string {
	return "policy"
}

func policyNames() string {
	names := make([]string, len(policies))
	for i, p := range policies {
		names[i] = string(p)
	}
	return strings.Join(names, "|")
}

type Result struct {
	Cloned      []CloneResult
	Failed      []CloneResult
	InactiveDir string
}

type CloneResult struct {
	Locator string
	Dir     string
	Err     error
}
