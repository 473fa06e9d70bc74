// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Locator is a parsed remote repository address.
type Locator struct {
	Host  string
	Owner string
	Name  string
}

func (l Locator) String() string {
	return l.Host + "/" + l.Owner + "/" + l.Name
}

var errLocatorPath = errors.New("expected owner/name in path")

// ParseLocator splits a remote address into host, owner and name.
// Supported forms:
//   - git@github.com:owner/name.git
//   - ssh://git@github.com/owner/name.git
//   - https://github.com/owner/name
//   - git+ssh:// and git+https:// variants of the above
func ParseLocator(raw string) (Locator, error) {
	u, err := parseRemoteURL(raw)
	if err != nil {
		return Locator{}, fmt.Errorf("invalid locator %q: %w", raw, err)
	}

	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Locator{}, fmt.Errorf("invalid locator %q: %w", raw, errLocatorPath)
	}
	if u.Hostname() == "" {
		return Locator{}, fmt.Errorf("invalid locator %q: missing host", raw)
	}

	return Locator{
		Host:  strings.ToLower(u.Hostname()),
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
	}, nil
}

// CloneDirName returns the directory name git clone picks for raw,
// falling back to the last path element when raw does not parse.
func CloneDirName(raw string) string {
	if l, err := ParseLocator(raw); err == nil {
		return l.Name
	}
	s := strings.TrimSuffix(strings.TrimRight(raw, "/"), ".git")
	if i := strings.LastIndexAny(s, "/:"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

func hasScheme(raw string) bool {
	for _, scheme := range []string{"ssh:", "git+ssh:", "git:", "http:", "https:", "git+https:", "file:"} {
		if strings.HasPrefix(raw, scheme) {
			return true
		}
	}
	return false
}

// parseRemoteURL normalizes scp-like syntax (git@host:owner/name) to ssh://.
func parseRemoteURL(raw string) (*url.URL, error) {
	if !hasScheme(raw) && strings.ContainsRune(raw, ':') && !strings.ContainsRune(raw, '\\') {
		raw = "ssh://" + strings.Replace(raw, ":", "/", 1)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "git+https":
		u.Scheme = "https"
	case "git+ssh":
		u.Scheme = "ssh"
	}

	return u, nil
}
