// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: Apache-2.0

package lib

// TODO(bep) enumerate these from the GitHub API instead of hardcoding.

var activeProjects = [...]string{
	"git@github.com:naggie/dotfiles.git",
	"git@github.com:naggie/naggie.github.com.git",
	"git@github.com:naggie/darksky.git",
	"git@github.com:naggie/dscrates.git",
	"git@github.com:naggie/megafilter.git",
	"git@github.com:naggie/speakers.git",
}

var inactiveProjects = [...]string{
	"git@github.com:naggie/runuo.git",
	"git@github.com:naggie/nnplus.git",
	"git@github.com:naggie/ninja-motor-controller.git",
	"git@github.com:naggie/dschat.git",
	"git@github.com:naggie/DSPA.git",
	"git@github.com:naggie/averclock.git",
	"git@github.com:naggie/vosbox.git",
	"git@github.com:naggie/MLDASH.git",
	"git@github.com:naggie/algalon.git",
}

// DefaultActive returns a copy of the built-in active project list.
func DefaultActive() []string {
	return append([]string(nil), activeProjects[:]...)
}

// DefaultInactive returns a copy of the built-in inactive project list.
func DefaultInactive() []string {
	return append([]string(nil), inactiveProjects[:]...)
}
