// Copyright 2026 Bjørn Erik Pedersen
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bep/initprojects/internal/lib"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	cfg := lib.Config{Policy: lib.PolicyIgnore}

	cmd := &cobra.Command{
		Use:   "initprojects",
		Short: "Clone all active and inactive projects into the current directory",
		Long: `initprojects clones the active projects into the current directory,
then creates INACTIVE and clones the inactive projects into it.

Run it once in an empty directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg.Root = wd
			cfg.Active = lib.DefaultActive()
			cfg.Inactive = lib.DefaultInactive()

			return lib.Bootstrap(cmd.Context(), cfg)
		},
	}

	addFlags(cmd.Flags(), &cfg)

	return cmd
}

func addFlags(fs *pflag.FlagSet, cfg *lib.Config) {
	fs.Var(&cfg.Policy, "policy", "what to do when a clone fails: ignore|abort|collect")
	fs.StringVar(&cfg.InactiveDir, "inactive-dir", lib.DefaultInactiveDir, "directory to clone inactive projects into")
	fs.BoolVar(&cfg.ReuseInactiveDir, "reuse-inactive-dir", false, "do not fail if the inactive directory already exists")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress all output")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "debug logging")
}
