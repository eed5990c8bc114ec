// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/tagsmith/internal/tagging"
)

// cliContext carries state shared by subcommands.
type cliContext struct {
	now func() time.Time
}

func (c *cliContext) engine() *tagging.Engine {
	return tagging.NewEngine(tagging.WithClock(c.now))
}

func newRootCommand() *cobra.Command {
	return newRootCommandWithClock(time.Now)
}

func newRootCommandWithClock(now func() time.Time) *cobra.Command {
	ctx := &cliContext{now: now}

	rootCmd := &cobra.Command{
		Use:           "tagctl",
		Short:         "Generate catalog tags from local content files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newTagCommand(ctx))
	rootCmd.AddCommand(newBatchCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tagctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write([]byte("tagctl " + version + "\n"))
			return err
		},
	}
}
