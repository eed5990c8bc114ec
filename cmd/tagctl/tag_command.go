// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTagCommand(ctx *cliContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tag [file|-]",
		Short: "Tag a single JSON content record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			in, err := openInput(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			record, err := readRecord(in)
			if err != nil {
				return err
			}
			result := ctx.engine().GenerateTags(record)

			if asJSON {
				return writeJSON(cmd, result)
			}
			rows := [][]string{
				{"Availability", joinTags(result.Tags.Availability)},
				{"Brand", joinTags(result.Tags.Brand)},
				{"Category", joinTags(result.Tags.Category)},
				{"Confidence", strconv.Itoa(result.ConfidenceScore)},
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", record.Title,
				renderTable([]string{"Family", "Tags"}, rows, nil, nil))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the result as JSON")
	return cmd
}
