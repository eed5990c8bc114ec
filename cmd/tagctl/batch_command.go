// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/tomtom215/tagsmith/internal/tagging"
)

type batchOptions struct {
	asJSON    bool
	workers   int
	threshold int
}

// batchReport is the --json output of the batch command.
type batchReport struct {
	Total      int                   `json:"total"`
	Successful int                   `json:"successful"`
	Failed     int                   `json:"failed"`
	Low        int                   `json:"lowConfidence"`
	Threshold  int                   `json:"threshold"`
	Results    []tagging.BatchResult `json:"results"`
	RowErrors  []string              `json:"rowErrors,omitempty"`
}

func newBatchCommand(ctx *cliContext) *cobra.Command {
	opts := batchOptions{workers: 4}

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Tag every record in a JSON array or titles CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.threshold < 0 || opts.threshold > 100 {
				return errors.New("--threshold must be between 0 and 100")
			}
			if opts.workers < 0 {
				return errors.New("--workers must not be negative")
			}

			in, err := openInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			engine := ctx.engine()
			records, rowErrs, err := readRecords(args[0], in, engine.Now())
			if err != nil {
				return err
			}
			results := engine.BatchGenerateTagsConcurrent(cmd.Context(), records, opts.workers)

			report := summarize(results, opts.threshold)
			for _, rowErr := range rowErrs {
				report.RowErrors = append(report.RowErrors, rowErr.Error())
			}
			if opts.asJSON {
				return writeJSON(cmd, report)
			}
			return printBatch(cmd, report)
		},
	}

	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Write results as JSON")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "Concurrent workers (0 or 1 runs sequentially)")
	cmd.Flags().IntVar(&opts.threshold, "threshold", 0, "Mark successful rows scoring below this confidence")
	return cmd
}

func summarize(results []tagging.BatchResult, threshold int) batchReport {
	report := batchReport{Total: len(results), Threshold: threshold, Results: results}
	for _, r := range results {
		switch {
		case !r.Success:
			report.Failed++
		case r.ConfidenceScore < threshold:
			report.Successful++
			report.Low++
		default:
			report.Successful++
		}
	}
	return report
}

func printBatch(cmd *cobra.Command, report batchReport) error {
	colorize := shouldColorize(cmd.OutOrStdout())

	rows := make([][]string, 0, len(report.Results))
	var colors []text.Colors
	if colorize {
		colors = make([]text.Colors, 0, len(report.Results))
	}
	for _, r := range report.Results {
		title := ""
		if r.Content != nil {
			title = r.Content.Title
		}
		status, color := "ok", text.Colors{}
		switch {
		case !r.Success:
			status, color = "error: "+r.Error, text.Colors{text.FgRed}
		case r.ConfidenceScore < report.Threshold:
			status, color = "low", text.Colors{text.FgYellow}
		}
		rows = append(rows, []string{
			title,
			joinTags(r.Tags.Availability),
			joinTags(r.Tags.Brand),
			joinTags(r.Tags.Category),
			strconv.Itoa(r.ConfidenceScore),
			status,
		})
		if colorize {
			colors = append(colors, color)
		}
	}

	out := cmd.OutOrStdout()
	headers := []string{"Title", "Availability", "Brand", "Category", "Confidence", "OK"}
	if _, err := fmt.Fprintln(out, renderTable(headers, rows, []int{4}, colors)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d processed, %d successful, %d failed, %d below threshold %d\n",
		report.Total, report.Successful, report.Failed, report.Low, report.Threshold)
	if err != nil {
		return err
	}
	for _, rowErr := range report.RowErrors {
		fmt.Fprintln(cmd.ErrOrStderr(), "skipped row:", rowErr)
	}
	return nil
}
