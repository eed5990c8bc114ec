// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/tagsmith/internal/catalog"
	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/metrics"
	"github.com/tomtom215/tagsmith/internal/models"
	"github.com/tomtom215/tagsmith/internal/tagging"
)

// DateAddedLayout is the date_added format of the titles export.
const DateAddedLayout = "January 2, 2006"

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

var requiredColumns = []string{"title", "type", "release_year"}

// RowError reports a row that could not be converted.
type RowError struct {
	Line  int
	Title string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Title, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ReadCSV parses the titles export. Rows that cannot be converted are
// returned as *RowError values alongside the good rows; a malformed header
// or stream aborts the read. now supplies addedDate when date_added is
// blank or unparsable.
func ReadCSV(r io.Reader, now time.Time) ([]*models.Content, []error, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var (
		items   []*models.Content
		rowErrs []error
	)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return items, rowErrs, fmt.Errorf("read line %d: %w", line, err)
		}

		row := csvRow{columns: columns, record: record}
		item, err := row.content(now)
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Line: line, Title: row.get("title"), Err: err})
			continue
		}
		items = append(items, item)
	}
	return items, rowErrs, nil
}

type csvRow struct {
	columns map[string]int
	record  []string
}

func (r csvRow) get(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r csvRow) content(now time.Time) (*models.Content, error) {
	title := r.get("title")
	if title == "" {
		return nil, errors.New("empty title")
	}
	year, err := strconv.Atoi(r.get("release_year"))
	if err != nil || year <= 0 {
		return nil, fmt.Errorf("invalid release_year %q", r.get("release_year"))
	}

	added := now
	if raw := r.get("date_added"); raw != "" {
		if t, err := time.Parse(DateAddedLayout, raw); err == nil {
			added = t
		}
	}

	listed := splitList(r.get("listed_in"))
	c := &models.Content{
		ShowID:      r.get("show_id"),
		Title:       title,
		Type:        strings.ToLower(r.get("type")),
		Director:    r.get("director"),
		Cast:        splitList(r.get("cast")),
		Country:     r.get("country"),
		ReleaseYear: year,
		Rating:      r.get("rating"),
		Duration:    r.get("duration"),
		Description: r.get("description"),
		AddedDate:   added,
		Genres:      listed,
		ListedIn:    listed,
	}
	c.Normalize()
	return c, nil
}

// splitList splits a comma separated cell, dropping blanks.
func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Seeder loads the titles export into an empty catalog.
type Seeder struct {
	catalog *catalog.Catalog
	engine  *tagging.Engine
}

// NewSeeder creates a seeder that tags rows with engine before storing them.
func NewSeeder(cat *catalog.Catalog, engine *tagging.Engine) *Seeder {
	return &Seeder{catalog: cat, engine: engine}
}

// SeedFile seeds from the CSV at path. It does nothing when the catalog
// already holds content, so restarts against a persistent store are safe.
func (s *Seeder) SeedFile(ctx context.Context, path string) (*models.ImportSummary, error) {
	existing, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		logging.Info().Int("items", len(existing)).Msg("Catalog already populated, skipping CSV seed")
		return models.NewImportSummary(), nil
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return s.Seed(ctx, f)
}

// Seed reads CSV rows from r, tags them and stores them.
func (s *Seeder) Seed(ctx context.Context, r io.Reader) (*models.ImportSummary, error) {
	log := logging.WithComponent("importer")
	start := time.Now()

	items, rowErrs, err := ReadCSV(r, s.engine.Now())
	if err != nil {
		return nil, err
	}

	summary := models.NewImportSummary()
	for _, rowErr := range rowErrs {
		var re *RowError
		if errors.As(rowErr, &re) {
			summary.Add(models.ImportItemResult{Title: re.Title, Error: re.Err.Error()})
		}
		metrics.RecordImport("csv", false)
		log.Warn().Err(rowErr).Msg("Skipping CSV row")
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		item.ApplyTags(s.engine.GenerateTags(item.Record()))

		created, err := s.catalog.Create(ctx, item)
		metrics.RecordImport("csv", err == nil)
		if err != nil {
			summary.Add(models.ImportItemResult{Title: item.Title, Error: err.Error()})
			continue
		}
		summary.Add(models.ImportItemResult{Title: created.Title, Success: true, ID: created.ID})
	}

	log.Info().
		Int("imported", summary.Successful).
		Int("failed", summary.Failed).
		Dur("duration", time.Since(start)).
		Msg("CSV seed complete")
	return summary, nil
}
