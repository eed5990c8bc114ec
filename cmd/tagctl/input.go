// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tagsmith/internal/importer"
	"github.com/tomtom215/tagsmith/internal/tagging"
)

// openInput opens path, or stdin for "-".
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func readRecord(r io.Reader) (tagging.ContentRecord, error) {
	var record tagging.ContentRecord
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return record, fmt.Errorf("decode content record: %w", err)
	}
	if strings.TrimSpace(record.Title) == "" {
		return record, fmt.Errorf("%w: title is required", tagging.ErrMalformedRecord)
	}
	return record, nil
}

// readRecords loads a batch file. CSV files use the titles export layout;
// anything else is a JSON array whose null entries become malformed items.
// rowErrs lists CSV rows that could not be converted.
func readRecords(path string, r io.Reader, now time.Time) (records []*tagging.ContentRecord, rowErrs []error, err error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		items, rowErrs, err := importer.ReadCSV(r, now)
		if err != nil {
			return nil, rowErrs, err
		}
		records = make([]*tagging.ContentRecord, len(items))
		for i, item := range items {
			rec := item.Record()
			records[i] = &rec
		}
		return records, rowErrs, nil
	}

	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("decode content records: %w", err)
	}
	return records, nil, nil
}
