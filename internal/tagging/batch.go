// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package tagging

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// BatchGenerateTags classifies every record independently. A record that
// cannot be classified yields a failed result without affecting the others.
// All records are evaluated against the same reference instant.
func (e *Engine) BatchGenerateTags(records []*ContentRecord) []BatchResult {
	now := e.now()
	results := make([]BatchResult, len(records))
	for i, record := range records {
		results[i] = e.tagOne(record, now)
	}
	return results
}

// BatchGenerateTagsConcurrent evaluates records on up to workers goroutines.
// Results keep input order. Records not started before ctx is done are
// reported as failed with the context error.
func (e *Engine) BatchGenerateTagsConcurrent(ctx context.Context, records []*ContentRecord, workers int) []BatchResult {
	if workers <= 1 || len(records) <= 1 {
		return e.BatchGenerateTags(records)
	}
	workers = min(workers, len(records))

	now := e.now()
	results := make([]BatchResult, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = e.tagOne(records[idx], now)
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(records); next++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(records); i++ {
		results[i] = failedResult(records[i], ctx.Err())
	}
	return results
}

// tagOne classifies one batch item, converting validation failures and
// panics into a failed result.
func (e *Engine) tagOne(record *ContentRecord, now time.Time) (res BatchResult) {
	defer func() {
		if r := recover(); r != nil {
			res = failedResult(record, fmt.Errorf("%w: %v", ErrMalformedRecord, r))
		}
	}()

	if err := checkRecord(record); err != nil {
		return failedResult(record, err)
	}

	result := e.generate(record, now)
	return BatchResult{
		Content:         record,
		Tags:            result.Tags,
		ConfidenceScore: result.ConfidenceScore,
		Success:         true,
	}
}

func checkRecord(record *ContentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: nil record", ErrMalformedRecord)
	}
	if strings.TrimSpace(record.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrMalformedRecord)
	}
	return nil
}

func failedResult(record *ContentRecord, err error) BatchResult {
	res := BatchResult{
		Content: record,
		Tags:    NewTagSet(),
		Success: false,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
