// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package models

import "time"

// BatchStatus is the lifecycle state of a batch tagging run.
type BatchStatus string

// Batch statuses.
const (
	BatchPending    BatchStatus = "Pending"
	BatchProcessing BatchStatus = "Processing"
	BatchCompleted  BatchStatus = "Completed"
	BatchFailed     BatchStatus = "Failed"
	BatchPartial    BatchStatus = "Partial"
)

// IsTerminal reports whether the status ends a batch.
func (s BatchStatus) IsTerminal() bool {
	return s == BatchCompleted || s == BatchFailed || s == BatchPartial
}

// BatchOptions controls how a batch run applies its results.
type BatchOptions struct {
	OverwriteExisting       bool `json:"overwriteExisting"`
	ApplyHighConfidenceOnly bool `json:"applyHighConfidenceOnly"`
	ConfidenceThreshold     int  `json:"confidenceThreshold" validate:"min=0,max=100"`
}

// BatchProcess records the bookkeeping of one batch run.
type BatchProcess struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Status         BatchStatus  `json:"status"`
	TotalItems     int          `json:"totalItems"`
	ProcessedItems int          `json:"processedItems"`
	SuccessItems   int          `json:"successItems"`
	FailedItems    int          `json:"failedItems"`
	SkippedItems   int          `json:"skippedItems"`
	StartedAt      time.Time    `json:"startedAt"`
	CompletedAt    *time.Time   `json:"completedAt"`
	Options        BatchOptions `json:"options"`
}

// BatchSummary holds the outcome counts of a finished run.
type BatchSummary struct {
	TotalProcessed int `json:"totalProcessed"`
	Successful     int `json:"successful"`
	Failed         int `json:"failed"`
	Skipped        int `json:"skipped"`
}

// Finish stores the summary and moves the batch to its terminal status:
// Partial when any item failed, Completed otherwise.
func (b *BatchProcess) Finish(s BatchSummary, at time.Time) {
	b.TotalItems = s.TotalProcessed
	b.ProcessedItems = s.TotalProcessed
	b.SuccessItems = s.Successful
	b.FailedItems = s.Failed
	b.SkippedItems = s.Skipped
	b.Status = BatchCompleted
	if s.Failed > 0 {
		b.Status = BatchPartial
	}
	b.CompletedAt = &at
}
