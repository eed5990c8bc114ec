// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/tagsmith/internal/catalog"
	"github.com/tomtom215/tagsmith/internal/events"
	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/metrics"
	"github.com/tomtom215/tagsmith/internal/models"
	"github.com/tomtom215/tagsmith/internal/tagging"
	"github.com/tomtom215/tagsmith/internal/validation"
)

// GenerateTags tags one record without storing it.
//
// POST /api/v1/tag
func (h *Handler) GenerateTags(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.TagRequest
	if !decodeJSON(w, r, &req, maxBodyBytes) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	start := time.Now()
	res := h.tag("single", req.Record())
	rw.Success(models.TagResponse{
		Tags:           res.Tags,
		Confidence:     res.ConfidenceScore,
		ProcessingTime: time.Since(start).Round(time.Microsecond).String(),
	})
}

// ProcessBatch tags a list of records, records the run, and optionally
// writes the results to catalog entries with the same title.
//
// POST /api/v1/batch
func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := models.BatchRequest{
		Options: &models.BatchOptions{ConfidenceThreshold: h.config.Tagging.ConfidenceThreshold},
	}
	if !decodeJSON(w, r, &req, maxBulkBodyBytes) {
		return
	}
	if req.Options == nil {
		req.Options = &models.BatchOptions{ConfidenceThreshold: h.config.Tagging.ConfidenceThreshold}
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}
	if verr := validation.ValidateStruct(req.Options); verr != nil {
		rw.ValidationError(verr)
		return
	}
	opts := *req.Options

	ctx := logging.ContextWithNewCorrelationID(r.Context())
	batch, err := h.catalog.CreateBatch(ctx, req.Name, opts)
	if err != nil {
		rw.StorageError("create_batch", err)
		return
	}

	start := time.Now()
	results := h.engine.BatchGenerateTagsConcurrent(ctx, req.Contents, h.config.Tagging.BatchWorkers)
	elapsed := time.Since(start)

	summary := models.BatchSummary{TotalProcessed: len(results)}
	items := make([]models.BatchItemResult, len(results))
	for i := range results {
		res := &results[i]
		items[i] = h.batchItem(ctx, res, opts, &summary, elapsed/time.Duration(len(results)))
	}

	batch, err = h.catalog.FinishBatch(ctx, batch.ID, summary)
	if err != nil {
		rw.StorageError("finish_batch", err)
		return
	}
	metrics.RecordBatchOutcome(summary.Successful, summary.Failed, summary.Skipped)

	logging.Ctx(ctx).Info().
		Int("batch_id", batch.ID).
		Str("status", string(batch.Status)).
		Int("total", summary.TotalProcessed).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Dur("duration", elapsed).
		Msg("Batch processed")
	h.publish(ctx, events.TopicBatchCompleted, batch)

	rw.Success(models.BatchResponse{
		BatchID: batch.ID,
		Status:  batch.Status,
		Summary: summary,
		Results: items,
	})
}

// batchItem converts one engine result, updates the summary counters and
// applies the tags to the catalog when the options ask for it.
func (h *Handler) batchItem(ctx context.Context, res *tagging.BatchResult, opts models.BatchOptions, summary *models.BatchSummary, perItem time.Duration) models.BatchItemResult {
	item := models.BatchItemResult{
		Success:         res.Success,
		ConfidenceScore: res.ConfidenceScore,
		Error:           res.Error,
	}
	if res.Content != nil {
		item.Title = res.Content.Title
	}
	if !res.Success {
		summary.Failed++
		return item
	}

	summary.Successful++
	tags := res.Tags
	item.Tags = &tags
	result := tagging.Result{Tags: res.Tags, ConfidenceScore: res.ConfidenceScore}
	recordTagging("batch", result, perItem)

	if opts.ApplyHighConfidenceOnly && res.ConfidenceScore < opts.ConfidenceThreshold {
		summary.Skipped++
		return item
	}
	if opts.OverwriteExisting {
		item.Applied = h.applyToExisting(ctx, item.Title, result)
	}
	return item
}

// applyToExisting retags the catalog entry whose title matches. It reports
// whether an entry was updated.
func (h *Handler) applyToExisting(ctx context.Context, title string, res tagging.Result) bool {
	existing, err := h.catalog.FindByTitle(ctx, title)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			logging.Ctx(ctx).Warn().Err(err).Str("title", sanitizeLogValue(title)).Msg("Batch lookup failed")
		}
		return false
	}
	updated, err := h.catalog.Retag(ctx, existing.ID, res)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("id", existing.ID).Msg("Batch retag failed")
		return false
	}
	h.publish(ctx, events.TopicContentTagged, updated)
	return true
}

// ListBatches returns recorded batch runs, newest first.
//
// GET /api/v1/batch
func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	batches, err := h.catalog.ListBatches(r.Context())
	if err != nil {
		rw.StorageError("list_batches", err)
		return
	}
	rw.Success(batches)
}

// GetBatch returns one batch run.
//
// GET /api/v1/batch/{id}
func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := pathID(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	batch, err := h.catalog.GetBatch(r.Context(), id)
	if err != nil {
		writeLookupError(rw, "batch", "get_batch", err)
		return
	}
	rw.Success(batch)
}
