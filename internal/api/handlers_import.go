// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/tagsmith/internal/events"
	"github.com/tomtom215/tagsmith/internal/importer"
	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/metrics"
	"github.com/tomtom215/tagsmith/internal/models"
	"github.com/tomtom215/tagsmith/internal/tagging"
	"github.com/tomtom215/tagsmith/internal/validation"
)

// maxImportItems bounds one import request.
const maxImportItems = 10000

// ImportContent stores an array of items. Each item is validated on its
// own; invalid items are reported as failures and the rest are stored,
// tagged by the engine when they carry no tags.
//
// POST /api/v1/content/import
func (h *Handler) ImportContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var items []*models.NewContent
	if !decodeJSON(w, r, &items, maxBulkBodyBytes) {
		return
	}
	if len(items) > maxImportItems {
		rw.BadRequest("too many items in one import")
		return
	}

	ctx := logging.ContextWithNewCorrelationID(r.Context())
	summary := models.NewImportSummary()
	for _, item := range items {
		summary.Add(h.importOne(ctx, "api", item))
	}

	logging.Ctx(ctx).Info().
		Int("total", summary.Total).
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Msg("Content import finished")
	rw.Success(summary)
}

// ImportTMDB fetches one TMDB discover page and stores its titles.
//
// POST /api/v1/content/import/tmdb?page
func (h *Handler) ImportTMDB(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.tmdb == nil {
		rw.ServiceUnavailable("TMDB import is not enabled")
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	ctx := logging.ContextWithNewCorrelationID(r.Context())
	records, err := h.tmdb.DiscoverDisney(ctx, page)
	if err != nil {
		if errors.Is(err, importer.ErrTMDBUnavailable) {
			rw.ServiceUnavailable("TMDB is temporarily unavailable")
			return
		}
		rw.ExternalServiceError("tmdb", err)
		return
	}

	summary := models.NewImportSummary()
	for i := range records {
		summary.Add(h.importOne(ctx, "tmdb", newContentFromRecord(&records[i])))
	}

	logging.Ctx(ctx).Info().
		Int("page", page).
		Int("total", summary.Total).
		Int("failed", summary.Failed).
		Msg("TMDB import finished")
	rw.Success(summary)
}

// importOne validates, tags and stores a single item.
func (h *Handler) importOne(ctx context.Context, source string, item *models.NewContent) models.ImportItemResult {
	if item == nil {
		metrics.RecordImport(source, false)
		return models.ImportItemResult{Error: "item must be an object"}
	}

	result := models.ImportItemResult{Title: item.Title}
	if verr := validation.ValidateStruct(item); verr != nil {
		metrics.RecordImport(source, false)
		result.Error = verr.Error()
		return result
	}

	content := item.ToContent()
	if item.NeedsTags() {
		content.ApplyTags(h.tag("import", item.Record()))
	}

	created, err := h.catalog.Create(ctx, content)
	metrics.RecordImport(source, err == nil)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("title", sanitizeLogValue(item.Title)).Msg("Import item failed")
		result.Error = "failed to store item"
		return result
	}

	h.publish(ctx, events.TopicContentTagged, created)
	result.Success = true
	result.ID = created.ID
	return result
}

// newContentFromRecord converts a TMDB record into a create payload. Items
// whose release date did not parse keep ReleaseYear 0 and fail validation.
func newContentFromRecord(rec *tagging.ContentRecord) *models.NewContent {
	return &models.NewContent{
		Title:       rec.Title,
		Type:        rec.Type,
		Description: rec.Description,
		Studio:      rec.Studio,
		ReleaseYear: rec.ReleaseYear,
		Genres:      rec.Genres,
		Franchises:  rec.Franchises,
		ListedIn:    rec.ListedIn,
		Rating:      rec.Rating,
		AddedDate:   rec.AddedDate,
		ExpiryDate:  rec.ExpiryDate,
	}
}
