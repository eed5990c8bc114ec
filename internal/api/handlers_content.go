// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/tagsmith/internal/catalog"
	"github.com/tomtom215/tagsmith/internal/events"
	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/models"
	"github.com/tomtom215/tagsmith/internal/validation"
)

// Stats returns catalog statistics.
//
// GET /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		rw.StorageError("stats", err)
		return
	}
	rw.Success(stats)
}

// ListContent returns the catalog ordered by id. Without limit or offset
// the whole catalog is returned; otherwise the page is bounded by the
// configured page sizes.
//
// GET /api/v1/content?limit&offset
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := r.URL.Query()
	paged := q.Has("limit") || q.Has("offset")
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		rw.BadRequest("offset must be a non-negative integer")
		return
	}

	items, err := h.catalog.List(r.Context())
	if err != nil {
		rw.StorageError("list", err)
		return
	}

	total := len(items)
	if !paged {
		rw.SuccessWithPagination(items, &PaginationMeta{Total: total, Count: total, Limit: total})
		return
	}

	limit = h.config.API.ClampPageSize(limit)
	page := models.Page(items, offset, limit)
	rw.SuccessWithPagination(page, &PaginationMeta{
		Total:   total,
		Count:   len(page),
		Offset:  offset,
		Limit:   limit,
		HasMore: offset+len(page) < total,
	})
}

// RecentContent returns the newest items by added date.
//
// GET /api/v1/content/recent?limit
func (h *Handler) RecentContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, err := queryInt(r, "limit", catalog.DefaultRecentLimit)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if limit > h.config.API.MaxPageSize {
		limit = h.config.API.MaxPageSize
	}

	items, err := h.catalog.Recent(r.Context(), limit)
	if err != nil {
		rw.StorageError("recent", err)
		return
	}
	rw.Success(items)
}

// GetContent returns one catalog item.
//
// GET /api/v1/content/{id}
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := pathID(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	item, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeLookupError(rw, "content", "get", err)
		return
	}
	rw.Success(item)
}

// CreateContent stores a new item. Items that arrive without tags are
// tagged by the engine first.
//
// POST /api/v1/content
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.NewContent
	if !decodeJSON(w, r, &req, maxBodyBytes) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	item := req.ToContent()
	if req.NeedsTags() {
		item.ApplyTags(h.tag("single", req.Record()))
	}

	created, err := h.catalog.Create(r.Context(), item)
	if err != nil {
		rw.StorageError("create", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("id", created.ID).
		Str("title", sanitizeLogValue(created.Title)).
		Int("confidence", created.ConfidenceScore).
		Msg("Content created")
	h.publish(r.Context(), events.TopicContentTagged, created)
	rw.Created(created)
}

// UpdateContent applies a partial update. Tags are not recomputed.
//
// PUT /api/v1/content/{id}
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := pathID(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	var patch models.ContentPatch
	if !decodeJSON(w, r, &patch, maxBodyBytes) {
		return
	}
	if verr := validation.ValidateStruct(&patch); verr != nil {
		rw.ValidationError(verr)
		return
	}

	item, err := h.catalog.Update(r.Context(), id, &patch)
	if err != nil {
		writeLookupError(rw, "content", "update", err)
		return
	}
	rw.Success(item)
}

// UpdateContentTags replaces every tag family and marks the item reviewed.
//
// PUT /api/v1/content/{id}/tags
func (h *Handler) UpdateContentTags(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := pathID(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	var req models.TagsUpdate
	if !decodeJSON(w, r, &req, maxBodyBytes) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	item, err := h.catalog.UpdateTags(r.Context(), id, req.TagSet())
	if err != nil {
		writeLookupError(rw, "content", "update_tags", err)
		return
	}

	h.publish(r.Context(), events.TopicContentTagged, item)
	rw.Success(item)
}

// DeleteContent removes an item.
//
// DELETE /api/v1/content/{id}
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := pathID(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		writeLookupError(rw, "content", "delete", err)
		return
	}

	h.publish(r.Context(), events.TopicContentDeleted, events.DeletedPayload{ID: id})
	rw.NoContent()
}

// SearchContent matches q against titles, descriptions and tags.
//
// GET /api/v1/search?q
func (h *Handler) SearchContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		rw.BadRequest("query parameter q is required")
		return
	}
	if len(q) > 200 {
		rw.BadRequest("query parameter q must be at most 200 characters")
		return
	}

	items, err := h.catalog.Search(r.Context(), q)
	if err != nil {
		rw.StorageError("search", err)
		return
	}
	rw.Success(items)
}

// FilterContent narrows the catalog by metadata and tags.
//
// GET /api/v1/filter
func (h *Handler) FilterContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	opts, err := h.parseFilterOptions(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	items, err := h.catalog.Filter(r.Context(), opts)
	if err != nil {
		rw.StorageError("filter", err)
		return
	}
	rw.Success(items)
}

func (h *Handler) parseFilterOptions(r *http.Request) (models.FilterOptions, error) {
	q := r.URL.Query()
	opts := models.FilterOptions{
		Type:         q.Get("type"),
		Studio:       q.Get("studio"),
		Brand:        q.Get("brand"),
		Availability: q.Get("availability"),
		Category:     q.Get("category"),
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"releaseYear", &opts.ReleaseYear},
		{"releaseYearMin", &opts.ReleaseYearMin},
		{"releaseYearMax", &opts.ReleaseYearMax},
		{"limit", &opts.Limit},
		{"offset", &opts.Offset},
	}
	for _, p := range ints {
		v, err := queryInt(r, p.name, 0)
		if err != nil {
			return opts, err
		}
		*p.dst = v
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.Limit > h.config.API.MaxPageSize {
		opts.Limit = h.config.API.MaxPageSize
	}

	if raw := q.Get("isReviewed"); raw != "" {
		reviewed, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errors.New("isReviewed must be true or false")
		}
		opts.IsReviewed = &reviewed
	}
	if q.Has("confidenceScoreMin") {
		minScore, err := queryInt(r, "confidenceScoreMin", 0)
		if err != nil {
			return opts, err
		}
		opts.ConfidenceScoreMin = &minScore
	}
	return opts, nil
}
