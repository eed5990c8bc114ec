// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/tagsmith/internal/catalog"
	"github.com/tomtom215/tagsmith/internal/config"
	"github.com/tomtom215/tagsmith/internal/events"
	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/metrics"
	"github.com/tomtom215/tagsmith/internal/tagging"
)

// Request body limits.
const (
	maxBodyBytes     = 1 << 20
	maxBulkBodyBytes = 32 << 20
)

// TMDBSource fetches discover pages from TMDB.
type TMDBSource interface {
	DiscoverDisney(ctx context.Context, page int) ([]tagging.ContentRecord, error)
	CircuitState() string
}

// Deps collects the collaborators of Handler. Catalog, Engine and Config
// are required; TMDB is nil when the importer is disabled.
type Deps struct {
	Catalog       *catalog.Catalog
	Engine        *tagging.Engine
	TMDB          TMDBSource
	Events        events.Publisher
	EventsRunning func() bool
	Config        *config.Config
	Version       string
}

// Handler serves the /api/v1 endpoints.
type Handler struct {
	catalog       *catalog.Catalog
	engine        *tagging.Engine
	tmdb          TMDBSource
	events        events.Publisher
	eventsRunning func() bool
	config        *config.Config
	version       string
	startTime     time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		catalog:       deps.Catalog,
		engine:        deps.Engine,
		tmdb:          deps.TMDB,
		events:        deps.Events,
		eventsRunning: deps.EventsRunning,
		config:        deps.Config,
		version:       deps.Version,
		startTime:     time.Now(),
	}
	if h.events == nil {
		h.events = events.NopPublisher{}
	}
	if h.version == "" {
		h.version = "dev"
	}
	return h
}

// decodeJSON reads a JSON body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, limit int64) bool {
	body := http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			NewResponseWriter(w, r).Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "request body too large")
			return false
		}
		NewResponseWriter(w, r).BadRequest("invalid JSON body")
		return false
	}
	return true
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", sanitizeLogValue(raw))
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. Missing values
// return def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

// writeLookupError maps catalog lookups to 404 or 500.
func writeLookupError(rw *ResponseWriter, what, operation string, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		rw.NotFound(what + " not found")
		return
	}
	rw.StorageError(operation, err)
}

// publish sends an event without failing the request.
func (h *Handler) publish(ctx context.Context, topic string, data interface{}) {
	if err := h.events.Publish(ctx, topic, data); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("topic", topic).Msg("Failed to publish event")
	}
}

// tag runs the engine on one record and records tagging metrics.
func (h *Handler) tag(mode string, record tagging.ContentRecord) tagging.Result {
	start := time.Now()
	res := h.engine.GenerateTags(record)
	recordTagging(mode, res, time.Since(start))
	return res
}

func recordTagging(mode string, res tagging.Result, elapsed time.Duration) {
	metrics.RecordTagging(mode, metrics.TagFamilies{
		Availability: res.Tags.Availability,
		Brand:        res.Tags.Brand,
		Category:     res.Tags.Category,
	}, res.ConfidenceScore, elapsed)
}

// sanitizeLogValue strips control characters and bounds the length of a
// user supplied value before it reaches logs or error messages.
func sanitizeLogValue(s string) string {
	const maxLen = 100
	var b strings.Builder
	for _, r := range s {
		if r < 32 || r == 127 {
			continue
		}
		b.WriteRune(r)
		if b.Len() >= maxLen {
			b.WriteString("...")
			break
		}
	}
	return b.String()
}
