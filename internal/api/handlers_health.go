// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/models"
)

// Health reports service status. It answers 200 while storage is reachable
// and 503 otherwise.
//
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	storageOK := true
	if err := h.catalog.Ping(ctx); err != nil {
		storageOK = false
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Health check: storage ping failed")
	}

	status := models.HealthStatus{
		Status:      "healthy",
		Version:     h.version,
		Storage:     h.catalog.Backend(),
		StorageOK:   storageOK,
		TMDBEnabled: h.tmdb != nil,
		Uptime:      time.Since(h.startTime).Seconds(),
	}
	if h.tmdb != nil {
		status.TMDBCircuit = h.tmdb.CircuitState()
	}
	if h.eventsRunning != nil {
		status.EventsRunning = h.eventsRunning()
	}

	if !storageOK {
		status.Status = "unhealthy"
		rw.writeJSON(http.StatusServiceUnavailable, APIResponse{Success: false, Data: status, Meta: rw.meta()})
		return
	}
	if h.tmdb != nil && status.TMDBCircuit == "open" {
		status.Status = "degraded"
	}
	rw.Success(status)
}
