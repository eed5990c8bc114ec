// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/tagsmith/internal/middleware"
)

// Budgets for the bulk endpoints, per client.
const (
	bulkRateLimitRequests = 10
	bulkRateLimitWindow   = time.Minute
)

// Router wires the handler and the live feed into a chi mux.
type Router struct {
	handler *Handler
	feed    http.Handler
	chi     *ChiMiddleware
}

// NewRouter creates a Router. feed serves the websocket endpoint and may be
// nil, in which case /api/v1/ws is not registered.
func NewRouter(handler *Handler, feed http.Handler) *Router {
	return &Router{
		handler: handler,
		feed:    feed,
		chi:     NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&handler.config.Security)),
	}
}

// Setup builds the HTTP handler.
func (router *Router) Setup() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chi.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(router.chi.RateLimit())
			r.Use(middleware.SecurityHeaders)
			r.Use(middleware.PrometheusMetrics)
			if timeout := h.config.Server.Timeout; timeout > 0 {
				r.Use(chimiddleware.Timeout(timeout))
			}
			r.Use(chimiddleware.Compress(5, "application/json"))

			r.Get("/stats", h.Stats)
			r.Get("/search", h.SearchContent)
			r.Get("/filter", h.FilterContent)
			r.Post("/tag", h.GenerateTags)

			r.Route("/content", func(r chi.Router) {
				r.Get("/", h.ListContent)
				r.Post("/", h.CreateContent)
				r.Get("/recent", h.RecentContent)
				r.Get("/{id}", h.GetContent)
				r.Put("/{id}", h.UpdateContent)
				r.Put("/{id}/tags", h.UpdateContentTags)
				r.Delete("/{id}", h.DeleteContent)

				r.Group(func(r chi.Router) {
					r.Use(router.chi.RateLimitCustom(bulkRateLimitRequests, bulkRateLimitWindow))
					r.Post("/import", h.ImportContent)
					r.Post("/import/tmdb", h.ImportTMDB)
				})
			})

			r.Route("/batch", func(r chi.Router) {
				r.Get("/", h.ListBatches)
				r.Get("/{id}", h.GetBatch)
				r.With(router.chi.RateLimitCustom(bulkRateLimitRequests, bulkRateLimitWindow)).Post("/", h.ProcessBatch)
			})
		})

		// The live feed is a long-lived upgraded connection, so it stays
		// outside the timeout, compression and metrics middleware.
		if router.feed != nil {
			r.With(router.chi.RateLimit()).Get("/ws", router.feed.ServeHTTP)
		}
	})

	return r
}
