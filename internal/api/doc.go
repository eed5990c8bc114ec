// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package api provides the HTTP REST API layer for Tagsmith.

Every endpoint under /api/v1 answers with the same envelope:

	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Endpoints:

  - GET /health, GET /metrics (Prometheus)
  - GET /api/v1/stats
  - GET, POST /api/v1/content; GET /api/v1/content/recent
  - GET, PUT, DELETE /api/v1/content/{id}; PUT /api/v1/content/{id}/tags
  - POST /api/v1/content/import, POST /api/v1/content/import/tmdb
  - GET /api/v1/search?q, GET /api/v1/filter
  - POST /api/v1/tag
  - POST, GET /api/v1/batch; GET /api/v1/batch/{id}
  - GET /api/v1/ws (live feed)

Middleware stack (outermost first): request ID, real IP, access log, panic
recovery, CORS. The /api/v1 group adds rate limiting, security headers,
Prometheus metrics, a request timeout and response compression. Import and
batch endpoints carry a tighter per-client rate limit.

Mutations publish events (content.tagged, content.deleted, batch.completed)
through the events.Publisher given in Deps; a failed publish is logged and
never fails the request.

Usage Example:

	handler := api.NewHandler(api.Deps{
	    Catalog: cat,
	    Engine:  tagging.NewEngine(),
	    Events:  bus,
	    Config:  cfg,
	})
	router := api.NewRouter(handler, websocket.NewHandler(hub, cfg.Security.CORSOrigins))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.Setup()}
*/
package api
