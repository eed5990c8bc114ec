// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

// Command server runs the tagsmith HTTP API.
//
// Startup order:
//
//  1. Configuration (koanf: defaults, optional config.yaml, environment)
//  2. Logging
//  3. Catalog store (memory or BadgerDB) and optional CSV seed
//  4. Tag engine, event bus and websocket hub
//  5. Optional TMDB discover client
//  6. HTTP handler and router
//  7. Supervisor tree (data, messaging and api layers)
//
// SIGINT or SIGTERM cancels the tree. The HTTP server drains in-flight
// requests, the event bus is closed and the catalog store is flushed.
//
// Common settings:
//
//	HTTP_PORT=8080
//	STORAGE_BACKEND=badger BADGER_PATH=/data/catalog
//	SEED_CSV_PATH=/data/disney_plus_titles.csv
//	TMDB_ENABLED=true TMDB_API_KEY=...
//	LOG_FORMAT=console LOG_LEVEL=debug
package main
