// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package config loads and validates Tagsmith configuration.

# Configuration Sources

LoadWithKoanf layers three sources, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/tagsmith/config.yaml, /etc/tagsmith/config.yml
 3. Environment variables (explicit mapping, unknown names ignored)

# Environment Variables

Server:
  - HTTP_HOST (default 0.0.0.0), HTTP_PORT (5000), HTTP_TIMEOUT (30s)
  - ENVIRONMENT: development, staging or production

API:
  - API_DEFAULT_PAGE_SIZE (20), API_MAX_PAGE_SIZE (100)

Security:
  - CORS_ORIGINS: comma-separated list (default *; wildcard rejected in production)
  - RATE_LIMIT_REQUESTS (100), RATE_LIMIT_WINDOW (1m), DISABLE_RATE_LIMIT

Storage:
  - STORAGE_BACKEND: memory (default) or badger
  - BADGER_PATH (/data/catalog), BADGER_SYNC_WRITES
  - SEED_CSV_PATH: catalog CSV loaded into an empty catalog at startup

Tagging:
  - TAGGING_BATCH_WORKERS (4), TAGGING_CONFIDENCE_THRESHOLD (80)

TMDB importer:
  - TMDB_ENABLED, TMDB_API_KEY (required when enabled)
  - TMDB_BASE_URL (https://api.themoviedb.org/3), TMDB_TIMEOUT (10s)
  - TMDB_REQUESTS_PER_SECOND (4), TMDB_BURST (2), TMDB_CACHE_TTL (15m)

Events:
  - EVENTS_ENABLED (true), EVENTS_BUFFER_SIZE (256)

Logging:
  - LOG_LEVEL (info), LOG_FORMAT (json|console), LOG_CALLER

# YAML Example

	server:
	  port: 8080
	storage:
	  backend: badger
	  path: /var/lib/tagsmith
	tmdb:
	  enabled: true

Secrets such as the TMDB key are better supplied through the environment
than committed to the YAML file.
*/
package config
