// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

Tagging:
  - tagging_tags_generated_total{family, tag}
  - tagging_confidence_score (histogram)
  - tagging_duration_seconds{mode}
  - tagging_batch_items_total{outcome}

Catalog:
  - catalog_operation_duration_seconds{operation, backend}
  - catalog_operation_errors_total{operation, backend}
  - catalog_content_items

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Imports and TMDB:
  - import_items_total{source, outcome}
  - tmdb_request_duration_seconds
  - tmdb_cache_lookups_total{result}
  - circuit_breaker_* for the TMDB client breaker

Live feed:
  - websocket_connections, websocket_messages_sent_total, websocket_errors_total
  - events_published_total{topic, result}, events_delivered_total{topic}
*/
package metrics
