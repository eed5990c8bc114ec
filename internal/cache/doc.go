// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

// Package cache provides a generic LRU cache with TTL expiry. The TMDB
// client uses it to hold discover pages between imports.
package cache
