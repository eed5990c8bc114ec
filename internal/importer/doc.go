// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package importer brings external titles into the catalog.

Two sources are supported:

  - ReadCSV parses the public Disney+ titles export (show_id, type, title,
    director, cast, country, date_added, release_year, rating, duration,
    listed_in, description) and Seed stores the rows, tagged by the engine,
    when the server starts with an empty catalog.
  - TMDBClient pages through TMDB's discover endpoint for films from the
    Walt Disney Pictures, Marvel Studios, Pixar and Lucasfilm production
    companies. Requests are paced by a token bucket, guarded by a circuit
    breaker, and cached per page.
*/
package importer
