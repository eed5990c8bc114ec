// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package models defines the catalog records and API payloads shared by the
catalog, importer and api packages.

Stored records:

  - Content: one catalog title with its tags and confidence score
  - BatchProcess: the audit record of one batch tagging run

Request and response payloads:

  - NewContent, ContentPatch, TagsUpdate: create and update bodies
  - TagRequest, TagResponse: one-off tag generation
  - BatchRequest, BatchResponse, BatchItemResult: batch tagging
  - ImportSummary, ImportItemResult: bulk and TMDB imports
  - FilterOptions: the /filter query
  - Stats, HealthStatus: dashboard and health endpoints

JSON field names are camelCase. Tag families always encode as arrays, never
null; Normalize fills missing families before a record is stored or sent.
Struct tags carry go-playground/validator rules that the validation package
applies to request bodies.
*/
package models
