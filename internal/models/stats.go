// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package models

import "time"

// Stats summarizes the catalog. Distributions map each tag to its rounded
// share (percent) of all tags in that family.
type Stats struct {
	TotalContent             int            `json:"totalContent"`
	TaggedContent            int            `json:"taggedContent"`
	PendingReview            int            `json:"pendingReview"`
	TaggingAccuracy          int            `json:"taggingAccuracy"`
	BrandDistribution        map[string]int `json:"brandDistribution"`
	AvailabilityDistribution map[string]int `json:"availabilityDistribution"`
	CategoryDistribution     map[string]int `json:"categoryDistribution"`
	LastUpdated              time.Time      `json:"lastUpdated"`
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Storage       string  `json:"storage"`
	StorageOK     bool    `json:"storage_ok"`
	TMDBEnabled   bool    `json:"tmdb_enabled"`
	TMDBCircuit   string  `json:"tmdb_circuit,omitempty"`
	EventsRunning bool    `json:"events_running"`
	Uptime        float64 `json:"uptime_seconds"`
}
