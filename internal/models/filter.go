// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package models

import "slices"

// FilterOptions narrows a catalog listing. Zero values disable a criterion.
type FilterOptions struct {
	Type               string `json:"type,omitempty"`
	ReleaseYear        int    `json:"releaseYear,omitempty"`
	ReleaseYearMin     int    `json:"releaseYearMin,omitempty"`
	ReleaseYearMax     int    `json:"releaseYearMax,omitempty"`
	Studio             string `json:"studio,omitempty"`
	Brand              string `json:"brand,omitempty"`
	Availability       string `json:"availability,omitempty"`
	Category           string `json:"category,omitempty"`
	IsReviewed         *bool  `json:"isReviewed,omitempty"`
	ConfidenceScoreMin *int   `json:"confidenceScoreMin,omitempty"`
	Limit              int    `json:"limit,omitempty"`
	Offset             int    `json:"offset,omitempty"`
}

// Matches reports whether c satisfies every set criterion. Limit and Offset
// are applied by the caller. An exact ReleaseYear takes precedence over the
// range bounds.
func (f *FilterOptions) Matches(c *Content) bool {
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if f.ReleaseYear != 0 {
		if c.ReleaseYear != f.ReleaseYear {
			return false
		}
	} else {
		if f.ReleaseYearMin != 0 && c.ReleaseYear < f.ReleaseYearMin {
			return false
		}
		if f.ReleaseYearMax != 0 && c.ReleaseYear > f.ReleaseYearMax {
			return false
		}
	}
	if f.Studio != "" && c.Studio != f.Studio {
		return false
	}
	if f.Brand != "" && !slices.Contains(c.Tags.Brand, f.Brand) {
		return false
	}
	if f.Availability != "" && !slices.Contains(c.Tags.Availability, f.Availability) {
		return false
	}
	if f.Category != "" && !slices.Contains(c.Tags.Category, f.Category) {
		return false
	}
	if f.IsReviewed != nil && c.IsReviewed != *f.IsReviewed {
		return false
	}
	if f.ConfidenceScoreMin != nil && c.ConfidenceScore < *f.ConfidenceScoreMin {
		return false
	}
	return true
}

// Page applies Offset and Limit to items.
func Page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
