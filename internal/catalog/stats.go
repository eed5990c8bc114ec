// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package catalog

import (
	"math"
	"time"

	"github.com/tomtom215/tagsmith/internal/models"
)

// ComputeStats derives catalog statistics from items.
//
// Distributions map each tag to its rounded share (0..100) of all tag
// occurrences in that family, so a family's values may not sum to exactly
// 100. TaggingAccuracy is the rounded mean confidence of tagged items.
func ComputeStats(items []*models.Content, now time.Time) models.Stats {
	s := models.Stats{
		TotalContent: len(items),
		LastUpdated:  now,
	}

	brands := map[string]int{}
	availability := map[string]int{}
	categories := map[string]int{}
	confidenceSum := 0

	for _, it := range items {
		if it.Tags.HasClassification() {
			s.TaggedContent++
			confidenceSum += it.ConfidenceScore
		}
		if !it.IsReviewed {
			s.PendingReview++
		}
		countTags(brands, it.Tags.Brand)
		countTags(availability, it.Tags.Availability)
		countTags(categories, it.Tags.Category)
	}

	if s.TaggedContent > 0 {
		s.TaggingAccuracy = roundHalfUp(float64(confidenceSum) / float64(s.TaggedContent))
	}
	s.BrandDistribution = shares(brands)
	s.AvailabilityDistribution = shares(availability)
	s.CategoryDistribution = shares(categories)
	return s
}

func countTags(counts map[string]int, tags []string) {
	for _, t := range tags {
		counts[t]++
	}
}

func shares(counts map[string]int) map[string]int {
	total := 0
	for _, n := range counts {
		total += n
	}
	out := make(map[string]int, len(counts))
	for tag, n := range counts {
		out[tag] = roundHalfUp(float64(n) / float64(total) * 100)
	}
	return out
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
