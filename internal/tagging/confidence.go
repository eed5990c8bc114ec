// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package tagging

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Confidence weights. Each family always adds its maximum to the
// denominator whether or not it contributed to the score.
const (
	brandWeight        = 25
	brandStudioBonus   = 15
	brandMax           = brandWeight + brandStudioBonus
	categoryWeight     = 20
	genrePointsPerHit  = 5
	genreBonusCap      = 15
	categoryMax        = categoryWeight + genreBonusCap
	availabilityWeight = 20
	descriptionBonus   = 3
	franchiseBonus     = 2
	metadataMax        = descriptionBonus + franchiseBonus

	// minDescriptionLength is the rune count a description must exceed to
	// earn the metadata bonus.
	minDescriptionLength = 20
)

// ConfidenceScore combines the tags assigned to record with its raw metadata
// into a percentage in [0, MaxConfidence].
func ConfidenceScore(record *ContentRecord, tags TagSet) int {
	score := 0
	maxPossible := 0

	if len(tags.Brand) > 0 {
		score += brandWeight
		if studioNamesBrand(record.Studio, tags.Brand) {
			score += brandStudioBonus
		}
	}
	maxPossible += brandMax

	if len(tags.Category) > 0 {
		score += categoryWeight
		if hits := genreCategoryMatches(record.Genres, tags.Category); hits > 0 {
			score += min(genreBonusCap, hits*genrePointsPerHit)
		}
	}
	maxPossible += categoryMax

	if len(tags.Availability) > 0 {
		score += availabilityWeight
	}
	maxPossible += availabilityWeight

	if utf8.RuneCountInString(record.Description) > minDescriptionLength {
		score += descriptionBonus
	}
	if len(record.Franchises) > 0 {
		score += franchiseBonus
	}
	maxPossible += metadataMax

	if maxPossible == 0 {
		return 0
	}

	pct := int(math.Floor(float64(score)/float64(maxPossible)*100 + 0.5))
	return min(MaxConfidence, pct)
}

// studioNamesBrand reports whether studio contains any brand verbatim.
func studioNamesBrand(studio string, brands []string) bool {
	if studio == "" {
		return false
	}
	for _, b := range brands {
		if strings.Contains(studio, b) {
			return true
		}
	}
	return false
}

// genreCategoryMatches counts genres equal to some category, ignoring case.
func genreCategoryMatches(genres, categories []string) int {
	n := 0
	for _, g := range genres {
		for _, c := range categories {
			if strings.EqualFold(g, c) {
				n++
				break
			}
		}
	}
	return n
}
