// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package tagging

import "time"

// exclusiveReleaseYear is the first release year for which a studio match
// alone marks a title as exclusive.
const exclusiveReleaseYear = 2019

var exclusiveKeywordRules = []rule{
	{label: AvailabilityExclusive, triggers: []string{"Original", "Only on Disney+", "Disney+ Original", "Exclusive"}},
}

var exclusiveStudioRules = []rule{
	{label: AvailabilityExclusive, triggers: []string{"Marvel Studios", "Lucasfilm", "Disney+"}},
}

// classifyAvailability returns the availability tags for record relative to
// now. Standard is emitted only when no other tag applies.
func (e *Engine) classifyAvailability(record *ContentRecord, now time.Time) []string {
	tags := make([]string, 0, 3)

	oneMonthAgo := now.AddDate(0, -1, 0)
	oneMonthLater := now.AddDate(0, 1, 0)

	if record.AddedDate != nil && record.AddedDate.After(oneMonthAgo) {
		tags = append(tags, AvailabilityNewArrival)
	}
	if record.ExpiryDate != nil && record.ExpiryDate.Before(oneMonthLater) {
		tags = append(tags, AvailabilityLeavingSoon)
	}
	if e.isExclusive(record) {
		tags = append(tags, AvailabilityExclusive)
	}

	if len(tags) == 0 {
		tags = append(tags, AvailabilityStandard)
	}
	return tags
}

// isExclusive applies the case-sensitive keyword check and the recent
// studio-release check.
func (e *Engine) isExclusive(record *ContentRecord) bool {
	blob := textBlob([]string{record.Title, record.Description}, record.Franchises)
	if e.exclusiveKeywords.Contains(blob) {
		return true
	}
	return record.ReleaseYear >= exclusiveReleaseYear && e.exclusiveStudios.Contains(record.Studio)
}
