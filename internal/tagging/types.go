// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package tagging

import (
	"errors"
	"time"
)

// Availability tags.
const (
	AvailabilityNewArrival  = "New Arrival"
	AvailabilityLeavingSoon = "Leaving Soon"
	AvailabilityExclusive   = "Exclusive"
	AvailabilityStandard    = "Standard"
)

// Category tags emitted by the rating pass. The remaining categories come
// from the keyword table in category.go.
const (
	CategoryKids      = "Kids"
	CategoryFamily    = "Family"
	CategoryMature    = "Mature"
	CategoryAnimation = "Animation"
)

// MaxConfidence is the highest score the engine ever reports.
const MaxConfidence = 99

// ErrMalformedRecord is reported for batch items that cannot be classified.
var ErrMalformedRecord = errors.New("malformed content record")

// ContentRecord is the metadata the engine classifies. Empty strings and
// nil timestamps are treated as absent evidence.
type ContentRecord struct {
	Title       string     `json:"title"`
	Type        string     `json:"type,omitempty"`
	Description string     `json:"description,omitempty"`
	Studio      string     `json:"studio,omitempty"`
	Director    string     `json:"director,omitempty"`
	Cast        []string   `json:"cast,omitempty"`
	Franchises  []string   `json:"franchises,omitempty"`
	Genres      []string   `json:"genres,omitempty"`
	ListedIn    []string   `json:"listedIn,omitempty"`
	Rating      string     `json:"rating,omitempty"`
	ReleaseYear int        `json:"releaseYear"`
	AddedDate   *time.Time `json:"addedDate,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
}

// TagSet groups the tags assigned to one content record.
// System and Manual are never populated by the engine.
type TagSet struct {
	Availability []string `json:"availability"`
	Brand        []string `json:"brand"`
	Category     []string `json:"category"`
	System       []string `json:"system"`
	Manual       []string `json:"manual"`
}

// NewTagSet returns a TagSet with every family initialized to an empty slice
// so it encodes as arrays rather than null.
func NewTagSet() TagSet {
	return TagSet{
		Availability: []string{},
		Brand:        []string{},
		Category:     []string{},
		System:       []string{},
		Manual:       []string{},
	}
}

// IsEmpty reports whether no family holds a tag.
func (t TagSet) IsEmpty() bool {
	return len(t.Availability) == 0 && len(t.Brand) == 0 && len(t.Category) == 0 &&
		len(t.System) == 0 && len(t.Manual) == 0
}

// HasClassification reports whether any engine-produced family is populated.
func (t TagSet) HasClassification() bool {
	return len(t.Availability) > 0 || len(t.Brand) > 0 || len(t.Category) > 0
}

// Normalize replaces nil families with empty slices.
func (t TagSet) Normalize() TagSet {
	if t.Availability == nil {
		t.Availability = []string{}
	}
	if t.Brand == nil {
		t.Brand = []string{}
	}
	if t.Category == nil {
		t.Category = []string{}
	}
	if t.System == nil {
		t.System = []string{}
	}
	if t.Manual == nil {
		t.Manual = []string{}
	}
	return t
}

// Result is the outcome of tagging a single record.
type Result struct {
	Tags            TagSet `json:"tags"`
	ConfidenceScore int    `json:"confidenceScore"`
}

// BatchResult is the outcome for one record in a batch.
type BatchResult struct {
	Content         *ContentRecord `json:"content"`
	Tags            TagSet         `json:"tags"`
	ConfidenceScore int            `json:"confidenceScore"`
	Success         bool           `json:"success"`
	Error           string         `json:"error,omitempty"`
}
