// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package models

import (
	"slices"
	"time"

	"github.com/tomtom215/tagsmith/internal/tagging"
)

// Content is a catalog entry together with its tags.
type Content struct {
	ID              int            `json:"id"`
	ShowID          string         `json:"showId,omitempty"`
	Title           string         `json:"title"`
	Type            string         `json:"type"`
	Director        string         `json:"director,omitempty"`
	Cast            []string       `json:"cast"`
	Country         string         `json:"country,omitempty"`
	ReleaseYear     int            `json:"releaseYear"`
	Rating          string         `json:"rating,omitempty"`
	Duration        string         `json:"duration,omitempty"`
	Description     string         `json:"description,omitempty"`
	AddedDate       time.Time      `json:"addedDate"`
	ExpiryDate      *time.Time     `json:"expiryDate,omitempty"`
	Studio          string         `json:"studio,omitempty"`
	Franchises      []string       `json:"franchises"`
	Genres          []string       `json:"genres"`
	ListedIn        []string       `json:"listedIn"`
	Tags            tagging.TagSet `json:"tags"`
	ConfidenceScore int            `json:"confidenceScore"`
	IsReviewed      bool           `json:"isReviewed"`
	LastUpdated     time.Time      `json:"lastUpdated"`
}

// Record projects the fields the tagging engine reads.
func (c *Content) Record() tagging.ContentRecord {
	rec := tagging.ContentRecord{
		Title:       c.Title,
		Type:        c.Type,
		Description: c.Description,
		Studio:      c.Studio,
		Director:    c.Director,
		Cast:        c.Cast,
		Franchises:  c.Franchises,
		Genres:      c.Genres,
		ListedIn:    c.ListedIn,
		Rating:      c.Rating,
		ReleaseYear: c.ReleaseYear,
		ExpiryDate:  c.ExpiryDate,
	}
	if !c.AddedDate.IsZero() {
		added := c.AddedDate
		rec.AddedDate = &added
	}
	return rec
}

// ApplyTags stores an engine result on the content.
func (c *Content) ApplyTags(res tagging.Result) {
	c.Tags = res.Tags
	c.ConfidenceScore = res.ConfidenceScore
}

// Normalize replaces nil slices so the content encodes arrays, not null.
func (c *Content) Normalize() {
	if c.Cast == nil {
		c.Cast = []string{}
	}
	if c.Franchises == nil {
		c.Franchises = []string{}
	}
	if c.Genres == nil {
		c.Genres = []string{}
	}
	if c.ListedIn == nil {
		c.ListedIn = []string{}
	}
	c.Tags = c.Tags.Normalize()
}

// Clone returns a deep copy of c.
func (c *Content) Clone() *Content {
	out := *c
	out.Cast = slices.Clone(c.Cast)
	out.Franchises = slices.Clone(c.Franchises)
	out.Genres = slices.Clone(c.Genres)
	out.ListedIn = slices.Clone(c.ListedIn)
	out.Tags = tagging.TagSet{
		Availability: slices.Clone(c.Tags.Availability),
		Brand:        slices.Clone(c.Tags.Brand),
		Category:     slices.Clone(c.Tags.Category),
		System:       slices.Clone(c.Tags.System),
		Manual:       slices.Clone(c.Tags.Manual),
	}
	if c.ExpiryDate != nil {
		expiry := *c.ExpiryDate
		out.ExpiryDate = &expiry
	}
	return &out
}

// NewContent is the payload for creating a catalog entry.
type NewContent struct {
	ShowID          string          `json:"showId,omitempty" validate:"omitempty,max=64"`
	Title           string          `json:"title" validate:"required,notblank,max=500"`
	Type            string          `json:"type" validate:"required,max=50"`
	Director        string          `json:"director,omitempty" validate:"omitempty,max=500"`
	Cast            []string        `json:"cast,omitempty" validate:"omitempty,max=200,dive,max=200"`
	Country         string          `json:"country,omitempty" validate:"omitempty,max=200"`
	ReleaseYear     int             `json:"releaseYear" validate:"required,gt=0"`
	Rating          string          `json:"rating,omitempty" validate:"omitempty,max=20"`
	Duration        string          `json:"duration,omitempty" validate:"omitempty,max=50"`
	Description     string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	AddedDate       *time.Time      `json:"addedDate,omitempty"`
	ExpiryDate      *time.Time      `json:"expiryDate,omitempty"`
	Studio          string          `json:"studio,omitempty" validate:"omitempty,max=200"`
	Franchises      []string        `json:"franchises,omitempty" validate:"omitempty,max=50,dive,max=200"`
	Genres          []string        `json:"genres,omitempty" validate:"omitempty,max=50,dive,max=100"`
	ListedIn        []string        `json:"listedIn,omitempty" validate:"omitempty,max=50,dive,max=100"`
	Tags            *tagging.TagSet `json:"tags,omitempty"`
	ConfidenceScore *int            `json:"confidenceScore,omitempty" validate:"omitempty,min=0,max=100"`
	IsReviewed      bool            `json:"isReviewed,omitempty"`
}

// Record projects the fields the tagging engine reads.
func (n *NewContent) Record() tagging.ContentRecord {
	return tagging.ContentRecord{
		Title:       n.Title,
		Type:        n.Type,
		Description: n.Description,
		Studio:      n.Studio,
		Director:    n.Director,
		Cast:        n.Cast,
		Franchises:  n.Franchises,
		Genres:      n.Genres,
		ListedIn:    n.ListedIn,
		Rating:      n.Rating,
		ReleaseYear: n.ReleaseYear,
		AddedDate:   n.AddedDate,
		ExpiryDate:  n.ExpiryDate,
	}
}

// NeedsTags reports whether the payload arrived without any tags.
func (n *NewContent) NeedsTags() bool {
	return n.Tags == nil || n.Tags.IsEmpty()
}

// ToContent builds an unsaved Content. The repository assigns the ID and
// timestamps.
func (n *NewContent) ToContent() *Content {
	c := &Content{
		ShowID:      n.ShowID,
		Title:       n.Title,
		Type:        n.Type,
		Director:    n.Director,
		Cast:        n.Cast,
		Country:     n.Country,
		ReleaseYear: n.ReleaseYear,
		Rating:      n.Rating,
		Duration:    n.Duration,
		Description: n.Description,
		ExpiryDate:  n.ExpiryDate,
		Studio:      n.Studio,
		Franchises:  n.Franchises,
		Genres:      n.Genres,
		ListedIn:    n.ListedIn,
		IsReviewed:  n.IsReviewed,
	}
	if n.AddedDate != nil {
		c.AddedDate = *n.AddedDate
	}
	if n.Tags != nil {
		c.Tags = *n.Tags
	}
	if n.ConfidenceScore != nil {
		c.ConfidenceScore = *n.ConfidenceScore
	}
	c.Normalize()
	return c
}

// ContentPatch carries a partial update. Nil fields are left unchanged.
type ContentPatch struct {
	ShowID          *string    `json:"showId,omitempty" validate:"omitempty,max=64"`
	Title           *string    `json:"title,omitempty" validate:"omitempty,notblank,max=500"`
	Type            *string    `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	Director        *string    `json:"director,omitempty" validate:"omitempty,max=500"`
	Cast            []string   `json:"cast,omitempty" validate:"omitempty,max=200,dive,max=200"`
	Country         *string    `json:"country,omitempty" validate:"omitempty,max=200"`
	ReleaseYear     *int       `json:"releaseYear,omitempty" validate:"omitempty,gt=0"`
	Rating          *string    `json:"rating,omitempty" validate:"omitempty,max=20"`
	Duration        *string    `json:"duration,omitempty" validate:"omitempty,max=50"`
	Description     *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	Studio          *string    `json:"studio,omitempty" validate:"omitempty,max=200"`
	Franchises      []string   `json:"franchises,omitempty" validate:"omitempty,max=50,dive,max=200"`
	Genres          []string   `json:"genres,omitempty" validate:"omitempty,max=50,dive,max=100"`
	ListedIn        []string   `json:"listedIn,omitempty" validate:"omitempty,max=50,dive,max=100"`
	ConfidenceScore *int       `json:"confidenceScore,omitempty" validate:"omitempty,min=0,max=100"`
	IsReviewed      *bool      `json:"isReviewed,omitempty"`
}

// Apply copies the set fields onto c.
func (p *ContentPatch) Apply(c *Content) {
	setString(&c.ShowID, p.ShowID)
	setString(&c.Title, p.Title)
	setString(&c.Type, p.Type)
	setString(&c.Director, p.Director)
	setString(&c.Country, p.Country)
	setString(&c.Rating, p.Rating)
	setString(&c.Duration, p.Duration)
	setString(&c.Description, p.Description)
	setString(&c.Studio, p.Studio)

	if p.Cast != nil {
		c.Cast = p.Cast
	}
	if p.Franchises != nil {
		c.Franchises = p.Franchises
	}
	if p.Genres != nil {
		c.Genres = p.Genres
	}
	if p.ListedIn != nil {
		c.ListedIn = p.ListedIn
	}
	if p.ReleaseYear != nil {
		c.ReleaseYear = *p.ReleaseYear
	}
	if p.ExpiryDate != nil {
		expiry := *p.ExpiryDate
		c.ExpiryDate = &expiry
	}
	if p.ConfidenceScore != nil {
		c.ConfidenceScore = *p.ConfidenceScore
	}
	if p.IsReviewed != nil {
		c.IsReviewed = *p.IsReviewed
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// TagsUpdate replaces every tag family of a catalog entry. All five
// families are required, empty arrays included.
type TagsUpdate struct {
	Availability []string `json:"availability" validate:"required,dive,max=100"`
	Brand        []string `json:"brand" validate:"required,dive,max=100"`
	Category     []string `json:"category" validate:"required,dive,max=100"`
	System       []string `json:"system" validate:"required,dive,max=100"`
	Manual       []string `json:"manual" validate:"required,dive,max=100"`
}

// TagSet converts the update into a tag set.
func (u *TagsUpdate) TagSet() tagging.TagSet {
	return tagging.TagSet{
		Availability: u.Availability,
		Brand:        u.Brand,
		Category:     u.Category,
		System:       u.System,
		Manual:       u.Manual,
	}
}
