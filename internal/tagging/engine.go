// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package tagging

import "time"

// Engine generates tags for content records.
type Engine struct {
	now func() time.Time

	brands            *matcher
	categories        *matcher
	exclusiveKeywords *matcher
	exclusiveStudios  *matcher
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the reference clock used for availability windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine compiles the trigger tables and returns a ready engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:               time.Now,
		brands:            newMatcher(brandRules),
		categories:        newMatcher(categoryRules),
		exclusiveKeywords: newCaseSensitiveMatcher(exclusiveKeywordRules),
		exclusiveStudios:  newCaseSensitiveMatcher(exclusiveStudioRules),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine's reference time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// GenerateTags classifies a single record. It never fails: absent fields
// yield fewer tags.
func (e *Engine) GenerateTags(record ContentRecord) Result {
	return e.generate(&record, e.now())
}

func (e *Engine) generate(record *ContentRecord, now time.Time) Result {
	tags := NewTagSet()
	tags.Availability = e.classifyAvailability(record, now)
	tags.Brand = e.classifyBrand(record)
	tags.Category = e.classifyCategory(record)

	return Result{
		Tags:            tags,
		ConfidenceScore: ConfidenceScore(record, tags),
	}
}
