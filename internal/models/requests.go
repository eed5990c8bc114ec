// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package models

import (
	"time"

	"github.com/tomtom215/tagsmith/internal/tagging"
)

// TagRequest is the body of POST /api/v1/tag.
type TagRequest struct {
	Title       string     `json:"title" validate:"required,notblank,max=500"`
	Type        string     `json:"type" validate:"required,max=50"`
	ReleaseYear int        `json:"releaseYear" validate:"required,gt=0"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=5000"`
	Studio      string     `json:"studio,omitempty" validate:"omitempty,max=200"`
	Director    string     `json:"director,omitempty" validate:"omitempty,max=500"`
	Rating      string     `json:"rating,omitempty" validate:"omitempty,max=20"`
	Cast        []string   `json:"cast,omitempty" validate:"omitempty,max=200,dive,max=200"`
	Franchises  []string   `json:"franchises,omitempty" validate:"omitempty,max=50,dive,max=200"`
	Genres      []string   `json:"genres,omitempty" validate:"omitempty,max=50,dive,max=100"`
	ListedIn    []string   `json:"listedIn,omitempty" validate:"omitempty,max=50,dive,max=100"`
	AddedDate   *time.Time `json:"addedDate,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
}

// Record projects the request onto the engine input.
func (r *TagRequest) Record() tagging.ContentRecord {
	return tagging.ContentRecord{
		Title:       r.Title,
		Type:        r.Type,
		Description: r.Description,
		Studio:      r.Studio,
		Director:    r.Director,
		Cast:        r.Cast,
		Franchises:  r.Franchises,
		Genres:      r.Genres,
		ListedIn:    r.ListedIn,
		Rating:      r.Rating,
		ReleaseYear: r.ReleaseYear,
		AddedDate:   r.AddedDate,
		ExpiryDate:  r.ExpiryDate,
	}
}

// TagResponse is returned by POST /api/v1/tag.
type TagResponse struct {
	Tags           tagging.TagSet `json:"tags"`
	Confidence     int            `json:"confidence"`
	ProcessingTime string         `json:"processingTime"`
}

// BatchRequest is the body of POST /api/v1/batch. Items are not schema
// validated one by one: a malformed item becomes a failed result instead of
// rejecting the whole batch.
type BatchRequest struct {
	Name     string                   `json:"name" validate:"required,notblank,max=200"`
	Contents []*tagging.ContentRecord `json:"contents" validate:"required,max=10000"`
	Options  *BatchOptions            `json:"options,omitempty"`
}

// BatchItemResult reports one batch item. Tags is nil for failures.
type BatchItemResult struct {
	Title           string          `json:"title"`
	Success         bool            `json:"success"`
	ConfidenceScore int             `json:"confidenceScore"`
	Tags            *tagging.TagSet `json:"tags"`
	Error           string          `json:"error,omitempty"`
	Applied         bool            `json:"applied,omitempty"`
}

// BatchResponse is returned by POST /api/v1/batch.
type BatchResponse struct {
	BatchID int               `json:"batchId"`
	Status  BatchStatus       `json:"status"`
	Summary BatchSummary      `json:"summary"`
	Results []BatchItemResult `json:"results"`
}

// ImportItemResult reports one imported item.
type ImportItemResult struct {
	Title   string `json:"title"`
	Success bool   `json:"success"`
	ID      int    `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ImportSummary is returned by the import endpoints.
type ImportSummary struct {
	Total      int                `json:"total"`
	Successful int                `json:"successful"`
	Failed     int                `json:"failed"`
	Results    []ImportItemResult `json:"results"`
}

// NewImportSummary returns an empty summary whose results encode as [].
func NewImportSummary() *ImportSummary {
	return &ImportSummary{Results: []ImportItemResult{}}
}

// Add appends r and updates the counters.
func (s *ImportSummary) Add(r ImportItemResult) {
	s.Results = append(s.Results, r)
	s.Total++
	if r.Success {
		s.Successful++
	} else {
		s.Failed++
	}
}
