// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/tagsmith/internal/models"
	"github.com/tomtom215/tagsmith/internal/tagging"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

func TestValidateStruct_TagRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     models.TagRequest
		wantField string
		wantTag   string
	}{
		{
			name:  "valid",
			input: models.TagRequest{Title: "Moana", Type: "movie", ReleaseYear: 2016},
		},
		{
			name:      "missing title",
			input:     models.TagRequest{Type: "movie", ReleaseYear: 2016},
			wantField: "title",
			wantTag:   "required",
		},
		{
			name:      "blank title",
			input:     models.TagRequest{Title: "   ", Type: "movie", ReleaseYear: 2016},
			wantField: "title",
			wantTag:   "notblank",
		},
		{
			name:      "missing type",
			input:     models.TagRequest{Title: "Moana", ReleaseYear: 2016},
			wantField: "type",
			wantTag:   "required",
		},
		{
			name:      "zero release year",
			input:     models.TagRequest{Title: "Moana", Type: "movie"},
			wantField: "releaseYear",
			wantTag:   "required",
		},
		{
			name:      "negative release year",
			input:     models.TagRequest{Title: "Moana", Type: "movie", ReleaseYear: -1},
			wantField: "releaseYear",
			wantTag:   "gt",
		},
		{
			name:      "genre too long",
			input:     models.TagRequest{Title: "Moana", Type: "movie", ReleaseYear: 2016, Genres: []string{strings.Repeat("x", 101)}},
			wantField: "genres[0]",
			wantTag:   "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			found := false
			for _, e := range err.Errors() {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
				}
			}
			if !found {
				t.Errorf("want %s/%s, got %v", tt.wantField, tt.wantTag, err)
			}
		})
	}
}

func TestValidateStruct_BatchOptions(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(&models.BatchOptions{ConfidenceThreshold: 100}); err != nil {
		t.Errorf("threshold 100 should pass: %v", err)
	}
	err := ValidateStruct(&models.BatchOptions{ConfidenceThreshold: 101})
	if err == nil {
		t.Fatal("threshold 101 should fail")
	}
	if got := err.Error(); got != "confidenceThreshold must be at most 100" {
		t.Errorf("message = %q", got)
	}
}

func TestValidateStruct_TagsUpdate(t *testing.T) {
	t.Parallel()

	full := models.TagsUpdate{
		Availability: []string{}, Brand: []string{}, Category: []string{},
		System: []string{}, Manual: []string{},
	}
	if err := ValidateStruct(&full); err != nil {
		t.Errorf("empty arrays should pass: %v", err)
	}

	missing := models.TagsUpdate{Availability: []string{}}
	err := ValidateStruct(&missing)
	if err == nil {
		t.Fatal("missing families should fail")
	}
	if len(err.Errors()) != 4 {
		t.Errorf("errors = %d, want 4", len(err.Errors()))
	}
}

func TestValidateStruct_BatchRequest(t *testing.T) {
	t.Parallel()

	req := models.BatchRequest{
		Name:     "nightly",
		Contents: []*tagging.ContentRecord{{Title: "Moana"}, nil},
	}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("items are not validated individually: %v", err)
	}

	req.Name = ""
	if err := ValidateStruct(&req); err == nil {
		t.Error("missing name should fail")
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&models.TagRequest{Type: "movie", ReleaseYear: 2016})
	if single == nil {
		t.Fatal("expected error")
	}
	apiErr := single.ToAPIError()
	if apiErr.Code != "VALIDATION_FAILED" || apiErr.Message != "title is required" {
		t.Errorf("single = %+v", apiErr)
	}
	if apiErr.Details["field"] != "title" {
		t.Errorf("details = %v", apiErr.Details)
	}

	multi := ValidateStruct(&models.TagRequest{})
	if multi == nil {
		t.Fatal("expected error")
	}
	apiErr = multi.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Errorf("fields = %v", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "releaseYear: releaseYear is required") {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	t.Parallel()

	var ve RequestValidationError
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if ve.ToAPIError().Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", ve.ToAPIError())
	}
}
