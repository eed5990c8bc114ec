// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package tagging

import (
	"strings"
	"testing"
)

func TestConfidenceScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record ContentRecord
		tags   TagSet
		want   int
	}{
		{
			name: "nothing",
			tags: NewTagSet(),
			want: 0,
		},
		{
			name: "availability only",
			tags: TagSet{Availability: []string{AvailabilityStandard}},
			want: 20,
		},
		{
			name:   "brand without studio match",
			record: ContentRecord{Studio: "Lucasfilm"},
			tags:   TagSet{Brand: []string{BrandStarWars}},
			want:   25,
		},
		{
			name:   "brand with studio match",
			record: ContentRecord{Studio: "Marvel Studios"},
			tags:   TagSet{Brand: []string{BrandMarvel}},
			want:   40,
		},
		{
			name:   "studio match is case sensitive",
			record: ContentRecord{Studio: "marvel studios"},
			tags:   TagSet{Brand: []string{BrandMarvel}},
			want:   25,
		},
		{
			name:   "one genre match",
			record: ContentRecord{Genres: []string{"comedy", "Romance"}},
			tags:   TagSet{Category: []string{"Comedy"}},
			want:   25,
		},
		{
			name:   "genre bonus is capped",
			record: ContentRecord{Genres: []string{"Action", "Comedy", "Drama", "Sci-Fi"}},
			tags:   TagSet{Category: []string{"Action", "Comedy", "Drama", "Sci-Fi"}},
			want:   35,
		},
		{
			name:   "description exactly twenty runes",
			record: ContentRecord{Description: strings.Repeat("a", 20)},
			tags:   NewTagSet(),
			want:   0,
		},
		{
			name:   "multibyte description counted in runes",
			record: ContentRecord{Description: strings.Repeat("é", 21)},
			tags:   NewTagSet(),
			want:   3,
		},
		{
			name:   "astral-plane runes count once each",
			record: ContentRecord{Description: strings.Repeat("\U0001F3AC", 11)},
			tags:   NewTagSet(),
			want:   0,
		},
		{
			name:   "franchise bonus",
			record: ContentRecord{Franchises: []string{"Frozen"}},
			tags:   NewTagSet(),
			want:   2,
		},
		{
			name: "perfect evidence is capped",
			record: ContentRecord{
				Studio:      "Pixar Animation Studios",
				Genres:      []string{"Animation", "Family", "Comedy"},
				Description: "A cowboy doll is threatened by a new arrival",
				Franchises:  []string{"Toy Story"},
			},
			tags: TagSet{
				Availability: []string{AvailabilityStandard},
				Brand:        []string{BrandPixar},
				Category:     []string{"Family", "Comedy", "Animation"},
			},
			want: MaxConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ConfidenceScore(&tt.record, tt.tags); got != tt.want {
				t.Errorf("ConfidenceScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenreCategoryMatches(t *testing.T) {
	t.Parallel()

	got := genreCategoryMatches([]string{"Action", "action", "Horror"}, []string{"Action"})
	if got != 2 {
		t.Errorf("genreCategoryMatches() = %d, want 2", got)
	}
}
