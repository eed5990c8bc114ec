// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package tagging

import (
	"reflect"
	"testing"
)

func TestClassifyBrand(t *testing.T) {
	t.Parallel()

	e := NewEngine()

	tests := []struct {
		name   string
		record ContentRecord
		want   []string
	}{
		{
			name:   "no triggers",
			record: ContentRecord{Title: "Plain Title"},
			want:   []string{},
		},
		{
			name:   "title trigger",
			record: ContentRecord{Title: "Toy Story 4"},
			want:   []string{BrandPixar},
		},
		{
			name:   "studio and title",
			record: ContentRecord{Title: "The Mandalorian", Studio: "Lucasfilm"},
			want:   []string{BrandStarWars},
		},
		{
			name:   "case insensitive",
			record: ContentRecord{Title: "AVENGERS: ENDGAME"},
			want:   []string{BrandMarvel},
		},
		{
			name:   "cast entry",
			record: ContentRecord{Title: "Tribute", Cast: []string{"Walt Disney"}},
			want:   []string{BrandDisney},
		},
		{
			name:   "director field",
			record: ContentRecord{Title: "Untitled", Director: "Jedi Master"},
			want:   []string{BrandStarWars},
		},
		{
			name:   "listed in",
			record: ContentRecord{Title: "Oceans", ListedIn: []string{"Wildlife"}},
			want:   []string{BrandNationalGeographic},
		},
		{
			name:   "independent brands in table order",
			record: ContentRecord{Title: "Crossover", Description: "Pixar meets Marvel"},
			want:   []string{BrandMarvel, BrandPixar},
		},
		{
			name: "every brand",
			record: ContentRecord{
				Title:      "Everything",
				Franchises: []string{"Star Wars", "Incredibles", "Nat Geo", "MCU"},
				Studio:     "Walt Disney Pictures",
			},
			want: []string{BrandDisney, BrandMarvel, BrandStarWars, BrandPixar, BrandNationalGeographic},
		},
		{
			name:   "emitted once per brand",
			record: ContentRecord{Title: "Marvel", Description: "Marvel Studios MCU Avengers"},
			want:   []string{BrandMarvel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := e.classifyBrand(&tt.record)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("classifyBrand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBrands(t *testing.T) {
	t.Parallel()

	want := []string{BrandDisney, BrandMarvel, BrandStarWars, BrandPixar, BrandNationalGeographic}
	if got := Brands(); !reflect.DeepEqual(got, want) {
		t.Errorf("Brands() = %v, want %v", got, want)
	}
}
