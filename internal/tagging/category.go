// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package tagging

import "strings"

var categoryRules = []rule{
	{label: CategoryFamily, triggers: []string{"Family", "Kids", "Animation", "Disney Classics", "Children", "Pixar"}},
	{label: "Action", triggers: []string{"Action", "Adventure", "Superhero", "Marvel", "Star Wars", "Fighting"}},
	{label: "Documentary", triggers: []string{"Documentary", "Nature", "Wildlife", "National Geographic", "Educational"}},
	{label: "Drama", triggers: []string{"Drama", "Emotional", "Character", "Relationships"}},
	{label: "Comedy", triggers: []string{"Comedy", "Funny", "Humor", "Laugh"}},
	{label: "Sci-Fi", triggers: []string{"Sci-Fi", "Science Fiction", "Future", "Space", "Star Wars", "Marvel"}},
	{label: CategoryAnimation, triggers: []string{"Animation", "Animated", "Cartoon", "Pixar", "Disney Animation"}},
}

// Categories returns every category the engine can emit, rating categories
// first.
func Categories() []string {
	out := []string{CategoryKids, CategoryMature}
	for _, r := range categoryRules {
		out = append(out, r.label)
	}
	return out
}

// ratingCategory maps an age rating to at most one category. The checks are
// literal substring tests evaluated in order, so any rating containing "G"
// (including PG and PG-13) resolves to Kids.
func ratingCategory(rating string) (string, bool) {
	switch {
	case rating == "":
		return "", false
	case strings.Contains(rating, "G") || strings.Contains(rating, "TV-Y"):
		return CategoryKids, true
	case strings.Contains(rating, "PG"):
		return CategoryFamily, true
	case strings.Contains(rating, "R") || strings.Contains(rating, "TV-MA"):
		return CategoryMature, true
	}
	return "", false
}

// classifyCategory runs the rating pass, the keyword pass and the exact
// animation-genre pass, in that order. Duplicates between the rating and
// keyword passes are kept.
func (e *Engine) classifyCategory(record *ContentRecord) []string {
	tags := make([]string, 0, 4)

	if c, ok := ratingCategory(record.Rating); ok {
		tags = append(tags, c)
	}

	blob := textBlob([]string{record.Title, record.Description}, record.Genres, record.Franchises)
	tags = append(tags, e.categories.Labels(blob)...)

	if hasGenre(record.Genres, "animation") && !containsTag(tags, CategoryAnimation) {
		tags = append(tags, CategoryAnimation)
	}
	return tags
}

func hasGenre(genres []string, want string) bool {
	for _, g := range genres {
		if strings.EqualFold(g, want) {
			return true
		}
	}
	return false
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
