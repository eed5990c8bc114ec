// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package tagging

// Brand names in emission order.
const (
	BrandDisney             = "Disney"
	BrandMarvel             = "Marvel"
	BrandStarWars           = "Star Wars"
	BrandPixar              = "Pixar"
	BrandNationalGeographic = "National Geographic"
)

var brandRules = []rule{
	{label: BrandDisney, triggers: []string{"Disney", "Walt Disney", "Disney Animation", "Disney Classics"}},
	{label: BrandMarvel, triggers: []string{"Marvel", "MCU", "Avengers", "Marvel Studios"}},
	{label: BrandStarWars, triggers: []string{"Star Wars", "Mandalorian", "Jedi", "Lucasfilm"}},
	{label: BrandPixar, triggers: []string{"Pixar", "Toy Story", "Finding", "Incredibles"}},
	{label: BrandNationalGeographic, triggers: []string{"National Geographic", "Nat Geo", "Geography", "Nature", "Wildlife"}},
}

// Brands returns the brand names in emission order.
func Brands() []string {
	out := make([]string, len(brandRules))
	for i, r := range brandRules {
		out[i] = r.label
	}
	return out
}

// classifyBrand matches the brand table against every descriptive field.
func (e *Engine) classifyBrand(record *ContentRecord) []string {
	blob := textBlob(
		[]string{record.Title, record.Description, record.Studio, record.Director},
		record.Cast, record.Franchises, record.Genres, record.ListedIn,
	)
	return e.brands.Labels(blob)
}
