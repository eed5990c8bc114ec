// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package api

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/tomtom215/tagsmith/internal/events"
	"github.com/tomtom215/tagsmith/internal/models"
	"github.com/tomtom215/tagsmith/internal/tagging"
)

func seedContent(t *testing.T, env *testEnv, items ...*models.Content) []*models.Content {
	t.Helper()
	out := make([]*models.Content, 0, len(items))
	for _, it := range items {
		created, err := env.catalog.Create(context.Background(), it)
		if err != nil {
			t.Fatalf("seed %q: %v", it.Title, err)
		}
		out = append(out, created)
	}
	return out
}

func TestCreateContent_AutoTags(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/content", mandalorianJSON)
	expectStatus(t, rec, http.StatusCreated)

	resp := decode[models.Content](t, rec)
	if !resp.Success {
		t.Fatal("success = false")
	}
	got := resp.Data
	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if !reflect.DeepEqual(got.Tags.Brand, []string{tagging.BrandStarWars}) {
		t.Errorf("Brand = %v, want [Star Wars]", got.Tags.Brand)
	}
	if got.ConfidenceScore != 78 {
		t.Errorf("ConfidenceScore = %d, want 78", got.ConfidenceScore)
	}
	if !got.LastUpdated.Equal(fixedNow) {
		t.Errorf("LastUpdated = %v, want %v", got.LastUpdated, fixedNow)
	}
	if topics := env.events.topics(); !reflect.DeepEqual(topics, []string{events.TopicContentTagged}) {
		t.Errorf("published %v, want [content.tagged]", topics)
	}
}

func TestCreateContent_KeepsProvidedTags(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	body := `{"title":"Bluey","type":"series","releaseYear":2018,
		"tags":{"availability":[],"brand":["Disney"],"category":["Kids"],"system":[],"manual":["curated"]},
		"confidenceScore":90}`
	rec := env.do(t, http.MethodPost, "/api/v1/content", body)
	expectStatus(t, rec, http.StatusCreated)

	got := decode[models.Content](t, rec).Data
	if !reflect.DeepEqual(got.Tags.Manual, []string{"curated"}) {
		t.Errorf("Manual = %v, want [curated]", got.Tags.Manual)
	}
	if got.ConfidenceScore != 90 {
		t.Errorf("ConfidenceScore = %d, want 90", got.ConfidenceScore)
	}
}

func TestCreateContent_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing title", `{"type":"movie","releaseYear":2000}`, http.StatusBadRequest},
		{"blank title", `{"title":"   ","type":"movie","releaseYear":2000}`, http.StatusBadRequest},
		{"zero year", `{"title":"X","type":"movie","releaseYear":0}`, http.StatusBadRequest},
		{"negative year", `{"title":"X","type":"movie","releaseYear":-5}`, http.StatusBadRequest},
		{"missing type", `{"title":"X","releaseYear":2000}`, http.StatusBadRequest},
		{"bad json", `{"title":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)

			rec := env.do(t, http.MethodPost, "/api/v1/content", tt.body)
			expectStatus(t, rec, tt.want)

			resp := decode[any](t, rec)
			if resp.Success || resp.Error == nil {
				t.Fatalf("expected error envelope, got %s", rec.Body.String())
			}
			if len(env.events.topics()) != 0 {
				t.Error("no event expected for rejected create")
			}
		})
	}
}

func TestGetContent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seedContent(t, env, &models.Content{Title: "Moana", Type: "movie", ReleaseYear: 2016})

	tests := []struct {
		name string
		path string
		want int
		code string
	}{
		{"found", "/api/v1/content/1", http.StatusOK, ""},
		{"missing", "/api/v1/content/99", http.StatusNotFound, ErrCodeNotFound},
		{"not a number", "/api/v1/content/abc", http.StatusBadRequest, ErrCodeBadRequest},
		{"zero", "/api/v1/content/0", http.StatusBadRequest, ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, "")
			expectStatus(t, rec, tt.want)

			resp := decode[models.Content](t, rec)
			if tt.code == "" {
				if resp.Data.Title != "Moana" {
					t.Errorf("Title = %q, want Moana", resp.Data.Title)
				}
				return
			}
			if resp.Error == nil || resp.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.code)
			}
		})
	}
}

func TestListContent_Pagination(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	for i := 1; i <= 5; i++ {
		seedContent(t, env, &models.Content{Title: fmt.Sprintf("Title %d", i), Type: "movie", ReleaseYear: 2000 + i})
	}

	tests := []struct {
		name      string
		query     string
		wantIDs   []int
		wantLimit int
		hasMore   bool
	}{
		{"unpaged returns all", "", []int{1, 2, 3, 4, 5}, 5, false},
		{"default page size", "?offset=0", []int{1, 2}, 2, true},
		{"explicit page", "?limit=2&offset=3", []int{4, 5}, 2, false},
		{"offset past end", "?limit=10&offset=10", []int{}, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/content"+tt.query, "")
			expectStatus(t, rec, http.StatusOK)

			resp := decode[[]models.Content](t, rec)
			ids := make([]int, 0, len(resp.Data))
			for _, c := range resp.Data {
				ids = append(ids, c.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
			p := resp.Meta.Pagination
			if p == nil {
				t.Fatal("pagination meta missing")
			}
			if p.Total != 5 || p.Limit != tt.wantLimit || p.HasMore != tt.hasMore {
				t.Errorf("pagination = %+v", *p)
			}
		})
	}
}

func TestListContent_InvalidParams(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, q := range []string{"?limit=abc", "?offset=-1", "?offset=x"} {
		rec := env.do(t, http.MethodGet, "/api/v1/content"+q, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestRecentContent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	for i := 0; i < 7; i++ {
		seedContent(t, env, &models.Content{
			Title:       fmt.Sprintf("Day %d", i),
			Type:        "movie",
			ReleaseYear: 2020,
			AddedDate:   fixedNow.AddDate(0, 0, -i),
		})
	}

	rec := env.do(t, http.MethodGet, "/api/v1/content/recent", "")
	expectStatus(t, rec, http.StatusOK)
	got := decode[[]models.Content](t, rec).Data
	if len(got) != 5 {
		t.Fatalf("len = %d, want default 5", len(got))
	}
	if got[0].Title != "Day 0" || got[4].Title != "Day 4" {
		t.Errorf("order = %q..%q, want newest first", got[0].Title, got[4].Title)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/content/recent?limit=2", "")
	if got := decode[[]models.Content](t, rec).Data; len(got) != 2 {
		t.Errorf("limit=2 returned %d items", len(got))
	}
}

func TestUpdateContent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seedContent(t, env, &models.Content{Title: "Frozen", Type: "movie", ReleaseYear: 2013, Studio: "Walt Disney Animation"})

	rec := env.do(t, http.MethodPut, "/api/v1/content/1", `{"description":"Let it go","isReviewed":true}`)
	expectStatus(t, rec, http.StatusOK)

	got := decode[models.Content](t, rec).Data
	if got.Description != "Let it go" || !got.IsReviewed {
		t.Errorf("patch not applied: %+v", got)
	}
	if got.Studio != "Walt Disney Animation" || got.Title != "Frozen" {
		t.Errorf("unset fields changed: %+v", got)
	}

	rec = env.do(t, http.MethodPut, "/api/v1/content/42", `{"description":"x"}`)
	expectStatus(t, rec, http.StatusNotFound)

	rec = env.do(t, http.MethodPut, "/api/v1/content/1", `{"releaseYear":-1}`)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestUpdateContentTags(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seedContent(t, env, &models.Content{Title: "Cars", Type: "movie", ReleaseYear: 2006})

	body := `{"availability":["Standard"],"brand":["Pixar"],"category":["Family"],"system":[],"manual":["road trip"]}`
	rec := env.do(t, http.MethodPut, "/api/v1/content/1/tags", body)
	expectStatus(t, rec, http.StatusOK)

	got := decode[models.Content](t, rec).Data
	if !got.IsReviewed {
		t.Error("IsReviewed = false, want true")
	}
	if !reflect.DeepEqual(got.Tags.Brand, []string{"Pixar"}) || !reflect.DeepEqual(got.Tags.Manual, []string{"road trip"}) {
		t.Errorf("Tags = %+v", got.Tags)
	}
	if topics := env.events.topics(); !slices.Contains(topics, events.TopicContentTagged) {
		t.Errorf("published %v, want content.tagged", topics)
	}

	// every family is required
	rec = env.do(t, http.MethodPut, "/api/v1/content/1/tags", `{"availability":[],"brand":[],"category":[]}`)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestDeleteContent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seedContent(t, env, &models.Content{Title: "Up", Type: "movie", ReleaseYear: 2009})

	rec := env.do(t, http.MethodDelete, "/api/v1/content/1", "")
	expectStatus(t, rec, http.StatusNoContent)
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}

	env.events.mu.Lock()
	last := env.events.events[len(env.events.events)-1]
	env.events.mu.Unlock()
	if last.topic != events.TopicContentDeleted || last.data != (events.DeletedPayload{ID: 1}) {
		t.Errorf("last event = %+v", last)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/content/1", "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestSearchContent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seedContent(t, env,
		&models.Content{Title: "Toy Story", Type: "movie", ReleaseYear: 1995, Tags: tagging.TagSet{Brand: []string{"Pixar"}}},
		&models.Content{Title: "Loki", Type: "series", ReleaseYear: 2021, Description: "The god of mischief"},
	)

	tests := []struct {
		name   string
		query  string
		status int
		titles []string
	}{
		{"title match", "?q=toy", http.StatusOK, []string{"Toy Story"}},
		{"tag match", "?q=pixar", http.StatusOK, []string{"Toy Story"}},
		{"description match", "?q=MISCHIEF", http.StatusOK, []string{"Loki"}},
		{"no match", "?q=zzz", http.StatusOK, []string{}},
		{"missing q", "", http.StatusBadRequest, nil},
		{"blank q", "?q=%20%20", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/search"+tt.query, "")
			expectStatus(t, rec, tt.status)
			if tt.titles == nil {
				return
			}
			got := decode[[]models.Content](t, rec).Data
			titles := make([]string, 0, len(got))
			for _, c := range got {
				titles = append(titles, c.Title)
			}
			if !reflect.DeepEqual(titles, tt.titles) {
				t.Errorf("titles = %v, want %v", titles, tt.titles)
			}
		})
	}
}

func TestFilterContent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seedContent(t, env,
		&models.Content{Title: "A", Type: "movie", ReleaseYear: 1995, ConfidenceScore: 90, IsReviewed: true,
			Tags: tagging.TagSet{Brand: []string{"Pixar"}, Category: []string{"Family"}}},
		&models.Content{Title: "B", Type: "series", ReleaseYear: 2019, ConfidenceScore: 40,
			Tags: tagging.TagSet{Brand: []string{"Star Wars"}, Availability: []string{"Exclusive"}}},
		&models.Content{Title: "C", Type: "movie", ReleaseYear: 2010, ConfidenceScore: 70, Studio: "Pixar"},
	)

	tests := []struct {
		name   string
		query  string
		titles []string
	}{
		{"no filters", "", []string{"A", "B", "C"}},
		{"type", "?type=movie", []string{"A", "C"}},
		{"brand", "?brand=Pixar", []string{"A"}},
		{"availability", "?availability=Exclusive", []string{"B"}},
		{"category", "?category=Family", []string{"A"}},
		{"studio", "?studio=Pixar", []string{"C"}},
		{"reviewed", "?isReviewed=false", []string{"B", "C"}},
		{"min confidence", "?confidenceScoreMin=70", []string{"A", "C"}},
		{"year range", "?releaseYearMin=2000&releaseYearMax=2015", []string{"C"}},
		{"exact year wins over range", "?releaseYear=1995&releaseYearMin=2000", []string{"A"}},
		{"limit offset", "?limit=1&offset=1", []string{"B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/filter"+tt.query, "")
			expectStatus(t, rec, http.StatusOK)
			got := decode[[]models.Content](t, rec).Data
			titles := make([]string, 0, len(got))
			for _, c := range got {
				titles = append(titles, c.Title)
			}
			if !reflect.DeepEqual(titles, tt.titles) {
				t.Errorf("titles = %v, want %v", titles, tt.titles)
			}
		})
	}

	for _, q := range []string{"?isReviewed=maybe", "?releaseYear=abc", "?confidenceScoreMin=x"} {
		if rec := env.do(t, http.MethodGet, "/api/v1/filter"+q, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestStats(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/stats", "")
	expectStatus(t, rec, http.StatusOK)
	empty := decode[models.Stats](t, rec).Data
	if empty.TotalContent != 0 || len(empty.BrandDistribution) != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	env.do(t, http.MethodPost, "/api/v1/content", mandalorianJSON)
	env.do(t, http.MethodPost, "/api/v1/content", documentaryJSON)

	rec = env.do(t, http.MethodGet, "/api/v1/stats", "")
	got := decode[models.Stats](t, rec).Data
	if got.TotalContent != 2 || got.TaggedContent != 2 || got.PendingReview != 2 {
		t.Errorf("counts = %+v", got)
	}
	// (78 + 45) / 2 rounds to 62
	if got.TaggingAccuracy != 62 {
		t.Errorf("TaggingAccuracy = %d, want 62", got.TaggingAccuracy)
	}
	if got.BrandDistribution[tagging.BrandStarWars] != 100 {
		t.Errorf("BrandDistribution = %v", got.BrandDistribution)
	}
	if !got.LastUpdated.Equal(fixedNow) {
		t.Errorf("LastUpdated = %v", got.LastUpdated)
	}
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.events.err = fmt.Errorf("bus closed")

	rec := env.do(t, http.MethodPost, "/api/v1/content", documentaryJSON)
	expectStatus(t, rec, http.StatusCreated)
}

func TestNilPublisherDefaultsToNop(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, func(d *Deps) { d.Events = nil })

	rec := env.do(t, http.MethodPost, "/api/v1/content", documentaryJSON)
	expectStatus(t, rec, http.StatusCreated)
	if _, ok := env.handler.events.(events.NopPublisher); !ok {
		t.Errorf("events = %T, want NopPublisher", env.handler.events)
	}
}

func TestCreateContent_StampsAddedDate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/content", documentaryJSON)
	got := decode[models.Content](t, rec).Data
	if !got.AddedDate.Equal(fixedNow) {
		t.Errorf("AddedDate = %v, want %v", got.AddedDate, fixedNow)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/content", mandalorianJSON)
	got = decode[models.Content](t, rec).Data
	want := time.Date(2024, 5, 21, 12, 0, 0, 0, time.UTC)
	if !got.AddedDate.Equal(want) {
		t.Errorf("AddedDate = %v, want %v", got.AddedDate, want)
	}
}
