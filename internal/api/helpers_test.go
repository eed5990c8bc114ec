// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tagsmith/internal/catalog"
	"github.com/tomtom215/tagsmith/internal/config"
	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/tagging"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

//nolint:gochecknoinits // silence request logs in tests
func init() {
	logging.Init(logging.Config{Level: "disabled"})
}

// mandalorianJSON scores 78 against fixedNow.
const mandalorianJSON = `{
	"title": "The Mandalorian",
	"type": "series",
	"releaseYear": 2019,
	"studio": "Lucasfilm",
	"description": "A lone gunfighter makes his way through the outer reaches of the galaxy",
	"genres": ["Action", "Sci-Fi"],
	"addedDate": "2024-05-21T12:00:00Z"
}`

// documentaryJSON scores 45.
const documentaryJSON = `{
	"title": "Ocean Deep",
	"type": "movie",
	"releaseYear": 2015,
	"rating": "TV-MA",
	"genres": ["Documentary"],
	"description": "Short text"
}`

type publishedEvent struct {
	topic string
	data  interface{}
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: topic, data: data})
	return p.err
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.topic
	}
	return out
}

// fakeTMDB serves canned discover pages.
type fakeTMDB struct {
	mu      sync.Mutex
	records []tagging.ContentRecord
	err     error
	state   string
	pages   []int
}

func (f *fakeTMDB) DiscoverDisney(_ context.Context, page int) ([]tagging.ContentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, page)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeTMDB) CircuitState() string {
	if f.state == "" {
		return "closed"
	}
	return f.state
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Timeout: 30 * time.Second},
		API:    config.APIConfig{DefaultPageSize: 2, MaxPageSize: 50},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"http://localhost:5173"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
		Tagging: config.TaggingConfig{BatchWorkers: 2, ConfidenceThreshold: 80},
	}
}

type testEnv struct {
	catalog *catalog.Catalog
	events  *recordingPublisher
	handler *Handler
	server  http.Handler
}

// newTestEnv builds a handler over an in-memory catalog. mutate may adjust
// the dependencies before the handler is created.
func newTestEnv(t *testing.T, mutate ...func(*Deps)) *testEnv {
	t.Helper()

	clock := func() time.Time { return fixedNow }
	env := &testEnv{
		catalog: catalog.New(catalog.NewMemoryStore(), catalog.WithClock(clock)),
		events:  &recordingPublisher{},
	}
	deps := Deps{
		Catalog: env.catalog,
		Engine:  tagging.NewEngine(tagging.WithClock(clock)),
		Events:  env.events,
		Config:  testConfig(),
		Version: "test",
	}
	for _, fn := range mutate {
		fn(&deps)
	}
	env.handler = NewHandler(deps)
	env.server = NewRouter(env.handler, nil).Setup()
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Error   *APIError `json:"error"`
	Meta    *APIMeta  `json:"meta"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var env envelope[T]
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
