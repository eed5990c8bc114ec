// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/tagsmith/internal/cache"
	"github.com/tomtom215/tagsmith/internal/config"
	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/metrics"
	"github.com/tomtom215/tagsmith/internal/tagging"
)

const (
	tmdbBreakerName = "tmdb-api"

	// disneyCompanies selects Walt Disney Pictures, Pixar, Marvel Studios
	// and Lucasfilm on the discover endpoint.
	disneyCompanies = "2|3475|3|9353"

	maxErrorBody  = 512
	pageCacheSize = 100
)

var (
	// ErrMissingAPIKey is returned when the client is built without a key.
	ErrMissingAPIKey = errors.New("tmdb api key is required")

	// ErrTMDBUnavailable is returned while the circuit breaker is open.
	ErrTMDBUnavailable = errors.New("tmdb temporarily unavailable")
)

// studioByCompany maps TMDB production company IDs to studio names.
var studioByCompany = map[int]string{
	2:    "Walt Disney Pictures",
	3475: "Marvel Studios",
	3:    "Pixar",
	9353: "Lucasfilm",
}

// movieGenres is TMDB's movie genre list. Discover results only carry
// genre IDs.
var movieGenres = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// StatusError reports a non-200 response from TMDB.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb returned status %d: %s", e.Code, e.Body)
}

// clientFault reports whether the error was caused by the request rather
// than by TMDB being unhealthy.
func clientFault(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500 && se.Code != http.StatusTooManyRequests
}

type discoverResponse struct {
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Results    []tmdbMovie `json:"results"`
}

type tmdbMovie struct {
	Title               string      `json:"title"`
	ReleaseDate         string      `json:"release_date"`
	Overview            string      `json:"overview"`
	GenreIDs            []int       `json:"genre_ids"`
	Genres              []tmdbNamed `json:"genres"`
	ProductionCompanies []tmdbNamed `json:"production_companies"`
}

type tmdbNamed struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TMDBClient fetches Disney family titles from TMDB.
type TMDBClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]tagging.ContentRecord]
	pages   *cache.LRU[int, []tagging.ContentRecord]
}

// TMDBOption customizes a TMDBClient.
type TMDBOption func(*TMDBClient)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) TMDBOption {
	return func(c *TMDBClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewTMDBClient builds a client from cfg.
//
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewTMDBClient(cfg config.TMDBConfig, opts ...TMDBOption) (*TMDBClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	rps := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		rps = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	c := &TMDBClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rps, burst),
		pages:   cache.NewLRU[int, []tagging.ContentRecord](pageCacheSize, cfg.CacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}

	metrics.CircuitBreakerState.WithLabelValues(tmdbBreakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(tmdbBreakerName).Set(0)

	c.cb = gobreaker.NewCircuitBreaker[[]tagging.ContentRecord](gobreaker.Settings{
		Name:        tmdbBreakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening TMDB circuit")
				return true
			}
			return false
		},
		IsSuccessful: func(err error) bool {
			return err == nil || clientFault(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return c, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// DiscoverDisney returns one page of discover results as engine records.
// Pages below 1 are treated as page 1.
func (c *TMDBClient) DiscoverDisney(ctx context.Context, page int) ([]tagging.ContentRecord, error) {
	if page < 1 {
		page = 1
	}

	if records, ok := c.pages.Get(page); ok {
		metrics.TMDBCacheLookups.WithLabelValues("hit").Inc()
		return cloneRecords(records), nil
	}
	metrics.TMDBCacheLookups.WithLabelValues("miss").Inc()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tmdb rate limiter: %w", err)
	}

	records, err := c.cb.Execute(func() ([]tagging.ContentRecord, error) {
		return c.fetchPage(ctx, page)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(tmdbBreakerName, "rejected").Inc()
			return nil, fmt.Errorf("%w: %v", ErrTMDBUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(tmdbBreakerName, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(tmdbBreakerName).
			Set(float64(c.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(tmdbBreakerName, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(tmdbBreakerName).Set(0)
	c.pages.Add(page, records)
	return cloneRecords(records), nil
}

// CircuitState reports the breaker state: "closed", "half-open" or "open".
func (c *TMDBClient) CircuitState() string {
	return c.cb.State().String()
}

func (c *TMDBClient) discoverURL(page int) string {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("with_companies", disneyCompanies)
	params.Set("page", strconv.Itoa(page))
	return c.baseURL + "/discover/movie?" + params.Encode()
}

func (c *TMDBClient) fetchPage(ctx context.Context, page int) ([]tagging.ContentRecord, error) {
	start := time.Now()
	defer func() { metrics.TMDBRequestDuration.Observe(time.Since(start).Seconds()) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.discoverURL(page), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create tmdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The URL carries the API key; keep it out of logs and errors.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload discoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tmdb response: %w", err)
	}

	records := make([]tagging.ContentRecord, 0, len(payload.Results))
	for i := range payload.Results {
		records = append(records, payload.Results[i].record())
	}

	logging.Debug().Int("page", page).Int("results", len(records)).Msg("Fetched TMDB discover page")
	return records, nil
}

func (m *tmdbMovie) record() tagging.ContentRecord {
	return tagging.ContentRecord{
		Title:       m.Title,
		Type:        "movie",
		ReleaseYear: releaseYear(m.ReleaseDate),
		Description: m.Overview,
		Studio:      studioFor(m.ProductionCompanies),
		Genres:      m.genreNames(),
	}
}

// releaseYear returns the year of a YYYY-MM-DD date, or 0 when unknown.
func releaseYear(date string) int {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return 0
	}
	return t.Year()
}

// studioFor returns the first known Disney studio among companies, else
// the first company's name, else "Unknown".
func studioFor(companies []tmdbNamed) string {
	if len(companies) == 0 {
		return "Unknown"
	}
	for _, c := range companies {
		if name, ok := studioByCompany[c.ID]; ok {
			return name
		}
	}
	return companies[0].Name
}

func (m *tmdbMovie) genreNames() []string {
	names := make([]string, 0, max(len(m.Genres), len(m.GenreIDs)))
	if len(m.Genres) > 0 {
		for _, g := range m.Genres {
			names = append(names, g.Name)
		}
		return names
	}
	for _, id := range m.GenreIDs {
		if name, ok := movieGenres[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

func cloneRecords(in []tagging.ContentRecord) []tagging.ContentRecord {
	out := make([]tagging.ContentRecord, len(in))
	for i, r := range in {
		r.Genres = append([]string(nil), r.Genres...)
		out[i] = r
	}
	return out
}
