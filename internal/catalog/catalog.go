// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/tagsmith/internal/metrics"
	"github.com/tomtom215/tagsmith/internal/models"
	"github.com/tomtom215/tagsmith/internal/tagging"
)

// DefaultRecentLimit is used by Recent when limit <= 0.
const DefaultRecentLimit = 5

// Catalog layers query, update and batch bookkeeping semantics over a Store.
// Read-modify-write operations are serialized by a single mutex so that the
// badger and memory backends behave identically under concurrent requests.
type Catalog struct {
	store Store
	now   func() time.Time
	mu    sync.Mutex
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock overrides the time source used for addedDate, lastUpdated and
// batch timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Catalog backed by store.
func New(store Store, opts ...Option) *Catalog {
	c := &Catalog{store: store, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backend returns the store implementation name.
func (c *Catalog) Backend() string { return c.store.Backend() }

// Ping checks the underlying store.
func (c *Catalog) Ping(ctx context.Context) error { return c.store.Ping(ctx) }

// Close closes the underlying store.
func (c *Catalog) Close() error { return c.store.Close() }

func (c *Catalog) record(op string, start time.Time, err error) {
	metrics.RecordCatalogOperation(op, c.store.Backend(), time.Since(start), err)
}

// Get returns one content item.
func (c *Catalog) Get(ctx context.Context, id int) (item *models.Content, err error) {
	defer func(start time.Time) { c.record("get", start, err) }(time.Now())
	return c.store.GetContent(ctx, id)
}

// List returns every content item ordered by id.
func (c *Catalog) List(ctx context.Context) (items []*models.Content, err error) {
	defer func(start time.Time) { c.record("list", start, err) }(time.Now())
	return c.store.ListContent(ctx)
}

// Recent returns up to limit items, newest addedDate first.
func (c *Catalog) Recent(ctx context.Context, limit int) (items []*models.Content, err error) {
	defer func(start time.Time) { c.record("recent", start, err) }(time.Now())

	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	all, err := c.store.ListContent(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].AddedDate.After(all[j].AddedDate)
	})
	return models.Page(all, 0, limit), nil
}

// FindByTitle returns the first item (by id) whose title equals title,
// ignoring case.
func (c *Catalog) FindByTitle(ctx context.Context, title string) (item *models.Content, err error) {
	defer func(start time.Time) { c.record("find_by_title", start, err) }(time.Now())

	all, err := c.store.ListContent(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range all {
		if strings.EqualFold(it.Title, title) {
			return it, nil
		}
	}
	return nil, ErrNotFound
}

// Search returns items whose title, description or brand, category or
// availability tags contain q, ignoring case.
func (c *Catalog) Search(ctx context.Context, q string) (items []*models.Content, err error) {
	defer func(start time.Time) { c.record("search", start, err) }(time.Now())

	all, err := c.store.ListContent(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := make([]*models.Content, 0)
	for _, it := range all {
		if matchesQuery(it, needle) {
			out = append(out, it)
		}
	}
	return out, nil
}

func matchesQuery(c *models.Content, needle string) bool {
	if strings.Contains(strings.ToLower(c.Title), needle) ||
		strings.Contains(strings.ToLower(c.Description), needle) {
		return true
	}
	for _, family := range [][]string{c.Tags.Brand, c.Tags.Category, c.Tags.Availability} {
		for _, tag := range family {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
	}
	return false
}

// Filter returns the page of items matching every set field of opts.
func (c *Catalog) Filter(ctx context.Context, opts models.FilterOptions) (items []*models.Content, err error) {
	defer func(start time.Time) { c.record("filter", start, err) }(time.Now())

	all, err := c.store.ListContent(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Content, 0, len(all))
	for _, it := range all {
		if opts.Matches(it) {
			out = append(out, it)
		}
	}
	return models.Page(out, opts.Offset, opts.Limit), nil
}

// Stats derives catalog statistics from the current contents.
func (c *Catalog) Stats(ctx context.Context) (stats *models.Stats, err error) {
	defer func(start time.Time) { c.record("stats", start, err) }(time.Now())

	all, err := c.store.ListContent(ctx)
	if err != nil {
		return nil, err
	}
	s := ComputeStats(all, c.now())
	metrics.CatalogContentItems.Set(float64(s.TotalContent))
	return &s, nil
}

// Create stores a new item. AddedDate defaults to now when zero.
func (c *Catalog) Create(ctx context.Context, item *models.Content) (created *models.Content, err error) {
	defer func(start time.Time) { c.record("create", start, err) }(time.Now())

	now := c.now()
	out := item.Clone()
	out.Normalize()
	if out.AddedDate.IsZero() {
		out.AddedDate = now
	}
	out.LastUpdated = now

	if err := c.store.InsertContent(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial patch to an existing item.
func (c *Catalog) Update(ctx context.Context, id int, patch *models.ContentPatch) (item *models.Content, err error) {
	defer func(start time.Time) { c.record("update", start, err) }(time.Now())

	return c.modify(ctx, id, func(it *models.Content) {
		patch.Apply(it)
	})
}

// UpdateTags replaces an item's tags and marks it reviewed.
func (c *Catalog) UpdateTags(ctx context.Context, id int, tags tagging.TagSet) (item *models.Content, err error) {
	defer func(start time.Time) { c.record("update_tags", start, err) }(time.Now())

	return c.modify(ctx, id, func(it *models.Content) {
		it.Tags = tags.Normalize()
		it.IsReviewed = true
	})
}

// Retag overwrites an item's tags and confidence with an engine result.
func (c *Catalog) Retag(ctx context.Context, id int, res tagging.Result) (item *models.Content, err error) {
	defer func(start time.Time) { c.record("retag", start, err) }(time.Now())

	return c.modify(ctx, id, func(it *models.Content) {
		it.ApplyTags(res)
	})
}

func (c *Catalog) modify(ctx context.Context, id int, fn func(*models.Content)) (*models.Content, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, err := c.store.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(it)
	it.ID = id
	it.LastUpdated = c.now()
	it.Normalize()

	if err := c.store.PutContent(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Delete removes an item.
func (c *Catalog) Delete(ctx context.Context, id int) (err error) {
	defer func(start time.Time) { c.record("delete", start, err) }(time.Now())
	return c.store.DeleteContent(ctx, id)
}

// CreateBatch records a new pending batch run.
func (c *Catalog) CreateBatch(ctx context.Context, name string, opts models.BatchOptions) (batch *models.BatchProcess, err error) {
	defer func(start time.Time) { c.record("create_batch", start, err) }(time.Now())

	b := &models.BatchProcess{
		Name:      name,
		Status:    models.BatchPending,
		StartedAt: c.now(),
		Options:   opts,
	}
	if err := c.store.InsertBatch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// FinishBatch stores the summary of a batch run and its terminal status.
func (c *Catalog) FinishBatch(ctx context.Context, id int, summary models.BatchSummary) (batch *models.BatchProcess, err error) {
	defer func(start time.Time) { c.record("finish_batch", start, err) }(time.Now())

	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.store.GetBatch(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Finish(summary, c.now())
	if err := c.store.PutBatch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBatch returns one batch run.
func (c *Catalog) GetBatch(ctx context.Context, id int) (batch *models.BatchProcess, err error) {
	defer func(start time.Time) { c.record("get_batch", start, err) }(time.Now())
	return c.store.GetBatch(ctx, id)
}

// ListBatches returns batch runs, newest first.
func (c *Catalog) ListBatches(ctx context.Context) (batches []*models.BatchProcess, err error) {
	defer func(start time.Time) { c.record("list_batches", start, err) }(time.Now())

	out, err := c.store.ListBatches(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}
