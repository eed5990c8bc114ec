// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/tagsmith/internal/models"
)

// MemoryStore keeps the catalog in process memory. Contents are lost on
// restart.
type MemoryStore struct {
	mu        sync.RWMutex
	contents  map[int]*models.Content
	batches   map[int]*models.BatchProcess
	contentID int
	batchID   int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contents: make(map[int]*models.Content),
		batches:  make(map[int]*models.BatchProcess),
	}
}

// Backend implements Store.
func (s *MemoryStore) Backend() string { return "memory" }

// GetContent implements Store.
func (s *MemoryStore) GetContent(_ context.Context, id int) (*models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contents[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c.Clone(), nil
}

// ListContent implements Store.
func (s *MemoryStore) ListContent(_ context.Context) ([]*models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Content, 0, len(s.contents))
	for _, c := range s.contents {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InsertContent implements Store.
func (s *MemoryStore) InsertContent(_ context.Context, c *models.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contentID++
	c.ID = s.contentID
	s.contents[c.ID] = c.Clone()
	return nil
}

// PutContent implements Store.
func (s *MemoryStore) PutContent(_ context.Context, c *models.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contents[c.ID]; !ok {
		return ErrNotFound
	}
	s.contents[c.ID] = c.Clone()
	return nil
}

// DeleteContent implements Store.
func (s *MemoryStore) DeleteContent(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contents[id]; !ok {
		return ErrNotFound
	}
	delete(s.contents, id)
	return nil
}

// GetBatch implements Store.
func (s *MemoryStore) GetBatch(_ context.Context, id int) (*models.BatchProcess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.batches[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

// ListBatches implements Store.
func (s *MemoryStore) ListBatches(_ context.Context) ([]*models.BatchProcess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.BatchProcess, 0, len(s.batches))
	for _, b := range s.batches {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InsertBatch implements Store.
func (s *MemoryStore) InsertBatch(_ context.Context, b *models.BatchProcess) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batchID++
	b.ID = s.batchID
	cp := *b
	s.batches[b.ID] = &cp
	return nil
}

// PutBatch implements Store.
func (s *MemoryStore) PutBatch(_ context.Context, b *models.BatchProcess) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[b.ID]; !ok {
		return ErrNotFound
	}
	cp := *b
	s.batches[b.ID] = &cp
	return nil
}

// Ping implements Store.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
