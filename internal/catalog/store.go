// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package catalog

import (
	"context"
	"errors"

	"github.com/tomtom215/tagsmith/internal/models"
)

// ErrNotFound is returned when a content item or batch does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract implemented by each backend. Stores deal
// only in whole records; query and update semantics live in Catalog.
// Returned records are owned by the caller.
type Store interface {
	// Backend names the implementation for metrics and health output.
	Backend() string

	GetContent(ctx context.Context, id int) (*models.Content, error)
	// ListContent returns every item ordered by ID.
	ListContent(ctx context.Context) ([]*models.Content, error)
	// InsertContent assigns the next ID to c and stores it.
	InsertContent(ctx context.Context, c *models.Content) error
	// PutContent replaces an existing item. ErrNotFound if absent.
	PutContent(ctx context.Context, c *models.Content) error
	// DeleteContent removes an item. ErrNotFound if absent.
	DeleteContent(ctx context.Context, id int) error

	GetBatch(ctx context.Context, id int) (*models.BatchProcess, error)
	ListBatches(ctx context.Context) ([]*models.BatchProcess, error)
	InsertBatch(ctx context.Context, b *models.BatchProcess) error
	PutBatch(ctx context.Context, b *models.BatchProcess) error

	Ping(ctx context.Context) error
	Close() error
}
