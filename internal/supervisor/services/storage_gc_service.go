// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package services

import (
	"context"
	"time"

	"github.com/tomtom215/tagsmith/internal/logging"
	"github.com/tomtom215/tagsmith/internal/metrics"
)

// DefaultGCRatio is the discard ratio handed to BadgerDB value log GC.
const DefaultGCRatio = 0.5

// GarbageCollector is satisfied by *catalog.BadgerStore.
type GarbageCollector interface {
	RunGC(ratio float64) error
}

// StorageGCService reclaims BadgerDB value log space on a fixed interval.
// GC failures are logged and retried on the next tick; they never restart
// the service.
type StorageGCService struct {
	store    GarbageCollector
	interval time.Duration
	ratio    float64
}

// NewStorageGCService wraps store. A non-positive interval means 10m.
func NewStorageGCService(store GarbageCollector, interval time.Duration) *StorageGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StorageGCService{store: store, interval: interval, ratio: DefaultGCRatio}
}

// Serve implements suture.Service.
func (s *StorageGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logging.Info().Dur("interval", s.interval).Msg("Storage GC started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.collect()
		}
	}
}

func (s *StorageGCService) collect() {
	start := time.Now()
	err := s.store.RunGC(s.ratio)
	metrics.RecordCatalogOperation("gc", "badger", time.Since(start), err)
	if err != nil {
		logging.Error().Err(err).Msg("Storage GC failed")
		return
	}
	logging.Debug().Dur("duration", time.Since(start)).Msg("Storage GC complete")
}

func (s *StorageGCService) String() string {
	return "storage-gc"
}
