// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/tagsmith/internal/metrics"
)

type fakeCollector struct {
	mu     sync.Mutex
	ratios []float64
	err    error
}

func (f *fakeCollector) RunGC(ratio float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratios = append(f.ratios, ratio)
	return f.err
}

func (f *fakeCollector) calls() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.ratios...)
}

func TestStorageGCService_RunsOnInterval(t *testing.T) {
	t.Parallel()

	store := &fakeCollector{}
	svc := NewStorageGCService(store, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for len(store.calls()) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve = %v, want context.Canceled", err)
	}
	calls := store.calls()
	if len(calls) < 2 {
		t.Fatalf("RunGC calls = %d, want >= 2", len(calls))
	}
	if calls[0] != DefaultGCRatio {
		t.Errorf("ratio = %v, want %v", calls[0], DefaultGCRatio)
	}
}

func TestStorageGCService_FailureKeepsRunning(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(metrics.CatalogOperationErrors.WithLabelValues("gc", "badger"))

	store := &fakeCollector{err: errors.New("value log locked")}
	svc := NewStorageGCService(store, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for len(store.calls()) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve = %v, want context.Canceled", err)
	}
	after := testutil.ToFloat64(metrics.CatalogOperationErrors.WithLabelValues("gc", "badger"))
	if after-before < 2 {
		t.Errorf("gc error counter grew by %v, want >= 2", after-before)
	}
}

func TestNewStorageGCService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewStorageGCService(&fakeCollector{}, 0)
	if svc.interval != 10*time.Minute || svc.String() != "storage-gc" {
		t.Errorf("svc = %+v", svc)
	}
}
