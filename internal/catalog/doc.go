// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

/*
Package catalog stores content items and batch runs and answers the queries
the HTTP API and importers need.

Two layers:

  - Store: whole-record CRUD implemented by MemoryStore (maps behind a
    RWMutex) and BadgerStore (JSON values under content: and batch: key
    prefixes, IDs from badger sequences).
  - Catalog: query semantics (Recent, FindByTitle, Search, Filter, Stats),
    partial updates, tag review and batch bookkeeping over any Store. Every
    call is timed into the catalog_operation_* metrics.

Usage:

	store, err := catalog.OpenBadgerStore(catalog.BadgerConfig{Path: "/data/catalog"})
	if err != nil {
	    return err
	}
	cat := catalog.New(store)
	defer cat.Close()

	recent, err := cat.Recent(ctx, 5)

Stats are computed on demand from the current contents; nothing is cached
between calls.
*/
package catalog
