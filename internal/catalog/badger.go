// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"

	"github.com/tomtom215/tagsmith/internal/models"
)

// Key prefixes for BadgerDB storage. IDs are zero-padded so that prefix
// iteration returns records in ID order.
const (
	contentKeyPrefix = "content:"
	batchKeyPrefix   = "batch:"

	contentSeqKey = "seq:content"
	batchSeqKey   = "seq:batch"

	seqBandwidth = 100
)

// BadgerConfig configures the persistent store.
type BadgerConfig struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in RAM (tests, demos).
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// Compression enables Snappy block compression.
	Compression bool
}

// BadgerStore implements Store on BadgerDB with JSON-encoded values.
type BadgerStore struct {
	db         *badger.DB
	contentSeq *badger.Sequence
	batchSeq   *badger.Sequence
}

// OpenBadgerStore opens (or creates) a BadgerDB catalog.
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("badger path is required")
		}
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}
	if cfg.Compression {
		opts.Compression = options.Snappy
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	contentSeq, err := db.GetSequence([]byte(contentSeqKey), seqBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("content sequence: %w", err)
	}
	batchSeq, err := db.GetSequence([]byte(batchSeqKey), seqBandwidth)
	if err != nil {
		_ = contentSeq.Release()
		_ = db.Close()
		return nil, fmt.Errorf("batch sequence: %w", err)
	}

	return &BadgerStore{db: db, contentSeq: contentSeq, batchSeq: batchSeq}, nil
}

func contentKey(id int) []byte { return []byte(fmt.Sprintf("%s%010d", contentKeyPrefix, id)) }

func batchKey(id int) []byte { return []byte(fmt.Sprintf("%s%010d", batchKeyPrefix, id)) }

// Backend implements Store.
func (s *BadgerStore) Backend() string { return "badger" }

// nextID returns a 1-based ID from the sequence.
func nextID(seq *badger.Sequence) (int, error) {
	n, err := seq.Next()
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return int(n) + 1, nil
}

func (s *BadgerStore) get(key []byte, dst any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dst)
		})
	})
}

// set writes value under key. When mustExist is true the write fails with
// ErrNotFound if the key is absent.
func (s *BadgerStore) set(key []byte, value any, mustExist bool) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if mustExist {
			if _, err := txn.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return ErrNotFound
				}
				return err
			}
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	})
}

func scanPrefix[T any](db *badger.DB, prefix string) ([]*T, error) {
	out := make([]*T, 0)
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			var v T
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &v)
			})
			if err != nil {
				return err
			}
			out = append(out, &v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", prefix, err)
	}
	return out, nil
}

// GetContent implements Store.
func (s *BadgerStore) GetContent(_ context.Context, id int) (*models.Content, error) {
	var c models.Content
	if err := s.get(contentKey(id), &c); err != nil {
		return nil, err
	}
	c.Normalize()
	return &c, nil
}

// ListContent implements Store.
func (s *BadgerStore) ListContent(_ context.Context) ([]*models.Content, error) {
	items, err := scanPrefix[models.Content](s.db, contentKeyPrefix)
	if err != nil {
		return nil, err
	}
	for _, c := range items {
		c.Normalize()
	}
	return items, nil
}

// InsertContent implements Store.
func (s *BadgerStore) InsertContent(_ context.Context, c *models.Content) error {
	id, err := nextID(s.contentSeq)
	if err != nil {
		return err
	}
	c.ID = id
	return s.set(contentKey(id), c, false)
}

// PutContent implements Store.
func (s *BadgerStore) PutContent(_ context.Context, c *models.Content) error {
	return s.set(contentKey(c.ID), c, true)
}

// DeleteContent implements Store.
func (s *BadgerStore) DeleteContent(_ context.Context, id int) error {
	key := contentKey(id)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

// GetBatch implements Store.
func (s *BadgerStore) GetBatch(_ context.Context, id int) (*models.BatchProcess, error) {
	var b models.BatchProcess
	if err := s.get(batchKey(id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBatches implements Store.
func (s *BadgerStore) ListBatches(_ context.Context) ([]*models.BatchProcess, error) {
	return scanPrefix[models.BatchProcess](s.db, batchKeyPrefix)
}

// InsertBatch implements Store.
func (s *BadgerStore) InsertBatch(_ context.Context, b *models.BatchProcess) error {
	id, err := nextID(s.batchSeq)
	if err != nil {
		return err
	}
	b.ID = id
	return s.set(batchKey(id), b, false)
}

// PutBatch implements Store.
func (s *BadgerStore) PutBatch(_ context.Context, b *models.BatchProcess) error {
	return s.set(batchKey(b.ID), b, true)
}

// Ping implements Store.
func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}

// RunGC rewrites value log files until BadgerDB reports nothing left to
// reclaim. It is a no-op for in-memory stores.
func (s *BadgerStore) RunGC(ratio float64) error {
	for {
		err := s.db.RunValueLogGC(ratio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run value log GC: %w", err)
		}
	}
}

// Close releases the ID sequences and closes the database.
func (s *BadgerStore) Close() error {
	var errs []error
	if err := s.contentSeq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release content sequence: %w", err))
	}
	if err := s.batchSeq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release batch sequence: %w", err))
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close BadgerDB: %w", err))
	}
	return errors.Join(errs...)
}

var _ Store = (*BadgerStore)(nil)
