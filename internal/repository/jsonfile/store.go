// Package jsonfile persists each collection as a single JSON document on
// disk: one top-level array (or object) under a named key. Reads of a missing
// file yield an empty collection. A per-collection mutex serializes every
// read-modify-write, so concurrent requests cannot clobber each other's
// writes.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	apperrors "github.com/ksaito/salon-api/pkg/errors"
	"github.com/ksaito/salon-api/pkg/metrics"
)

// Store owns the data directory and the shared decoded-document cache.
type Store struct {
	dir     string
	cache   *gocache.Cache
	metrics *metrics.Metrics
}

// NewStore creates the data directory if needed.
func NewStore(dir string, m *metrics.Metrics) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{
		dir:     dir,
		cache:   gocache.New(gocache.NoExpiration, 0),
		metrics: m,
	}, nil
}

func (s *Store) path(file string) string {
	return filepath.Join(s.dir, file)
}

func (s *Store) observe(collection, op string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.StoreOperations.WithLabelValues(collection, op, status).Inc()
	s.metrics.StoreLatency.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
}

// collection is one JSON array document. The zero value is not usable; see
// newCollection.
type collection[T any] struct {
	store *Store
	file  string
	key   string
	mu    sync.RWMutex
}

func newCollection[T any](store *Store, file, key string) *collection[T] {
	return &collection[T]{store: store, file: file, key: key}
}

// load returns a fresh copy of the decoded collection. A missing file is an
// empty collection, never an error. The read lock covers the cold-cache
// decode-and-populate, so a reader can never install a pre-write view of the
// file into the cache after a writer has finished.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	start := time.Now()
	c.mu.RLock()
	items, err := c.loadLocked()
	c.mu.RUnlock()
	c.store.observe(c.key, "read", start, err)
	return items, err
}

// loadLocked requires at least the read lock.
func (c *collection[T]) loadLocked() ([]T, error) {
	if cached, ok := c.store.cache.Get(c.key); ok {
		return append([]T(nil), cached.([]T)...), nil
	}

	raw, err := os.ReadFile(c.store.path(c.file))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("read %s: %w", c.file, err))
	}

	doc := map[string][]T{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewStorage(fmt.Errorf("decode %s: %w", c.file, err))
	}

	items := doc[c.key]
	c.store.cache.Set(c.key, append([]T(nil), items...), gocache.NoExpiration)
	return items, nil
}

// mutate runs fn over the current items under the collection lock and writes
// the returned slice back as the whole document.
func (c *collection[T]) mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	err := c.mutateLocked(fn)
	c.store.observe(c.key, "write", start, err)
	return err
}

func (c *collection[T]) mutateLocked(fn func(items []T) ([]T, error)) error {
	items, err := c.loadLocked()
	if err != nil {
		return err
	}

	items, err = fn(items)
	if err != nil {
		return err
	}

	if err := writeDocument(c.store, c.file, map[string][]T{c.key: items}); err != nil {
		return err
	}
	c.store.cache.Set(c.key, append([]T(nil), items...), gocache.NoExpiration)
	return nil
}

// document is one JSON object document (used for settings).
type document[T any] struct {
	store *Store
	file  string
	key   string
	mu    sync.RWMutex
}

func newDocument[T any](store *Store, file, key string) *document[T] {
	return &document[T]{store: store, file: file, key: key}
}

func (d *document[T]) load(ctx context.Context) (T, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var zero T
	if cached, ok := d.store.cache.Get(d.key); ok {
		return cached.(T), true, nil
	}

	raw, err := os.ReadFile(d.store.path(d.file))
	if os.IsNotExist(err) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, apperrors.NewStorage(fmt.Errorf("read %s: %w", d.file, err))
	}

	doc := map[string]T{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return zero, false, apperrors.NewStorage(fmt.Errorf("decode %s: %w", d.file, err))
	}

	value, ok := doc[d.key]
	if !ok {
		return zero, false, nil
	}
	d.store.cache.Set(d.key, value, gocache.NoExpiration)
	return value, true, nil
}

func (d *document[T]) save(ctx context.Context, value T) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	err := writeDocument(d.store, d.file, map[string]T{d.key: value})
	if err == nil {
		d.store.cache.Set(d.key, value, gocache.NoExpiration)
	}
	d.store.observe(d.key, "write", start, err)
	return err
}

// writeDocument marshals the whole document and renames a temp file into
// place so a failed write never leaves a truncated store behind.
func writeDocument(s *Store, file string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperrors.NewStorage(fmt.Errorf("encode %s: %w", file, err))
	}

	tmp, err := os.CreateTemp(s.dir, file+".tmp-*")
	if err != nil {
		return apperrors.NewStorage(fmt.Errorf("write %s: %w", file, err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewStorage(fmt.Errorf("write %s: %w", file, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorage(fmt.Errorf("write %s: %w", file, err))
	}
	if err := os.Rename(tmpName, s.path(file)); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorage(fmt.Errorf("write %s: %w", file, err))
	}
	return nil
}
