/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package filecache provides the build-wide, single-flight file cache shared
// by every permutation's reference resolution task. It is the one mutable
// structure tasks touch concurrently besides the error list and the
// diagnostic hook (see the "Shared file cache with private cycle state"
// design note): a cache miss loads exactly once even under contention, and
// cycle-detection state never lives here — callers carry their own
// per-resolution visited set.
package filecache

import (
	"os"
	"path/filepath"
	"sync"

	deadlock "github.com/sasha-s/go-deadlock"

	"go.tokenforge.dev/tokenforge/docparse"
	"go.tokenforge.dev/tokenforge/valuetree"
)

type entry struct {
	once  sync.Once
	value valuetree.Value
	err   error
}

// Cache maps canonical absolute file path to its parsed Value, deduplicating
// concurrent first-reads of the same path.
type Cache struct {
	mu      deadlock.Mutex
	entries map[string]*entry
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Load returns the parsed document at path, reading and parsing it at most
// once regardless of how many goroutines call Load concurrently for the
// same canonical path.
func (c *Cache) Load(path string) (valuetree.Value, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return c.LoadWith(abs, func() ([]byte, error) { return os.ReadFile(abs) })
}

// LoadWith is Load generalized to an arbitrary cache key and content
// loader, single-flighted the same way. It backs non-filesystem sources
// (e.g. a CDN fetch for a package specifier) that still need to share the
// build-wide cache and its de-duplication.
func (c *Cache) LoadWith(key string, load func() ([]byte, error)) (valuetree.Value, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		data, readErr := load()
		if readErr != nil {
			e.err = readErr
			return
		}
		e.value, e.err = docparse.Parse(data)
	})

	return e.value, e.err
}

// Size returns the number of distinct paths currently cached, for tests and
// diagnostics.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
