// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shardlock.
//
// go-shardlock is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package memory provides an in-memory implementation of storage.Backend,
// used by tests to exercise the reconciliation protocol and orchestrator
// without touching the filesystem.
package memory

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jeremyhahn/go-shardlock/pkg/storage"
)

// Storage is a map-backed implementation of storage.Backend.
type Storage struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New creates an empty in-memory store.
func New() *Storage {
	return &Storage{entries: make(map[string][]byte)}
}

// Get reads the full contents of a named entry.
func (s *Storage) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.entries[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put writes an entry, overwriting any existing one.
func (s *Storage) Put(name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", storage.ErrInvalidName)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.entries[name] = stored
	return nil
}

// List returns the entry names matching the glob pattern, sorted.
func (s *Storage) List(pattern string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for name := range s.entries {
		if pattern != "" {
			ok, err := filepath.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("memory storage: bad pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists checks whether a named entry exists.
func (s *Storage) Exists(name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[name]
	return ok, nil
}

// Location identifies the store in diagnostics.
func (s *Storage) Location() string {
	return "memory"
}
