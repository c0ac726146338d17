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

// Package storage abstracts the flat directory that holds share containers
// and encrypted outputs. The reconciliation protocol and the orchestrator
// only ever see this interface, which keeps them testable against the
// in-memory implementation.
package storage

// Backend is a flat named-blob store. Names are plain file names without
// path separators; they are used to label diagnostics, never parsed for
// meaning.
type Backend interface {
	// Get reads the full contents of a named entry.
	// Returns ErrNotFound if the entry does not exist.
	Get(name string) ([]byte, error)

	// Put writes an entry, overwriting any existing one.
	Put(name string, data []byte) error

	// List returns the entry names matching the glob pattern, sorted.
	// An empty pattern matches everything.
	List(pattern string) ([]string, error)

	// Exists checks whether a named entry exists.
	Exists(name string) (bool, error)

	// Location describes the backing store for diagnostics.
	Location() string
}
