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

package storage

import "errors"

var (
	// ErrNotFound is returned when a named entry does not exist.
	ErrNotFound = errors.New("storage: not found")

	// ErrInvalidName is returned when a name is empty or contains a path
	// separator.
	ErrInvalidName = errors.New("storage: invalid name")
)
