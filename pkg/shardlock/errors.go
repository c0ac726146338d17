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

package shardlock

import "errors"

var (
	// ErrNotAContainer is returned when the decrypt target is not an
	// encrypted file container.
	ErrNotAContainer = errors.New("shardlock: target is not an encrypted container")

	// ErrFileSignature is returned when the encrypted file's own signature
	// does not verify and policy does not allow continuing.
	ErrFileSignature = errors.New("shardlock: encrypted file failed signature verification")
)
