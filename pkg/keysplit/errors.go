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

package keysplit

import "errors"

var (
	// ErrInsufficientShares is returned when fewer distinct shares than the
	// threshold are available for reconstruction.
	ErrInsufficientShares = errors.New("keysplit: insufficient shares to reconstruct the key")

	// ErrCorruptShares is returned when share bytes are structurally
	// malformed and cannot participate in reconstruction.
	ErrCorruptShares = errors.New("keysplit: corrupt share data")

	// ErrSelfCheckFailed indicates the post-split consistency check could
	// not recover the original key from a threshold-sized subset of the
	// freshly produced shares. This is an unrecoverable defect in the
	// splitting pipeline; callers must abort without writing any output.
	ErrSelfCheckFailed = errors.New("keysplit: post-split self-check failed to recover the original key")
)
