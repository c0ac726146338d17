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

package reconcile

import "errors"

var (
	// ErrNoShares is returned when the scan completes without accepting a
	// single share for the target file.
	ErrNoShares = errors.New("reconcile: zero usable shares located")

	// ErrQuorumNotReached is returned when the scan completes with fewer
	// accepted shares than the effective threshold.
	ErrQuorumNotReached = errors.New("reconcile: accepted shares do not meet the reconstruction threshold")

	// ErrStrictVerification is returned when strict mode is enabled and a
	// share or file fails a signing check.
	ErrStrictVerification = errors.New("reconcile: will not decrypt using tampered data in strict mode")

	// ErrAborted is returned when the continuation policy declines to
	// proceed past a surfaced mismatch.
	ErrAborted = errors.New("reconcile: aborted by operator")
)
