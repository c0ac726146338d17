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

package chacha20poly1305

import "errors"

var (
	// ErrAuthentication is the single error returned for any decryption
	// failure. The underlying AEAD reason is deliberately not exposed to
	// avoid leaking structural detail about why authentication failed.
	ErrAuthentication = errors.New("chacha20poly1305: authentication failed")

	// ErrSelfCheckFailed indicates freshly produced ciphertext did not
	// decrypt back to the original plaintext. This is an unrecoverable
	// defect in the encryption pipeline; callers must abort without
	// writing any output.
	ErrSelfCheckFailed = errors.New("chacha20poly1305: post-encrypt self-check failed: ciphertext does not decrypt to the original plaintext")
)
