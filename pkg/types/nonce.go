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

package types

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Nonce is the per-operation random value generated once at encrypt time.
// It serves as the AEAD nonce and as the correlation identifier that links
// an encrypted file to its shares. Immutable once generated.
type Nonce [NonceSize]byte

// NewRandomNonce generates a fresh nonce from the system CSPRNG.
func NewRandomNonce() (Nonce, error) {
	var n Nonce
	if _, err := rand.Read(n[:]); err != nil {
		return Nonce{}, fmt.Errorf("types: failed to generate nonce: %w", err)
	}
	return n, nil
}

// NonceFromBytes copies a nonce out of a decoded header field.
func NonceFromBytes(b []byte) (Nonce, error) {
	var n Nonce
	if len(b) != NonceSize {
		return Nonce{}, fmt.Errorf("types: invalid nonce size: %d bytes (must be %d bytes)", len(b), NonceSize)
	}
	copy(n[:], b)
	return n, nil
}

// Bytes returns the nonce as a byte slice.
func (n Nonce) Bytes() []byte {
	return n[:]
}

// Hex returns the lowercase hex form used in share filenames and diagnostics.
func (n Nonce) Hex() string {
	return hex.EncodeToString(n[:])
}
