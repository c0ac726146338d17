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

// Package types defines the sizes and secret-holding value types shared by
// every shardlock component: the symmetric key material, the correlation
// nonce, and the fixed ed25519 dimensions embedded in container headers.
package types

const (
	// KeySize is the symmetric key length in bytes (ChaCha20-Poly1305).
	KeySize = 32

	// NonceSize is the correlation nonce length in bytes. The same value is
	// used as the AEAD nonce and as the identifier binding a file to its
	// shares.
	NonceSize = 12

	// PublicKeySize is the ed25519 public key length embedded in signed
	// containers.
	PublicKeySize = 32

	// SignatureSize is the ed25519 signature length embedded in signed
	// containers.
	SignatureSize = 64

	// MaxPlayers is the largest number of shares a key can be split into.
	MaxPlayers = 255
)
