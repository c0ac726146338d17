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

// Package chacha20poly1305 is the authenticated encryption adapter for
// shardlock payloads.
//
// It wraps the x/crypto ChaCha20-Poly1305 implementation behind a narrow
// encrypt/decrypt capability interface keyed by a types.KeyMaterial and an
// explicit per-file nonce. Every encryption is immediately round-tripped
// through decryption before the ciphertext is released; a mismatch is an
// unrecoverable internal error, never silently written output.
package chacha20poly1305

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/jeremyhahn/go-shardlock/pkg/types"
	"golang.org/x/crypto/chacha20poly1305"
)

// AEAD provides authenticated encryption bound to a single key.
//
// Nonce discipline is the caller's responsibility: shardlock generates one
// fresh nonce per encrypted file and never reuses it. The adapter does not
// itself detect reuse.
type AEAD interface {
	// Encrypt seals plaintext under the given nonce, self-checks the result
	// by decrypting it, and returns the ciphertext with the appended
	// Poly1305 tag.
	Encrypt(nonce types.Nonce, plaintext []byte) ([]byte, error)

	// Decrypt opens ciphertext produced by Encrypt. Any failure, including
	// a tag mismatch, returns ErrAuthentication with no further detail.
	Decrypt(nonce types.Nonce, ciphertext []byte) ([]byte, error)

	// NonceSize returns the nonce size (12 bytes).
	NonceSize() int

	// Overhead returns the authentication tag overhead (16 bytes).
	Overhead() int
}

type chachaAEAD struct {
	aead cipher.AEAD
}

// New creates the AEAD adapter for the given key material.
func New(key *types.KeyMaterial) (AEAD, error) {
	if key == nil || key.Destroyed() {
		return nil, fmt.Errorf("chacha20poly1305: key material is nil or destroyed")
	}
	aead, err := chacha20poly1305.New(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("chacha20poly1305: failed to create cipher: %w", err)
	}
	return &chachaAEAD{aead: aead}, nil
}

func (c *chachaAEAD) Encrypt(nonce types.Nonce, plaintext []byte) ([]byte, error) {
	ciphertext := c.aead.Seal(nil, nonce.Bytes(), plaintext, nil)

	// Round-trip the ciphertext before it leaves this package. A corrupt
	// container must never reach storage.
	check, err := c.aead.Open(nil, nonce.Bytes(), ciphertext, nil)
	if err != nil || !bytes.Equal(check, plaintext) {
		return nil, ErrSelfCheckFailed
	}

	return ciphertext, nil
}

func (c *chachaAEAD) Decrypt(nonce types.Nonce, ciphertext []byte) ([]byte, error) {
	plaintext, err := c.aead.Open(nil, nonce.Bytes(), ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func (c *chachaAEAD) NonceSize() int {
	return c.aead.NonceSize()
}

func (c *chachaAEAD) Overhead() int {
	return c.aead.Overhead()
}

// GenerateKey generates fresh random 256-bit key material.
func GenerateKey() (*types.KeyMaterial, error) {
	raw := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("chacha20poly1305: failed to generate key: %w", err)
	}
	key, err := types.NewKeyMaterial(raw)
	if err != nil {
		return nil, err
	}
	for i := range raw {
		raw[i] = 0
	}
	return key, nil
}
