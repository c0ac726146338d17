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
	"crypto/subtle"
	"fmt"
)

// KeyMaterial holds a symmetric key for the duration of a single encrypt or
// decrypt operation. The key only ever exists in the clear inside this
// wrapper; callers must Destroy it on every exit path.
type KeyMaterial struct {
	key       []byte
	destroyed bool
}

// NewKeyMaterial wraps a copy of the provided key bytes.
// The key must be exactly KeySize bytes.
func NewKeyMaterial(key []byte) (*KeyMaterial, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("types: invalid key size: %d bytes (must be %d bytes)", len(key), KeySize)
	}
	k := &KeyMaterial{key: make([]byte, KeySize)}
	copy(k.key, key)
	return k, nil
}

// Bytes returns the raw key. The returned slice aliases the internal buffer
// and becomes unusable after Destroy; callers must not retain it.
func (k *KeyMaterial) Bytes() []byte {
	return k.key
}

// Equal compares two keys in constant time.
func (k *KeyMaterial) Equal(other *KeyMaterial) bool {
	if k == nil || other == nil {
		return false
	}
	return subtle.ConstantTimeCompare(k.key, other.key) == 1
}

// Destroyed reports whether the key material has been wiped.
func (k *KeyMaterial) Destroyed() bool {
	return k.destroyed
}

// Destroy overwrites the key bytes. Safe to call more than once.
func (k *KeyMaterial) Destroy() {
	if k == nil || k.destroyed {
		return
	}
	for i := range k.key {
		k.key[i] = 0
	}
	k.destroyed = true
}
