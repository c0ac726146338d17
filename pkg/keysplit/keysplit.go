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

// Package keysplit wraps a threshold secret-sharing primitive behind a
// narrow split/reconstruct capability interface.
//
// The finite-field arithmetic and share encoding are delegated to
// sssa-golang; this package only guarantees that split and reconstruct are
// inverses under the configured threshold and that every split is verified
// by an immediate round-trip before any share leaves this package. Share
// bytes are opaque to the rest of the system.
package keysplit

import (
	"encoding/hex"
	"fmt"

	sssa "github.com/SSSaaS/sssa-golang"
	"github.com/jeremyhahn/go-shardlock/pkg/types"
)

// Config holds the split parameters: any Threshold of the Players shares
// reconstructs the key; fewer reveal nothing.
type Config struct {
	Threshold uint8
	Players   uint8
}

// Validate reports configuration errors before any cryptographic material
// is generated.
func (c *Config) Validate() error {
	if c.Players < 1 {
		return fmt.Errorf("keysplit: number of shares cannot be zero")
	}
	if c.Threshold < 1 {
		return fmt.Errorf("keysplit: share threshold cannot be zero")
	}
	if c.Threshold > c.Players {
		return fmt.Errorf("keysplit: threshold %d exceeds the %d shares being created; the key would be unrecoverable",
			c.Threshold, c.Players)
	}
	return nil
}

// Split divides the key into cfg.Players shares and self-checks the result
// by reconstructing from exactly cfg.Threshold of them. A self-check
// mismatch returns ErrSelfCheckFailed and no shares.
func Split(key *types.KeyMaterial, cfg *Config) ([][]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// sssa-golang round-trips secrets as strings, so the raw key is hex
	// encoded to keep it 7-bit clean.
	secretHex := hex.EncodeToString(key.Bytes())

	shareStrings, err := sssa.Create(int(cfg.Threshold), int(cfg.Players), secretHex)
	if err != nil {
		return nil, fmt.Errorf("keysplit: failed to split key: %w", err)
	}

	shares := make([][]byte, len(shareStrings))
	for i, s := range shareStrings {
		shares[i] = []byte(s)
	}

	recovered, err := Reconstruct(shares[:cfg.Threshold], cfg.Threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSelfCheckFailed, err)
	}
	defer recovered.Destroy()
	if !recovered.Equal(key) {
		return nil, ErrSelfCheckFailed
	}

	return shares, nil
}

// ValidateShare checks that share bytes are structurally sound: non-empty
// and decodable by the underlying primitive. It says nothing about whether
// the share belongs to any particular split.
func ValidateShare(share []byte) error {
	if len(share) == 0 {
		return fmt.Errorf("%w: empty share", ErrCorruptShares)
	}
	if !sssa.IsValidShare(string(share)) {
		return fmt.Errorf("%w: share bytes do not decode", ErrCorruptShares)
	}
	return nil
}

// Reconstruct recovers the key from any collection of shares whose distinct
// members number at least the threshold. Duplicates are discarded and pools
// larger than the threshold are tolerated; every supplied share must be
// structurally valid.
func Reconstruct(shares [][]byte, threshold uint8) (*types.KeyMaterial, error) {
	unique := dedupe(shares)
	if len(unique) < int(threshold) {
		return nil, fmt.Errorf("%w: need %d distinct shares, got %d", ErrInsufficientShares, threshold, len(unique))
	}

	for i, s := range unique {
		if len(s) != len(unique[0]) {
			return nil, fmt.Errorf("%w: share %d is malformed", ErrCorruptShares, i)
		}
		if err := ValidateShare([]byte(s)); err != nil {
			return nil, fmt.Errorf("%w: share %d is malformed", ErrCorruptShares, i)
		}
	}

	secretHex, err := sssa.Combine(unique)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptShares, err)
	}

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return nil, fmt.Errorf("%w: recovered secret is not valid hex", ErrCorruptShares)
	}
	if len(secret) != types.KeySize {
		return nil, fmt.Errorf("%w: recovered secret is %d bytes, expected %d", ErrCorruptShares, len(secret), types.KeySize)
	}

	key, err := types.NewKeyMaterial(secret)
	if err != nil {
		return nil, err
	}
	wipe(secret)
	return key, nil
}

// dedupe drops byte-identical shares while preserving order. Interpolating
// over a duplicated point would divide by zero inside the primitive, so the
// pool must be distinct before it is handed down.
func dedupe(shares [][]byte) []string {
	seen := make(map[string]struct{}, len(shares))
	unique := make([]string, 0, len(shares))
	for _, s := range shares {
		k := string(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}
	return unique
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
