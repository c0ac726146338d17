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

// Package signature binds containers to detached ed25519 signatures.
//
// A signing identity is generated once per encryption operation. The public
// half is embedded in every signed container; the private half is wiped as
// soon as signing is done, so holders of the outputs can verify but never
// re-sign. Parsing helpers perform full point and scalar validation so that
// garbage embedded in a header is rejected as malformed rather than merely
// failing verification later.
package signature

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/jeremyhahn/go-shardlock/pkg/types"
)

// Identity is an ephemeral ed25519 keypair scoped to a single encryption
// operation.
type Identity struct {
	pub       ed25519.PublicKey
	priv      ed25519.PrivateKey
	destroyed bool
}

// NewIdentity generates a fresh keypair from the system CSPRNG.
func NewIdentity() (*Identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("signature: failed to generate keypair: %w", err)
	}
	return &Identity{pub: pub, priv: priv}, nil
}

// Public returns the 32-byte public key for embedding in container headers.
func (i *Identity) Public() []byte {
	return []byte(i.pub)
}

// Sign produces a detached signature over the message.
func (i *Identity) Sign(message []byte) ([]byte, error) {
	if i.destroyed {
		return nil, ErrIdentityDestroyed
	}
	return ed25519.Sign(i.priv, message), nil
}

// Destroy wipes the private key. The identity can still expose its public
// key but can no longer sign. Safe to call more than once.
func (i *Identity) Destroy() {
	if i == nil || i.destroyed {
		return
	}
	for j := range i.priv {
		i.priv[j] = 0
	}
	i.priv = nil
	i.destroyed = true
}

// ParsePublicKey validates that the bytes decode to a canonical point on the
// ed25519 curve and returns them as a usable public key. Wrong length or an
// off-curve encoding both return ErrInvalidPublicKey.
func ParsePublicKey(b []byte) (ed25519.PublicKey, error) {
	if len(b) != types.PublicKeySize {
		return nil, fmt.Errorf("%w: %d bytes (must be %d)", ErrInvalidPublicKey, len(b), types.PublicKeySize)
	}
	if _, err := new(edwards25519.Point).SetBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	pub := make(ed25519.PublicKey, types.PublicKeySize)
	copy(pub, b)
	return pub, nil
}

// ParseSignature validates the structure of a detached signature: R must be
// a canonical curve point and S a canonical scalar. Returns a copy of the
// signature bytes on success.
func ParseSignature(b []byte) ([]byte, error) {
	if len(b) != types.SignatureSize {
		return nil, fmt.Errorf("%w: %d bytes (must be %d)", ErrInvalidSignature, len(b), types.SignatureSize)
	}
	if _, err := new(edwards25519.Point).SetBytes(b[:32]); err != nil {
		return nil, fmt.Errorf("%w: R component: %v", ErrInvalidSignature, err)
	}
	if _, err := edwards25519.NewScalar().SetCanonicalBytes(b[32:]); err != nil {
		return nil, fmt.Errorf("%w: S component: %v", ErrInvalidSignature, err)
	}
	sig := make([]byte, types.SignatureSize)
	copy(sig, b)
	return sig, nil
}

// Verify checks a detached signature over the reconstructed signable byte
// sequence. Any failure collapses to ErrVerificationFailed.
func Verify(pub ed25519.PublicKey, message, sig []byte) error {
	if len(pub) != types.PublicKeySize || len(sig) != types.SignatureSize {
		return ErrVerificationFailed
	}
	if !ed25519.Verify(pub, message, sig) {
		return ErrVerificationFailed
	}
	return nil
}
