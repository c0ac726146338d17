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

package signature

import "errors"

var (
	// ErrInvalidPublicKey indicates bytes that do not decode to a valid
	// ed25519 curve point.
	ErrInvalidPublicKey = errors.New("signature: invalid ed25519 public key")

	// ErrInvalidSignature indicates bytes that do not decode to a valid
	// ed25519 signature (R not a curve point or S not a canonical scalar).
	ErrInvalidSignature = errors.New("signature: invalid ed25519 signature")

	// ErrVerificationFailed indicates a well-formed signature that does not
	// verify against the message and public key.
	ErrVerificationFailed = errors.New("signature: verification failed")

	// ErrIdentityDestroyed indicates an attempt to sign with an identity
	// whose private key has already been wiped.
	ErrIdentityDestroyed = errors.New("signature: identity destroyed")
)
