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

package container

import "errors"

var (
	// ErrMissingMagic is returned when the bytes do not start with the
	// expected container magic.
	ErrMissingMagic = errors.New("container: magic prefix missing")

	// ErrTruncated is returned when fewer bytes are present than the header
	// length implies for the decoded signed flag.
	ErrTruncated = errors.New("container: truncated header")

	// ErrBadPublicKey is returned when the embedded public key bytes do not
	// decode to a valid ed25519 curve point.
	ErrBadPublicKey = errors.New("container: embedded public key is malformed")

	// ErrBadSignature is returned when the embedded signature bytes do not
	// decode to a valid point/scalar pair.
	ErrBadSignature = errors.New("container: embedded signature is malformed")

	// ErrInvalidHeader is returned when encoding is asked to produce a
	// header from inconsistent fields.
	ErrInvalidHeader = errors.New("container: invalid header fields")
)
