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

// Package reconcile gathers candidate share containers from a directory and
// reconciles them against a target encrypted file.
//
// Every candidate runs through the same state machine: read, header match,
// nonce match, threshold cross-check, signature cross-check, accept. The
// scan is exhaustive; rejecting one candidate never stops the others, and
// the operation only fails as a whole if the final pool is smaller than the
// effective threshold.
package reconcile

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-shardlock/pkg/container"
	"github.com/jeremyhahn/go-shardlock/pkg/keysplit"
	"github.com/jeremyhahn/go-shardlock/pkg/logging"
	"github.com/jeremyhahn/go-shardlock/pkg/signature"
	"github.com/jeremyhahn/go-shardlock/pkg/storage"
)

// SharePattern is the candidate filter used unless Policy.AllFiles is set.
const SharePattern = "*.ccms"

// Reason classifies why a candidate file was rejected.
type Reason string

const (
	// ReasonMalformed marks a candidate too small or structurally broken.
	ReasonMalformed Reason = "malformed"

	// ReasonNotAShare marks a candidate without the share magic.
	ReasonNotAShare Reason = "not-a-share"

	// ReasonWrongFile marks a share whose nonce belongs to a different
	// encryption run.
	ReasonWrongFile Reason = "wrong-file"

	// ReasonUnreadable marks a candidate that could not be read at all.
	ReasonUnreadable Reason = "unreadable"
)

// Rejection records one excluded candidate and why.
type Rejection struct {
	Name   string
	Reason Reason
	Err    error
}

// Result is the outcome of an exhaustive share scan.
type Result struct {
	// Shares holds the accepted share payloads, in scan order.
	Shares [][]byte

	// Accepted holds the names of the accepted candidates, parallel to
	// Shares.
	Accepted []string

	// EffectiveThreshold is the threshold reconstruction will use. It
	// starts as the file's declared threshold and changes only through the
	// policy's ThresholdResolver.
	EffectiveThreshold uint8

	// Rejections records every excluded candidate.
	Rejections []Rejection

	// Warnings records signing mismatches that were surfaced but not
	// fatal.
	Warnings []string
}

// Gather scans the store for shares belonging to the target file and
// returns the accepted pool. The returned error is fatal for the whole
// decrypt operation; individual candidate failures are recorded in the
// Result instead.
func Gather(store storage.Backend, hdr *container.FileHeader, pol *Policy, log *logging.Logger) (*Result, error) {
	if pol == nil {
		pol = &Policy{}
	}
	if log == nil {
		log = logging.DefaultLogger()
	}

	pattern := SharePattern
	if pol.AllFiles {
		pattern = ""
	}

	names, err := store.List(pattern)
	if err != nil {
		return nil, fmt.Errorf("reconcile: failed to list share directory %s: %w", store.Location(), err)
	}

	res := &Result{EffectiveThreshold: hdr.Threshold}
	for _, name := range names {
		if err := gatherOne(store, name, hdr, pol, log, res); err != nil {
			return nil, err
		}
	}

	if len(res.Shares) == 0 {
		return nil, fmt.Errorf("%w: scanned %d candidates in %s", ErrNoShares, len(names), store.Location())
	}
	if len(res.Shares) < int(res.EffectiveThreshold) {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrQuorumNotReached, len(res.Shares), res.EffectiveThreshold)
	}
	return res, nil
}

// gatherOne runs the candidate state machine for a single file. A non-nil
// return aborts the whole scan; per-candidate problems are recorded as
// rejections and return nil.
func gatherOne(store storage.Backend, name string, hdr *container.FileHeader, pol *Policy, log *logging.Logger, res *Result) error {
	data, err := store.Get(name)
	if err != nil {
		res.reject(log, name, ReasonUnreadable, err)
		return nil
	}

	shareHdr, payload, err := container.DecodeShareHeader(data)
	if err != nil {
		switch {
		case errors.Is(err, container.ErrMissingMagic):
			res.reject(log, name, ReasonNotAShare, err)
		default:
			res.reject(log, name, ReasonMalformed, err)
		}
		return nil
	}

	// A well-formed header wrapping undecodable share bytes is still a
	// malformed candidate. Catching it here keeps it out of the pool, where
	// it would poison reconstruction for an otherwise sufficient quorum.
	if err := keysplit.ValidateShare(payload); err != nil {
		res.reject(log, name, ReasonMalformed, err)
		return nil
	}

	if shareHdr.Nonce != hdr.Nonce {
		res.reject(log, name, ReasonWrongFile, fmt.Errorf("share nonce %s does not match target file nonce %s",
			shareHdr.Nonce.Hex(), hdr.Nonce.Hex()))
		return nil
	}

	if shareHdr.Threshold != res.EffectiveThreshold {
		log.Warnf("threshold mismatch from share %s: file %d, share %d", name, res.EffectiveThreshold, shareHdr.Threshold)
		effective, err := pol.resolveThreshold(res.EffectiveThreshold, shareHdr.Threshold, name)
		if err != nil {
			return fmt.Errorf("reconcile: threshold mismatch on %s: %w", name, err)
		}
		if effective != res.EffectiveThreshold {
			log.Warnf("using operator-supplied threshold of %d; reconstruction may fail", effective)
			res.EffectiveThreshold = effective
		}
	}

	if hdr.Signed || shareHdr.Signed {
		if err := crossCheckSignatures(name, hdr, shareHdr, payload, pol, log, res); err != nil {
			return err
		}
	}

	res.Shares = append(res.Shares, payload)
	res.Accepted = append(res.Accepted, name)
	log.Infof("share retrieved from %s", name)
	return nil
}

// crossCheckSignatures applies the signing policy for one candidate. The
// lenient default admits the share after surfacing the mismatch; strict
// mode turns any mismatch into a fatal error.
func crossCheckSignatures(name string, hdr *container.FileHeader, shareHdr *container.ShareHeader, payload []byte, pol *Policy, log *logging.Logger, res *Result) error {
	switch {
	case hdr.Signed && !shareHdr.Signed:
		return res.signingMismatch(pol, log,
			fmt.Sprintf("share %s is unsigned but the encrypted file is signed; its integrity cannot be verified", name))

	case !hdr.Signed && shareHdr.Signed:
		return res.signingMismatch(pol, log,
			fmt.Sprintf("share %s is signed but the encrypted file is not", name))
	}

	// Both signed: the share must verify against its own embedded key, and
	// that key must be the file's key. Either check failing is a signing
	// mismatch.
	if !bytes.Equal(shareHdr.PublicKey, hdr.PublicKey) {
		return res.signingMismatch(pol, log,
			fmt.Sprintf("share %s does not use the file's public key", name))
	}

	signable, err := shareHdr.Signable(payload)
	if err != nil {
		return fmt.Errorf("reconcile: failed to rebuild signable bytes for %s: %w", name, err)
	}
	if err := signature.Verify(shareHdr.PublicKey, signable, shareHdr.Signature); err != nil {
		return res.signingMismatch(pol, log,
			fmt.Sprintf("share %s failed signature verification; it may be corrupted or tampered with", name))
	}
	return nil
}

func (r *Result) reject(log *logging.Logger, name string, reason Reason, err error) {
	log.Warnf("skipping %s: %v", name, err)
	r.Rejections = append(r.Rejections, Rejection{Name: name, Reason: reason, Err: err})
}

// signingMismatch surfaces a mismatch and applies the strict/lenient
// policy. In strict mode it is fatal; otherwise the warning is recorded and
// the continuation policy decides whether the operation proceeds.
func (r *Result) signingMismatch(pol *Policy, log *logging.Logger, warning string) error {
	log.Warnf("signing mismatch: %s", warning)
	if pol.Strict {
		return fmt.Errorf("%w: %s", ErrStrictVerification, warning)
	}
	r.Warnings = append(r.Warnings, warning)
	if err := pol.confirmContinue(warning); err != nil {
		return fmt.Errorf("%w: %v", ErrAborted, err)
	}
	return nil
}
