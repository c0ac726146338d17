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

// Package shardlock orchestrates the full encrypt and decrypt pipelines:
// key generation, threshold splitting, authenticated encryption, optional
// ed25519 binding, and quorum reconstruction from a share directory.
//
// Encrypt assembles every output container in memory and returns them
// together; nothing is handed back until the whole operation has succeeded,
// so callers never persist a file whose shares were lost halfway through.
package shardlock

import (
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-shardlock/pkg/container"
	"github.com/jeremyhahn/go-shardlock/pkg/crypto/chacha20poly1305"
	"github.com/jeremyhahn/go-shardlock/pkg/keysplit"
	"github.com/jeremyhahn/go-shardlock/pkg/logging"
	"github.com/jeremyhahn/go-shardlock/pkg/reconcile"
	"github.com/jeremyhahn/go-shardlock/pkg/signature"
	"github.com/jeremyhahn/go-shardlock/pkg/storage"
	"github.com/jeremyhahn/go-shardlock/pkg/types"
)

// FileExtension is appended to encrypted file names.
const FileExtension = ".ccm"

// ShareExtension is the suffix of share container file names.
const ShareExtension = ".ccms"

// EncryptOptions configures a single encryption operation.
type EncryptOptions struct {
	// Players is the total number of shares to create.
	Players uint8

	// Threshold is the number of distinct shares required to decrypt.
	Threshold uint8

	// Sign binds the encrypted file and every share to a fresh ephemeral
	// ed25519 identity whose private half is destroyed before returning.
	Sign bool
}

// EncryptResult holds the fully assembled outputs of one encryption
// operation. Nothing has been written anywhere; persisting the containers
// is the caller's job.
type EncryptResult struct {
	// File is the complete encrypted file container.
	File []byte

	// Shares holds the complete share containers, index-aligned with
	// ShareNames.
	Shares [][]byte

	// ShareNames holds the suggested file name for each share.
	ShareNames []string

	// Nonce is the per-file nonce, shared by the file and all shares.
	Nonce types.Nonce
}

// DecryptOptions configures a single decryption operation.
type DecryptOptions struct {
	// Policy governs how the share scan resolves mismatches. Nil uses the
	// lenient non-interactive defaults.
	Policy *reconcile.Policy
}

// DecryptResult holds the recovered plaintext together with the scan
// report that produced it.
type DecryptResult struct {
	Plaintext []byte
	Report    *reconcile.Result
}

// Encrypt encrypts plaintext under a fresh random key, splits the key into
// opts.Players shares with the given threshold, and assembles the file and
// share containers. All key material and any signing identity are wiped
// before returning, on success and failure alike.
func Encrypt(plaintext []byte, opts *EncryptOptions, log *logging.Logger) (*EncryptResult, error) {
	if log == nil {
		log = logging.DefaultLogger()
	}

	cfg := &keysplit.Config{Threshold: opts.Threshold, Players: opts.Players}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key, err := chacha20poly1305.GenerateKey()
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	nonce, err := types.NewRandomNonce()
	if err != nil {
		return nil, err
	}

	var identity *signature.Identity
	if opts.Sign {
		identity, err = signature.NewIdentity()
		if err != nil {
			return nil, err
		}
		defer identity.Destroy()
	}

	log.Infof("splitting key into %d shares, any %d of which can decrypt", opts.Players, opts.Threshold)
	shares, err := keysplit.Split(key, cfg)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	ciphertext, err := aead.Encrypt(nonce, plaintext)
	if err != nil {
		return nil, err
	}

	file, err := assembleFile(opts, nonce, identity, ciphertext)
	if err != nil {
		return nil, err
	}

	res := &EncryptResult{
		File:       file,
		Shares:     make([][]byte, 0, len(shares)),
		ShareNames: make([]string, 0, len(shares)),
		Nonce:      nonce,
	}
	for i, share := range shares {
		data, err := assembleShare(opts, nonce, identity, share)
		if err != nil {
			return nil, err
		}
		res.Shares = append(res.Shares, data)
		// Share files are numbered from 1.
		res.ShareNames = append(res.ShareNames, fmt.Sprintf("%d-%s%s", i+1, nonce.Hex(), ShareExtension))
	}

	return res, nil
}

// Decrypt parses the encrypted file container, gathers a quorum of matching
// shares from the store, reconstructs the key, and returns the plaintext.
func Decrypt(fileData []byte, store storage.Backend, opts *DecryptOptions, log *logging.Logger) (*DecryptResult, error) {
	if log == nil {
		log = logging.DefaultLogger()
	}
	pol := (*reconcile.Policy)(nil)
	if opts != nil {
		pol = opts.Policy
	}
	if pol == nil {
		pol = &reconcile.Policy{}
	}

	hdr, ciphertext, err := container.DecodeFileHeader(fileData)
	if err != nil {
		if errors.Is(err, container.ErrMissingMagic) {
			return nil, fmt.Errorf("%w: %v", ErrNotAContainer, err)
		}
		return nil, err
	}
	log.Debugf("file container: version %d, threshold %d, signed %t, nonce %s",
		hdr.Version, hdr.Threshold, hdr.Signed, hdr.Nonce.Hex())

	if hdr.Signed {
		if err := verifyFile(hdr, ciphertext, pol, log); err != nil {
			return nil, err
		}
	}

	report, err := reconcile.Gather(store, hdr, pol, log)
	if err != nil {
		return nil, err
	}
	log.Infof("accepted %d of %d candidate shares; reconstruction threshold is %d",
		len(report.Shares), len(report.Shares)+len(report.Rejections), report.EffectiveThreshold)

	key, err := keysplit.Reconstruct(report.Shares, report.EffectiveThreshold)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Decrypt(hdr.Nonce, ciphertext)
	if err != nil {
		return nil, err
	}

	return &DecryptResult{Plaintext: plaintext, Report: report}, nil
}

// verifyFile checks the encrypted file's own signature. The signable
// sequence is rebuilt from the parsed header fields, so the declared
// threshold the signer committed to is what gets verified, regardless of
// any operator override applied later during reconciliation.
func verifyFile(hdr *container.FileHeader, ciphertext []byte, pol *reconcile.Policy, log *logging.Logger) error {
	signable, err := hdr.Signable(ciphertext)
	if err != nil {
		return err
	}
	if err := signature.Verify(hdr.PublicKey, signable, hdr.Signature); err != nil {
		warning := "the encrypted file failed signature verification; it may be corrupted or tampered with"
		log.Warnf("signing mismatch: %s", warning)
		if pol.Strict {
			return fmt.Errorf("%w: %s", ErrFileSignature, warning)
		}
		if pol.Continue != nil {
			if err := pol.Continue(warning); err != nil {
				return fmt.Errorf("%w: %v", reconcile.ErrAborted, err)
			}
		}
		return nil
	}
	log.Debug("encrypted file signature verified")
	return nil
}

func assembleFile(opts *EncryptOptions, nonce types.Nonce, identity *signature.Identity, ciphertext []byte) ([]byte, error) {
	hdr := &container.FileHeader{
		Version:   container.AlgoVersion,
		Threshold: opts.Threshold,
		Signed:    opts.Sign,
		Nonce:     nonce,
	}
	if identity != nil {
		hdr.PublicKey = identity.Public()
		signable, err := hdr.Signable(ciphertext)
		if err != nil {
			return nil, err
		}
		hdr.Signature, err = identity.Sign(signable)
		if err != nil {
			return nil, err
		}
	}
	encoded, err := hdr.Encode()
	if err != nil {
		return nil, err
	}
	return append(encoded, ciphertext...), nil
}

func assembleShare(opts *EncryptOptions, nonce types.Nonce, identity *signature.Identity, share []byte) ([]byte, error) {
	hdr := &container.ShareHeader{
		Version:   container.AlgoVersion,
		Threshold: opts.Threshold,
		Signed:    opts.Sign,
		Nonce:     nonce,
	}
	if identity != nil {
		hdr.PublicKey = identity.Public()
		signable, err := hdr.Signable(share)
		if err != nil {
			return nil, err
		}
		hdr.Signature, err = identity.Sign(signable)
		if err != nil {
			return nil, err
		}
	}
	encoded, err := hdr.Encode()
	if err != nil {
		return nil, err
	}
	return append(encoded, share...), nil
}
