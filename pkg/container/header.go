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

// Package container implements the fixed-layout binary headers for encrypted
// file containers and share containers.
//
// File container:  magic "CCM" | version | threshold | signed | nonce(12)
// Share container: magic "CCMS" | version | threshold | signed | nonce(12) | padding
//
// When the signed flag is nonzero, a 32-byte ed25519 public key and a 64-byte
// signature follow the base header, before the payload. Header length is
// always derived from the signed flag; it is never assumed constant.
package container

import (
	"bytes"
	"fmt"

	"github.com/jeremyhahn/go-shardlock/pkg/signature"
	"github.com/jeremyhahn/go-shardlock/pkg/types"
)

// Magic prefixes. The share magic extends the file magic by one byte so the
// two container kinds can never be confused for one another.
var (
	FileMagic  = []byte{'C', 'C', 'M'}
	ShareMagic = []byte{'C', 'C', 'M', 'S'}
)

const (
	// AlgoVersion is the current container algorithm version.
	AlgoVersion byte = 1

	// FileHeaderSize is the unsigned file header length: magic(3), version,
	// threshold, signed flag, nonce.
	FileHeaderSize = 3 + 1 + 1 + 1 + types.NonceSize // 18

	// ShareHeaderSize is the unsigned share header length: magic(4), version,
	// threshold, signed flag, nonce, one reserved padding byte.
	ShareHeaderSize = 4 + 1 + 1 + 1 + types.NonceSize + 1 // 20

	signedExtra = types.PublicKeySize + types.SignatureSize

	// SignedFileHeaderSize is the file header length when the signed flag is set.
	SignedFileHeaderSize = FileHeaderSize + signedExtra // 114

	// SignedShareHeaderSize is the share header length when the signed flag is set.
	SignedShareHeaderSize = ShareHeaderSize + signedExtra // 116
)

// FileHeader is the decoded header of an encrypted file container.
type FileHeader struct {
	Version   byte
	Threshold byte
	Signed    bool
	Nonce     types.Nonce

	// PublicKey and Signature are present only when Signed is true.
	PublicKey []byte
	Signature []byte
}

// ShareHeader is the decoded header of a share container. Threshold here is
// the share's recorded cross-check value; reconstruction is governed by the
// file's declared threshold, not this field.
type ShareHeader struct {
	Version   byte
	Threshold byte
	Signed    bool
	Nonce     types.Nonce

	PublicKey []byte
	Signature []byte
}

// Len returns the total header length implied by the signed flag.
func (h *FileHeader) Len() int {
	if h.Signed {
		return SignedFileHeaderSize
	}
	return FileHeaderSize
}

// Len returns the total header length implied by the signed flag.
func (h *ShareHeader) Len() int {
	if h.Signed {
		return SignedShareHeaderSize
	}
	return ShareHeaderSize
}

// base encodes the file header fields through the nonce, without the
// optional public key and signature.
func (h *FileHeader) base() []byte {
	out := make([]byte, 0, FileHeaderSize)
	out = append(out, FileMagic...)
	out = append(out, h.Version, h.Threshold, signedByte(h.Signed))
	out = append(out, h.Nonce.Bytes()...)
	return out
}

// base encodes the share header fields through the trailing padding byte,
// without the optional public key and signature.
func (h *ShareHeader) base() []byte {
	out := make([]byte, 0, ShareHeaderSize)
	out = append(out, ShareMagic...)
	out = append(out, h.Version, h.Threshold, signedByte(h.Signed))
	out = append(out, h.Nonce.Bytes()...)
	out = append(out, 0) // reserved
	return out
}

// Encode serializes the full header. A signed header requires both the
// public key and signature fields to be populated.
func (h *FileHeader) Encode() ([]byte, error) {
	tail, err := signedTail(h.Signed, h.PublicKey, h.Signature)
	if err != nil {
		return nil, err
	}
	return append(h.base(), tail...), nil
}

// Encode serializes the full header. A signed header requires both the
// public key and signature fields to be populated.
func (h *ShareHeader) Encode() ([]byte, error) {
	tail, err := signedTail(h.Signed, h.PublicKey, h.Signature)
	if err != nil {
		return nil, err
	}
	return append(h.base(), tail...), nil
}

// Signable reconstructs the exact byte sequence covered by the file
// signature: the base header, the embedded public key, then the ciphertext.
// It is built from the parsed fields so trailing garbage in the raw file can
// never be smuggled into the signed region.
func (h *FileHeader) Signable(ciphertext []byte) ([]byte, error) {
	if !h.Signed || len(h.PublicKey) != types.PublicKeySize {
		return nil, fmt.Errorf("%w: signable sequence requires a signed header with a public key", ErrInvalidHeader)
	}
	out := h.base()
	out = append(out, h.PublicKey...)
	out = append(out, ciphertext...)
	return out, nil
}

// Signable reconstructs the exact byte sequence covered by the share
// signature: the base header (including the padding byte), the embedded
// public key, then the share payload.
func (h *ShareHeader) Signable(shareBytes []byte) ([]byte, error) {
	if !h.Signed || len(h.PublicKey) != types.PublicKeySize {
		return nil, fmt.Errorf("%w: signable sequence requires a signed header with a public key", ErrInvalidHeader)
	}
	out := h.base()
	out = append(out, h.PublicKey...)
	out = append(out, shareBytes...)
	return out, nil
}

// DecodeFileHeader parses an encrypted file container and returns its header
// and the ciphertext payload.
func DecodeFileHeader(data []byte) (*FileHeader, []byte, error) {
	fields, payload, err := decode(data, FileMagic, FileHeaderSize)
	if err != nil {
		return nil, nil, err
	}
	h := &FileHeader{
		Version:   fields.version,
		Threshold: fields.threshold,
		Signed:    fields.signed,
		Nonce:     fields.nonce,
		PublicKey: fields.publicKey,
		Signature: fields.signature,
	}
	return h, payload, nil
}

// DecodeShareHeader parses a share container and returns its header and the
// opaque share payload.
func DecodeShareHeader(data []byte) (*ShareHeader, []byte, error) {
	fields, payload, err := decode(data, ShareMagic, ShareHeaderSize)
	if err != nil {
		return nil, nil, err
	}
	h := &ShareHeader{
		Version:   fields.version,
		Threshold: fields.threshold,
		Signed:    fields.signed,
		Nonce:     fields.nonce,
		PublicKey: fields.publicKey,
		Signature: fields.signature,
	}
	return h, payload, nil
}

type headerFields struct {
	version   byte
	threshold byte
	signed    bool
	nonce     types.Nonce
	publicKey []byte
	signature []byte
}

// decode parses the common header layout. baseSize includes the share
// layout's reserved padding byte, whose value is ignored on decode.
func decode(data, magic []byte, baseSize int) (*headerFields, []byte, error) {
	if len(data) < baseSize {
		return nil, nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncated, len(data), baseSize)
	}
	if !bytes.Equal(data[:len(magic)], magic) {
		return nil, nil, ErrMissingMagic
	}

	f := &headerFields{
		version:   data[len(magic)],
		threshold: data[len(magic)+1],
		signed:    data[len(magic)+2] != 0,
	}
	nonce, err := types.NonceFromBytes(data[len(magic)+3 : len(magic)+3+types.NonceSize])
	if err != nil {
		return nil, nil, err
	}
	f.nonce = nonce

	headerLen := baseSize
	if f.signed {
		headerLen = baseSize + signedExtra
		if len(data) < headerLen {
			return nil, nil, fmt.Errorf("%w: %d bytes, signed header needs %d", ErrTruncated, len(data), headerLen)
		}

		rawKey := data[baseSize : baseSize+types.PublicKeySize]
		pub, err := signature.ParsePublicKey(rawKey)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrBadPublicKey, err)
		}
		f.publicKey = pub

		rawSig := data[baseSize+types.PublicKeySize : headerLen]
		sig, err := signature.ParseSignature(rawSig)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
		}
		f.signature = sig
	}

	payload := make([]byte, len(data)-headerLen)
	copy(payload, data[headerLen:])
	return f, payload, nil
}

func signedByte(signed bool) byte {
	if signed {
		return 1
	}
	return 0
}

// signedTail validates and returns the public key and signature bytes for a
// signed header, or nil for an unsigned one.
func signedTail(signed bool, publicKey, sig []byte) ([]byte, error) {
	if !signed {
		if len(publicKey) != 0 || len(sig) != 0 {
			return nil, fmt.Errorf("%w: unsigned header cannot carry a key or signature", ErrInvalidHeader)
		}
		return nil, nil
	}
	if len(publicKey) != types.PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidHeader, types.PublicKeySize, len(publicKey))
	}
	if len(sig) != types.SignatureSize {
		return nil, fmt.Errorf("%w: signature must be %d bytes, got %d", ErrInvalidHeader, types.SignatureSize, len(sig))
	}
	tail := make([]byte, 0, signedExtra)
	tail = append(tail, publicKey...)
	tail = append(tail, sig...)
	return tail, nil
}
