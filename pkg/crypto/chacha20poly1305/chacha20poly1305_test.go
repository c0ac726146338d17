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

package chacha20poly1305

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-shardlock/pkg/types"
)

func newTestAEAD(t *testing.T) (AEAD, *types.KeyMaterial) {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	aead, err := New(key)
	require.NoError(t, err)
	return aead, key
}

func TestEncryptDecrypt(t *testing.T) {
	plaintexts := map[string][]byte{
		"empty":           {},
		"short":           []byte("attack at dawn"),
		"container magic": []byte("CCMS inside the plaintext must not confuse anything"),
		"binary":          {0x00, 0xFF, 0x00, 0xFF, 0x7F},
	}

	for name, plaintext := range plaintexts {
		t.Run(name, func(t *testing.T) {
			aead, key := newTestAEAD(t)
			defer key.Destroy()

			nonce, err := types.NewRandomNonce()
			require.NoError(t, err)

			ciphertext, err := aead.Encrypt(nonce, plaintext)
			require.NoError(t, err)
			assert.Len(t, ciphertext, len(plaintext)+aead.Overhead())

			recovered, err := aead.Decrypt(nonce, ciphertext)
			require.NoError(t, err)
			assert.Equal(t, plaintext, recovered)
		})
	}
}

func TestDecryptAuthenticationFailure(t *testing.T) {
	aead, key := newTestAEAD(t)
	defer key.Destroy()

	nonce, err := types.NewRandomNonce()
	require.NoError(t, err)

	ciphertext, err := aead.Encrypt(nonce, []byte("secret payload"))
	require.NoError(t, err)

	t.Run("flipped ciphertext bit", func(t *testing.T) {
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[0] ^= 0x01

		_, err := aead.Decrypt(nonce, tampered)
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("flipped tag bit", func(t *testing.T) {
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[len(tampered)-1] ^= 0x80

		_, err := aead.Decrypt(nonce, tampered)
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("wrong nonce", func(t *testing.T) {
		other, err := types.NewRandomNonce()
		require.NoError(t, err)

		_, err = aead.Decrypt(other, ciphertext)
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("wrong key", func(t *testing.T) {
		otherAEAD, otherKey := newTestAEAD(t)
		defer otherKey.Destroy()

		_, err := otherAEAD.Decrypt(nonce, ciphertext)
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		_, err := aead.Decrypt(nonce, ciphertext[:aead.Overhead()-1])
		assert.ErrorIs(t, err, ErrAuthentication)
	})
}

func TestNewRejectsDestroyedKey(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	key.Destroy()

	_, err = New(key)
	assert.Error(t, err)
}

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	require.NoError(t, err)
	defer a.Destroy()
	b, err := GenerateKey()
	require.NoError(t, err)
	defer b.Destroy()

	assert.False(t, a.Equal(b))
}

func TestSizes(t *testing.T) {
	aead, key := newTestAEAD(t)
	defer key.Destroy()

	assert.Equal(t, types.NonceSize, aead.NonceSize())
	assert.Equal(t, 16, aead.Overhead())
}
