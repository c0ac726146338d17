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

package keysplit

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-shardlock/pkg/types"
)

func randomKey(t *testing.T) *types.KeyMaterial {
	t.Helper()
	raw := make([]byte, types.KeySize)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	key, err := types.NewKeyMaterial(raw)
	require.NoError(t, err)
	return key
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		threshold uint8
		players   uint8
		wantErr   bool
	}{
		{1, 1, false},
		{1, 3, false},
		{3, 5, false},
		{5, 5, false},
		{0, 5, true},
		{3, 0, true},
		{6, 5, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-of-%d", tt.threshold, tt.players), func(t *testing.T) {
			cfg := &Config{Threshold: tt.threshold, Players: tt.players}
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestSplitReconstruct(t *testing.T) {
	configs := []Config{
		{Threshold: 1, Players: 1},
		{Threshold: 1, Players: 3},
		{Threshold: 3, Players: 5},
		{Threshold: 5, Players: 5},
	}
	for _, cfg := range configs {
		t.Run(fmt.Sprintf("%d-of-%d", cfg.Threshold, cfg.Players), func(t *testing.T) {
			key := randomKey(t)
			shares, err := Split(key, &cfg)
			require.NoError(t, err)
			require.Len(t, shares, int(cfg.Players))

			// Every window of exactly threshold shares reconstructs.
			for start := 0; start+int(cfg.Threshold) <= len(shares); start++ {
				subset := shares[start : start+int(cfg.Threshold)]
				recovered, err := Reconstruct(subset, cfg.Threshold)
				require.NoError(t, err)
				assert.True(t, recovered.Equal(key))
				recovered.Destroy()
			}
		})
	}
}

func TestReconstructOverThreshold(t *testing.T) {
	key := randomKey(t)
	shares, err := Split(key, &Config{Threshold: 2, Players: 5})
	require.NoError(t, err)

	recovered, err := Reconstruct(shares, 2)
	require.NoError(t, err)
	defer recovered.Destroy()
	assert.True(t, recovered.Equal(key))
}

func TestReconstructBelowThreshold(t *testing.T) {
	key := randomKey(t)
	shares, err := Split(key, &Config{Threshold: 3, Players: 5})
	require.NoError(t, err)

	_, err = Reconstruct(shares[:2], 3)
	assert.ErrorIs(t, err, ErrInsufficientShares)
}

func TestReconstructDuplicates(t *testing.T) {
	key := randomKey(t)
	shares, err := Split(key, &Config{Threshold: 2, Players: 3})
	require.NoError(t, err)

	t.Run("duplicates do not count toward quorum", func(t *testing.T) {
		pool := [][]byte{shares[0], shares[0], shares[0]}
		_, err := Reconstruct(pool, 2)
		assert.ErrorIs(t, err, ErrInsufficientShares)
	})

	t.Run("duplicates alongside a quorum are harmless", func(t *testing.T) {
		pool := [][]byte{shares[0], shares[0], shares[1]}
		recovered, err := Reconstruct(pool, 2)
		require.NoError(t, err)
		defer recovered.Destroy()
		assert.True(t, recovered.Equal(key))
	})
}

func TestReconstructGarbage(t *testing.T) {
	key := randomKey(t)
	shares, err := Split(key, &Config{Threshold: 2, Players: 3})
	require.NoError(t, err)

	t.Run("non-share bytes", func(t *testing.T) {
		pool := [][]byte{shares[0], []byte("definitely not a share")}
		_, err := Reconstruct(pool, 2)
		assert.ErrorIs(t, err, ErrCorruptShares)
	})

	t.Run("empty share", func(t *testing.T) {
		pool := [][]byte{shares[0], {}}
		_, err := Reconstruct(pool, 2)
		// An empty share dedupes to a distinct entry but is malformed.
		assert.Error(t, err)
	})
}

func TestValidateShare(t *testing.T) {
	key := randomKey(t)
	shares, err := Split(key, &Config{Threshold: 2, Players: 3})
	require.NoError(t, err)

	t.Run("real shares pass", func(t *testing.T) {
		for _, s := range shares {
			assert.NoError(t, ValidateShare(s))
		}
	})

	t.Run("garbage fails", func(t *testing.T) {
		assert.ErrorIs(t, ValidateShare([]byte("not a share")), ErrCorruptShares)
	})

	t.Run("empty fails", func(t *testing.T) {
		assert.ErrorIs(t, ValidateShare(nil), ErrCorruptShares)
		assert.ErrorIs(t, ValidateShare([]byte{}), ErrCorruptShares)
	})
}

func TestSplitInvalidConfig(t *testing.T) {
	key := randomKey(t)
	_, err := Split(key, &Config{Threshold: 4, Players: 3})
	assert.Error(t, err)
}
