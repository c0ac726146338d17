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

package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-shardlock/pkg/storage"
)

func TestPutGet(t *testing.T) {
	s := New()

	require.NoError(t, s.Put("a.ccms", []byte("data")))

	got, err := s.Get("a.ccms")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	t.Run("not found", func(t *testing.T) {
		_, err := s.Get("missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.Put("", []byte("x")), storage.ErrInvalidName)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		got, err := s.Get("a.ccms")
		require.NoError(t, err)
		got[0] = 'X'

		again, err := s.Get("a.ccms")
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), again)
	})
}

func TestList(t *testing.T) {
	s := New()
	require.NoError(t, s.Put("1-x.ccms", []byte("b")))
	require.NoError(t, s.Put("0-x.ccms", []byte("a")))
	require.NoError(t, s.Put("junk.txt", []byte("j")))

	names, err := s.List("*.ccms")
	require.NoError(t, err)
	assert.Equal(t, []string{"0-x.ccms", "1-x.ccms"}, names)

	all, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestExists(t *testing.T) {
	s := New()
	require.NoError(t, s.Put("x", []byte("x")))

	ok, err := s.Exists("x")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists("y")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := string(rune('a'+n%8)) + ".ccms"
			_ = s.Put(name, []byte{byte(n)})
			_, _ = s.Get(name)
			_, _ = s.List("*.ccms")
		}(i)
	}
	wg.Wait()

	names, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, names, 8)
}
