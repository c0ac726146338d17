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

package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-shardlock/pkg/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shares")
	s, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, s.Location())
}

func TestPutGet(t *testing.T) {
	s := newTestStorage(t)

	data := []byte("share container bytes")
	require.NoError(t, s.Put("0-abc.ccms", data))

	got, err := s.Get("0-abc.ccms")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Put("0-abc.ccms", []byte("replaced")))
		got, err := s.Get("0-abc.ccms")
		require.NoError(t, err)
		assert.Equal(t, []byte("replaced"), got)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.Get("missing.ccms")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("permissions", func(t *testing.T) {
		info, err := os.Stat(filepath.Join(s.Location(), "0-abc.ccms"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestPathTraversalRejected(t *testing.T) {
	s := newTestStorage(t)

	for _, name := range []string{"", "../escape", "a/b", "./x"} {
		_, err := s.Get(name)
		assert.ErrorIs(t, err, storage.ErrInvalidName, "name %q", name)
	}
}

func TestList(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.Put("1-aa.ccms", []byte("b")))
	require.NoError(t, s.Put("0-aa.ccms", []byte("a")))
	require.NoError(t, s.Put("notes.txt", []byte("junk")))
	require.NoError(t, os.Mkdir(filepath.Join(s.Location(), "subdir.ccms"), 0700))

	t.Run("pattern filters and sorts", func(t *testing.T) {
		names, err := s.List("*.ccms")
		require.NoError(t, err)
		assert.Equal(t, []string{"0-aa.ccms", "1-aa.ccms"}, names)
	})

	t.Run("empty pattern lists all files", func(t *testing.T) {
		names, err := s.List("")
		require.NoError(t, err)
		assert.Equal(t, []string{"0-aa.ccms", "1-aa.ccms", "notes.txt"}, names)
	})
}

func TestExists(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.Put("present.ccms", []byte("x")))

	ok, err := s.Exists("present.ccms")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists("absent.ccms")
	require.NoError(t, err)
	assert.False(t, ok)
}
