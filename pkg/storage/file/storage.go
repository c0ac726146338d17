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

// Package file provides the directory-backed implementation of
// storage.Backend used for share directories and encrypted outputs.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jeremyhahn/go-shardlock/pkg/storage"
)

const (
	defaultDirPerms  = 0700
	defaultFilePerms = 0600
)

// Storage is a flat-directory implementation of storage.Backend.
type Storage struct {
	dir string
}

// New creates a Storage rooted at dir, creating the directory with 0700
// permissions if it does not exist.
func New(dir string) (*Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("file storage: directory cannot be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("file storage: failed to resolve directory %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, defaultDirPerms); err != nil {
		return nil, fmt.Errorf("file storage: failed to create directory %q: %w", abs, err)
	}
	return &Storage{dir: abs}, nil
}

// Get reads the full contents of a named entry.
func (s *Storage) Get(name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("file storage: failed to read %q: %w", name, err)
	}
	return data, nil
}

// Put writes an entry with 0600 permissions, overwriting any existing one.
func (s *Storage) Put(name string, data []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, defaultFilePerms); err != nil {
		return fmt.Errorf("file storage: failed to write %q: %w", name, err)
	}
	return nil
}

// List returns the file names in the directory matching the glob pattern,
// sorted. Subdirectories are skipped.
func (s *Storage) List(pattern string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("file storage: failed to read directory %q: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if pattern != "" {
			ok, err := filepath.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("file storage: bad pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists checks whether a named entry exists.
func (s *Storage) Exists(name string) (bool, error) {
	path, err := s.path(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("file storage: failed to stat %q: %w", name, err)
	}
	return true, nil
}

// Location returns the absolute directory path.
func (s *Storage) Location() string {
	return s.dir
}

func (s *Storage) path(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, os.PathSeparator) || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}
