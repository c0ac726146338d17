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

package cli

import (
	"github.com/jeremyhahn/go-shardlock/pkg/storage"
	"github.com/jeremyhahn/go-shardlock/pkg/storage/file"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// ShareDir is the directory share containers are written to and
	// gathered from
	ShareDir string

	// Verbose enables verbose logging
	Verbose bool

	// AssumeYes answers yes to all confirmation prompts
	AssumeYes bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		ShareDir: ".",
	}
}

// CreateShareStore opens the configured share directory as a storage
// backend, creating it if necessary.
func (c *Config) CreateShareStore() (storage.Backend, error) {
	return file.New(c.ShareDir)
}
