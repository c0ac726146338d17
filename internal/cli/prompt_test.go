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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrompter(input string) *Prompter {
	return &Prompter{In: strings.NewReader(input), Out: &bytes.Buffer{}}
}

func TestPrompterConfirm(t *testing.T) {
	t.Run("yes", func(t *testing.T) {
		assert.NoError(t, testPrompter("y\n").Confirm("warning"))
		assert.NoError(t, testPrompter("YES\n").Confirm("warning"))
	})

	t.Run("no", func(t *testing.T) {
		assert.Error(t, testPrompter("n\n").Confirm("warning"))
		assert.Error(t, testPrompter("\n").Confirm("warning"))
	})

	t.Run("assume yes skips the prompt", func(t *testing.T) {
		p := &Prompter{In: strings.NewReader(""), Out: &bytes.Buffer{}, AssumeYes: true}
		assert.NoError(t, p.Confirm("warning"))
	})
}

func TestPrompterShareDir(t *testing.T) {
	t.Run("enter keeps the default", func(t *testing.T) {
		dir, err := testPrompter("\n").ShareDir("/tmp/shares")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/shares", dir)
	})

	t.Run("typed path overrides", func(t *testing.T) {
		dir, err := testPrompter("/mnt/usb\n").ShareDir("/tmp/shares")
		require.NoError(t, err)
		assert.Equal(t, "/mnt/usb", dir)
	})

	t.Run("assume yes skips the prompt", func(t *testing.T) {
		p := &Prompter{In: strings.NewReader(""), Out: &bytes.Buffer{}, AssumeYes: true}
		dir, err := p.ShareDir("/tmp/shares")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/shares", dir)
	})
}

func TestPrompterResolveThreshold(t *testing.T) {
	t.Run("enter keeps the current threshold", func(t *testing.T) {
		v, err := testPrompter("\n").ResolveThreshold(3, 5, "share.ccms")
		require.NoError(t, err)
		assert.Equal(t, uint8(3), v)
	})

	t.Run("explicit override", func(t *testing.T) {
		v, err := testPrompter("5\n").ResolveThreshold(3, 5, "share.ccms")
		require.NoError(t, err)
		assert.Equal(t, uint8(5), v)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := testPrompter("lots\n").ResolveThreshold(3, 5, "share.ccms")
		assert.Error(t, err)

		_, err = testPrompter("0\n").ResolveThreshold(3, 5, "share.ccms")
		assert.Error(t, err)

		_, err = testPrompter("300\n").ResolveThreshold(3, 5, "share.ccms")
		assert.Error(t, err)
	})
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "report.pdf", outputPath("report.pdf.ccm"))
	assert.Equal(t, "data.out", outputPath("data"))
}
