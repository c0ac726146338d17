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
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-shardlock/pkg/shardlock"
)

var encryptSign bool

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt <file> <shares> <threshold>",
	Short: "Encrypt a file and split the key into threshold shares",
	Long: `Encrypt a file with a fresh ChaCha20-Poly1305 key and split the key
into <shares> share containers, any <threshold> of which can decrypt.

The encrypted container is written next to the input with a .ccm
extension. Share containers are written to the share directory, named
<index>-<nonce>.ccms. With --sign, the file and every share are bound
to an ephemeral ed25519 signature whose private key is destroyed
before the command returns.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runEncrypt(args[0], args[1], args[2]); err != nil {
			handleError(err)
		}
	},
}

func init() {
	encryptCmd.Flags().BoolVarP(&encryptSign, "sign", "s", false,
		"bind the file and shares to an ephemeral ed25519 signature")
}

func runEncrypt(path, sharesArg, thresholdArg string) error {
	players, err := parseCount(sharesArg, "shares")
	if err != nil {
		return err
	}
	threshold, err := parseCount(thresholdArg, "threshold")
	if err != nil {
		return err
	}

	plaintext, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	printBanner()

	cfg := getConfig()
	log := getLogger()
	prompter := NewPrompter(cfg.AssumeYes)
	if err := resolveShareDir(prompter); err != nil {
		return err
	}

	outPath := path + shardlock.FileExtension
	if _, err := os.Stat(outPath); err == nil {
		if err := prompter.Confirm(fmt.Sprintf("%s already exists and will be overwritten.", outPath)); err != nil {
			return err
		}
	}

	res, err := shardlock.Encrypt(plaintext, &shardlock.EncryptOptions{
		Players:   players,
		Threshold: threshold,
		Sign:      encryptSign,
	}, log)
	if err != nil {
		return err
	}

	store, err := cfg.CreateShareStore()
	if err != nil {
		return err
	}
	for i, share := range res.Shares {
		if err := store.Put(res.ShareNames[i], share); err != nil {
			return fmt.Errorf("failed to write share %s: %w", res.ShareNames[i], err)
		}
	}
	if err := os.WriteFile(outPath, res.File, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	fmt.Printf("Encrypted %s -> %s\n", path, outPath)
	fmt.Printf("Wrote %d shares to %s (any %d decrypt)\n", len(res.Shares), store.Location(), threshold)
	return nil
}

func parseCount(s, what string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number between 1 and 255", what, s)
	}
	return uint8(v), nil
}
