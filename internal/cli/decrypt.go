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
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-shardlock/pkg/reconcile"
	"github.com/jeremyhahn/go-shardlock/pkg/shardlock"
)

var (
	decryptStrict   bool
	decryptAllFiles bool
	decryptOut      string
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt <file>",
	Short: "Decrypt a file using a quorum of shares",
	Long: `Decrypt an encrypted container by gathering shares from the share
directory. Files that are not shares, or that belong to a different
encrypted file, are skipped; decryption proceeds as long as a quorum
of matching shares is found.

By default only *.ccms files are considered candidates; --all scans
every file in the share directory. With --strict, any signing mismatch
aborts instead of prompting.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDecrypt(args[0]); err != nil {
			handleError(err)
		}
	},
}

func init() {
	decryptCmd.Flags().BoolVar(&decryptStrict, "strict", false,
		"abort on any signing mismatch instead of prompting")
	decryptCmd.Flags().BoolVarP(&decryptAllFiles, "all", "a", false,
		"consider every file in the share directory, not only *.ccms")
	decryptCmd.Flags().StringVarP(&decryptOut, "output", "o", "",
		"output path (default strips the .ccm extension)")
}

func runDecrypt(path string) error {
	printBanner()

	if !decryptStrict && viper.IsSet("strict") {
		decryptStrict = viper.GetBool("strict")
	}

	fileData, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := getConfig()
	log := getLogger()
	prompter := NewPrompter(cfg.AssumeYes)
	if err := resolveShareDir(prompter); err != nil {
		return err
	}

	store, err := cfg.CreateShareStore()
	if err != nil {
		return err
	}

	res, err := shardlock.Decrypt(fileData, store, &shardlock.DecryptOptions{
		Policy: &reconcile.Policy{
			Strict:           decryptStrict,
			AllFiles:         decryptAllFiles,
			ResolveThreshold: prompter.ResolveThreshold,
			Continue:         prompter.Confirm,
		},
	}, log)
	if err != nil {
		return err
	}

	outPath := decryptOut
	if outPath == "" {
		outPath = outputPath(path)
	}
	if _, err := os.Stat(outPath); err == nil {
		if err := prompter.Confirm(fmt.Sprintf("%s already exists and will be overwritten.", outPath)); err != nil {
			return err
		}
	}
	if err := os.WriteFile(outPath, res.Plaintext, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	kind := mimetype.Detect(res.Plaintext)
	fmt.Printf("Decrypted %s -> %s (%s)\n", path, outPath, kind.String())
	return nil
}

// outputPath strips the container extension, or appends .out when the
// input does not carry one so the source is never clobbered.
func outputPath(path string) string {
	if strings.HasSuffix(path, shardlock.FileExtension) {
		return strings.TrimSuffix(path, shardlock.FileExtension)
	}
	return path + ".out"
}
