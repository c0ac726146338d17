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
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-shardlock/pkg/logging"
)

var (
	// Global configuration
	globalConfig *Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shardlock",
	Short: "shardlock CLI - Threshold file encryption tool",
	Long: `shardlock encrypts a file once and splits the key into threshold
shares, so that any quorum of share holders can decrypt while fewer
learn nothing.

Encryption produces one .ccm container plus N .ccms share containers.
Decryption scans a share directory, excludes junk and shares belonging
to other files, and reconstructs the key from any quorum. Containers
can optionally be bound to an ephemeral ed25519 signature so tampering
is detected before decryption.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Initialize global config
	globalConfig = NewConfig()

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&globalConfig.ConfigFile, "config", "",
		"config file (default is $HOME/.shardlock.yaml)")
	rootCmd.PersistentFlags().StringVarP(&globalConfig.ShareDir, "share-dir", "d", ".",
		"directory where share containers are written and gathered")
	rootCmd.PersistentFlags().BoolVarP(&globalConfig.Verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalConfig.AssumeYes, "yes", "y", false,
		"answer yes to all confirmation prompts")

	_ = viper.BindPFlag("share_dir", rootCmd.PersistentFlags().Lookup("share-dir"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(licensesCmd)
}

// resolveShareDir settles the share directory before any containers are
// read or written. When neither the flag nor the config supplies one, the
// operator confirms the current directory or names an alternative.
func resolveShareDir(prompter *Prompter) error {
	if rootCmd.PersistentFlags().Changed("share-dir") || viper.IsSet("share_dir") {
		return nil
	}
	abs, err := filepath.Abs(globalConfig.ShareDir)
	if err != nil {
		return fmt.Errorf("failed to resolve share directory: %w", err)
	}
	dir, err := prompter.ShareDir(abs)
	if err != nil {
		return err
	}
	globalConfig.ShareDir = dir
	return nil
}

// initConfig reads in the config file and SHARDLOCK_* environment
// variables, if present. Explicit flags always win.
func initConfig() {
	if globalConfig.ConfigFile != "" {
		viper.SetConfigFile(globalConfig.ConfigFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".shardlock")
		}
	}

	viper.SetEnvPrefix("SHARDLOCK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		printVerbose("using config file %s", viper.ConfigFileUsed())
	}

	if !rootCmd.PersistentFlags().Changed("share-dir") && viper.IsSet("share_dir") {
		globalConfig.ShareDir = viper.GetString("share_dir")
	}
	if !rootCmd.PersistentFlags().Changed("verbose") && viper.IsSet("verbose") {
		globalConfig.Verbose = viper.GetBool("verbose")
	}
}

// getConfig returns the global configuration
func getConfig() *Config {
	return globalConfig
}

// getLogger returns a logger honoring the verbose flag
func getLogger() *logging.Logger {
	return logging.NewLogger(globalConfig.Verbose)
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// printVerbose prints a message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if globalConfig.Verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] "+format+"\n", args...)
	}
}
