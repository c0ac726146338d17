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

	"github.com/spf13/cobra"
)

// licensesCmd represents the licenses command
var licensesCmd = &cobra.Command{
	Use:   "licenses",
	Short: "Print license information",
	Long:  `Print the licensing terms for shardlock and its dependencies`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(`go-shardlock is dual-licensed:

1. GNU Affero General Public License v3.0 (AGPL-3.0)
   See the LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

2. Commercial License
   Contact licensing@automatethethings.com for commercial licensing options.

Dependency licenses:

  filippo.io/edwards25519            BSD-3-Clause
  github.com/SSSaaS/sssa-golang      MIT
  github.com/gabriel-vasile/mimetype MIT
  github.com/spf13/cobra             Apache-2.0
  github.com/spf13/viper             MIT
  github.com/stretchr/testify        MIT
  golang.org/x/crypto                BSD-3-Clause`)
	},
}
