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

import "fmt"

const logo = ` ____  _   _    _    ____  ____  _     ___   ____ _  __
/ ___|| | | |  / \  |  _ \|  _ \| |   / _ \ / ___| |/ /
\___ \| |_| | / _ \ | |_) | | | | |  | | | | |   | ' /
 ___) |  _  |/ ___ \|  _ <| |_| | |__| |_| | |___| . \
|____/|_| |_/_/   \_\_| \_\____/|_____\___/ \____|_|\_\`

// printBanner prints the startup banner before a command runs.
func printBanner() {
	fmt.Println(logo)
	fmt.Println("----")
	fmt.Printf("version %s\n\n", Version)
}
