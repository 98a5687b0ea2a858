// SPDX-License-Identifier: MPL-2.0

package main

import cmd "terrabake-cli/cmd/terrabake"

func main() {
	cmd.Execute()
}
