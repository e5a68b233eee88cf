// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import "github.com/shellmcp-org/shellmcp/cmd"

// Build metadata injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
