// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package main

import "os"

// sigWinch has no equivalent on Windows; ConPTY resize is driven by the
// host explicitly calling pty.Setsize, not by a delivered signal, so
// this returns nil and run installs no resize handler.
func sigWinch() os.Signal {
	return os.Signal(nil)
}
