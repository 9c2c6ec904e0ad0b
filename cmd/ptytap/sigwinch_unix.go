// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package main

import (
	"os"
	"syscall"
)

// sigWinch returns the terminal-resize signal this platform delivers.
func sigWinch() os.Signal {
	return syscall.SIGWINCH
}
