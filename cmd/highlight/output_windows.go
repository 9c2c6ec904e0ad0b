// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"

	"github.com/framegrace/texelwiz/console"
	"github.com/framegrace/texelwiz/console/winconsole"
)

func openOutputHandle() (console.ConsoleOutputHandle, error) {
	return winconsole.New(windows.Handle(os.Stdout.Fd())), nil
}
