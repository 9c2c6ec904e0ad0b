// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: escape/parser/osc_dispatch.go
// Summary: Decodes an OSC byte-string field list into an
// escape.OperatingSystemCommand.

package parser

import (
	"strconv"

	"github.com/framegrace/texelwiz/escape"
)

// dispatchOSC recognizes the common numeric selectors (window/icon
// title, hyperlink, palette colors, clipboard) and falls back to
// Unspecified for anything else.
func dispatchOSC(fields [][]byte) escape.OperatingSystemCommand {
	if len(fields) == 0 {
		return escape.OSCUnspecified{Fields: fields}
	}
	selector, err := strconv.Atoi(string(fields[0]))
	if err != nil {
		return escape.OSCUnspecified{Fields: fields}
	}

	switch selector {
	case 0:
		if len(fields) < 2 {
			return escape.OSCUnspecified{Fields: fields}
		}
		return escape.OSCSetIconNameAndWindowTitle{Title: string(fields[1])}
	case 1:
		if len(fields) < 2 {
			return escape.OSCUnspecified{Fields: fields}
		}
		return escape.OSCSetIconName{Name: string(fields[1])}
	case 2:
		if len(fields) < 2 {
			return escape.OSCUnspecified{Fields: fields}
		}
		return escape.OSCSetWindowTitle{Title: string(fields[1])}
	case 4:
		if len(fields) < 3 || len(fields)%2 != 1 {
			return escape.OSCUnspecified{Fields: fields}
		}
		var colors []escape.OSCColorPair
		for i := 1; i+1 < len(fields); i += 2 {
			idx, err := strconv.Atoi(string(fields[i]))
			if err != nil {
				return escape.OSCUnspecified{Fields: fields}
			}
			colors = append(colors, escape.OSCColorPair{Index: idx, Spec: string(fields[i+1])})
		}
		return escape.OSCChangeColorNumber{Colors: colors}
	case 8:
		if len(fields) < 3 {
			return escape.OSCUnspecified{Fields: fields}
		}
		return escape.OSCSetHyperlink{Params: string(fields[1]), URI: string(fields[2])}
	case 52:
		if len(fields) < 3 {
			return escape.OSCUnspecified{Fields: fields}
		}
		return escape.OSCSetSelection{Selection: string(fields[1]), Data: string(fields[2])}
	case 104:
		var indices []int
		for _, f := range fields[1:] {
			idx, err := strconv.Atoi(string(f))
			if err != nil {
				return escape.OSCUnspecified{Fields: fields}
			}
			indices = append(indices, idx)
		}
		return escape.OSCResetColors{Indices: indices}
	default:
		return escape.OSCUnspecified{Fields: fields}
	}
}
