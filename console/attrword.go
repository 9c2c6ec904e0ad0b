// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/attrword.go
// Summary: CellAttributes → legacy console attribute word, using the
// bit constants the legacy console API defines.

package console

import "github.com/framegrace/texelwiz/escape"

const (
	foregroundBlue      = 0x0001
	foregroundGreen     = 0x0002
	foregroundRed       = 0x0004
	foregroundIntensity = 0x0008

	backgroundBlue      = 0x0010
	backgroundGreen     = 0x0020
	backgroundRed       = 0x0040
	backgroundIntensity = 0x0080

	commonLVBReverseVideo = 0x4000
	commonLVBUnderscore   = 0x8000
)

// ansiColorBits returns the R/G/B/intensity bit combination for one of
// the 16 standard ANSI palette indices, using the caller-supplied bit
// constants (so the same table serves foreground and background). An
// index outside 0-15 (reachable via an unclamped 256-color SGR
// parameter) returns def, which the caller sets to white for foreground
// and black for background.
func ansiColorBits(idx uint8, red, green, blue, bright, def uint16) uint16 {
	switch idx {
	case 0: // Black
		return 0
	case 1: // Maroon
		return red
	case 2: // Green
		return green
	case 3: // Olive
		return red | green
	case 4: // Navy
		return blue
	case 5: // Purple
		return red | blue
	case 6: // Teal
		return green | blue
	case 7: // Silver
		return red | green | blue
	case 8: // Grey
		return bright
	case 9: // Red
		return bright | red
	case 10: // Lime
		return bright | green
	case 11: // Yellow
		return bright | red | green
	case 12: // Blue
		return bright | blue
	case 13: // Fuschia
		return bright | red | blue
	case 14: // Aqua
		return bright | green | blue
	case 15: // White
		return bright | red | green | blue
	default:
		return def
	}
}

// toAttrWord packs a CellAttributes into the 16-bit legacy console
// attribute word: bg nibble, fg nibble, reverse bit, underscore bit.
// Blink, italic, strikethrough, and invisible have no console
// representation and are dropped.
func toAttrWord(attr escape.CellAttributes) uint16 {
	var fg uint16
	switch attr.Foreground.Mode {
	case escape.ColorTrueColorWithDefaultFallback, escape.ColorDefault:
		fg = foregroundBlue | foregroundRed | foregroundGreen | foregroundIntensity
	default:
		// Out-of-range palette index falls back to white foreground.
		fg = ansiColorBits(attr.Foreground.Palette, foregroundRed, foregroundGreen, foregroundBlue, foregroundIntensity,
			foregroundBlue|foregroundRed|foregroundGreen|foregroundIntensity)
	}

	var bg uint16
	switch attr.Background.Mode {
	case escape.ColorTrueColorWithDefaultFallback, escape.ColorDefault:
		bg = 0
	default:
		// Out-of-range palette index falls back to black background,
		// NOT the same default as foreground.
		bg = ansiColorBits(attr.Background.Palette, backgroundRed, backgroundGreen, backgroundBlue, backgroundIntensity, 0)
	}

	var reverse uint16
	if attr.Reverse {
		reverse = commonLVBReverseVideo
	}
	var underline uint16
	if attr.Underline != escape.UnderlineNone {
		underline = commonLVBUnderscore
	}

	return bg | fg | reverse | underline
}
