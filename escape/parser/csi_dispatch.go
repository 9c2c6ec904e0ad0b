// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: escape/parser/csi_dispatch.go
// Summary: Turns a dispatched CSI (params, intermediates, final byte)
// into one or more escape.CSI values.

package parser

import "github.com/framegrace/texelwiz/escape"

// dispatchCSI decodes a single CSI terminator dispatch into the
// escape.CSI values it represents. Everything but 'm' (SGR) decodes to
// exactly one value; 'm' may decompose into several, in left-to-right
// order ("\x1b[1;3m" yields bold then italic).
func dispatchCSI(params []int, intermediates []byte, ignored, private bool, final byte) []escape.CSI {
	if len(intermediates) > 0 {
		// No recognized CSI command in this module uses an intermediate
		// byte; preserve it verbatim rather than misinterpret it.
		return []escape.CSI{unspecifiedCSI(params, intermediates, ignored, private, final)}
	}

	n := func(i, def int) int {
		if i >= len(params) || params[i] == 0 {
			return def
		}
		return params[i]
	}

	switch final {
	case 'm':
		sgrs := escape.ParseSgrParams(params)
		if len(sgrs) == 0 {
			// CSI m with no params means reset, same as CSI 0 m.
			sgrs = []escape.Sgr{{Attr: escape.SgrReset{}}}
		}
		out := make([]escape.CSI, len(sgrs))
		for i, s := range sgrs {
			out[i] = s
		}
		return out
	case 'A':
		return []escape.CSI{escape.CursorUp{N: n(0, 1)}}
	case 'B':
		return []escape.CSI{escape.CursorDown{N: n(0, 1)}}
	case 'C':
		return []escape.CSI{escape.CursorForward{N: n(0, 1)}}
	case 'D':
		return []escape.CSI{escape.CursorBack{N: n(0, 1)}}
	case 'E':
		return []escape.CSI{escape.CursorNextLine{N: n(0, 1)}}
	case 'F':
		return []escape.CSI{escape.CursorPreviousLine{N: n(0, 1)}}
	case 'G', '`':
		return []escape.CSI{escape.CursorHorizontalAbsolute{Col: n(0, 1)}}
	case 'H', 'f':
		return []escape.CSI{escape.CursorPosition{Row: n(0, 1), Col: n(1, 1)}}
	case 'J':
		return []escape.CSI{escape.EraseInDisplay{Mode: n(0, 0)}}
	case 'K':
		return []escape.CSI{escape.EraseInLine{Mode: n(0, 0)}}
	case 'L':
		return []escape.CSI{escape.InsertLines{N: n(0, 1)}}
	case 'M':
		return []escape.CSI{escape.DeleteLines{N: n(0, 1)}}
	case '@':
		return []escape.CSI{escape.InsertCharacters{N: n(0, 1)}}
	case 'P':
		return []escape.CSI{escape.DeleteCharacters{N: n(0, 1)}}
	case 'S':
		return []escape.CSI{escape.ScrollUp{N: n(0, 1)}}
	case 'T':
		return []escape.CSI{escape.ScrollDown{N: n(0, 1)}}
	case 's':
		if private {
			break
		}
		return []escape.CSI{escape.SaveCursor{}}
	case 'u':
		if private {
			break
		}
		return []escape.CSI{escape.RestoreCursor{}}
	case 'r':
		return []escape.CSI{escape.SetScrollingRegion{Top: n(0, 1), Bottom: n(1, 0)}}
	case 'h':
		return []escape.CSI{escape.SetMode{Mode: n(0, 0), Private: private}}
	case 'l':
		return []escape.CSI{escape.ResetMode{Mode: n(0, 0), Private: private}}
	case 'n':
		return []escape.CSI{escape.DeviceStatusReport{Mode: n(0, 0), Private: private}}
	}

	return []escape.CSI{unspecifiedCSI(params, intermediates, ignored, private, final)}
}

// unspecifiedCSI copies the parser's reusable param/intermediate buffers
// so a retained action can't be overwritten by a later sequence.
func unspecifiedCSI(params []int, intermediates []byte, ignored, private bool, final byte) escape.Unspecified {
	return escape.Unspecified{
		Params:                    append([]int(nil), params...),
		Intermediates:             append([]byte(nil), intermediates...),
		IgnoredExtraIntermediates: ignored,
		Private:                   private,
		Control:                   final,
	}
}
