// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: escape/parser/esc_dispatch.go
// Summary: Decodes an ESC dispatch (single optional intermediate plus
// final byte) into an escape.Esc.

package parser

import "github.com/framegrace/texelwiz/escape"

// dispatchEsc recognizes the common zero-intermediate ESC codes plus a
// few intermediate+final pairs, and falls back to Unspecified otherwise.
func dispatchEsc(intermediate *byte, final byte) escape.Esc {
	if intermediate == nil {
		switch final {
		case 'D':
			return escape.EscCodeAction{Code: escape.EscIndex}
		case 'E':
			return escape.EscCodeAction{Code: escape.EscNextLine}
		case 'H':
			return escape.EscCodeAction{Code: escape.EscHorizontalTabSet}
		case 'M':
			return escape.EscCodeAction{Code: escape.EscReverseIndex}
		case '7':
			return escape.EscCodeAction{Code: escape.EscSaveCursor}
		case '8':
			return escape.EscCodeAction{Code: escape.EscRestoreCursor}
		case 'c':
			return escape.EscCodeAction{Code: escape.EscFullReset}
		case '=':
			return escape.EscCodeAction{Code: escape.EscDECApplicationKeyPad}
		case '>':
			return escape.EscCodeAction{Code: escape.EscDECNormalKeyPad}
		case '\\':
			return escape.EscCodeAction{Code: escape.EscStringTerminator}
		}
		return escape.EscUnspecified{Control: final}
	}

	switch *intermediate {
	case '#':
		if final == '8' {
			return escape.EscCodeAction{Code: escape.EscDECScreenAlignment}
		}
	case '(':
		switch final {
		case '0':
			return escape.EscCodeAction{Code: escape.EscDECLineDrawingG0}
		case 'B':
			return escape.EscCodeAction{Code: escape.EscASCIICharacterSetG0}
		}
	}
	return escape.EscUnspecified{Intermediate: intermediate, Control: final}
}
