// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: escape/esc.go
// Summary: Parsed ESC sequences: either a known EscCode or Unspecified.

package escape

// Esc is the tagged union of a parsed ESC sequence.
type Esc interface {
	isEsc()
}

// EscCode is a recognized ESC final byte (no intermediate, the common
// case) or a recognized intermediate+final pair.
type EscCode int

const (
	EscUnknownCode          EscCode = iota
	EscIndex                        // ESC D, IND
	EscNextLine                     // ESC E, NEL
	EscHorizontalTabSet             // ESC H, HTS
	EscReverseIndex                 // ESC M, RI
	EscSaveCursor                   // ESC 7, DECSC
	EscRestoreCursor                // ESC 8, DECRC
	EscFullReset                    // ESC c, RIS
	EscDECApplicationKeyPad         // ESC =
	EscDECNormalKeyPad              // ESC >
	EscDECScreenAlignment           // ESC # 8, DECALN
	EscStringTerminator             // ESC \, ST
	EscDECLineDrawingG0             // ESC ( 0
	EscASCIICharacterSetG0          // ESC ( B
)

// EscCodeAction wraps a recognized EscCode.
type EscCodeAction struct {
	Code EscCode
}

func (EscCodeAction) isEsc() {}

// EscUnspecified is any ESC sequence not covered by EscCode: at most one
// intermediate byte (0x20-0x2F) followed by a final byte (0x30-0x7E).
// Multi-intermediate ESC sequences are not representable; the state
// machine keeps only the first intermediate it sees.
type EscUnspecified struct {
	Intermediate *byte // nil if no intermediate byte preceded Control
	Control      byte
}

func (EscUnspecified) isEsc() {}
