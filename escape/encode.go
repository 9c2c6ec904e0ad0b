// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: escape/encode.go
// Summary: Re-encodes Actions to the byte sequences that produce them.

package escape

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode renders a single Action back to the byte sequence that would
// produce it. For ActionCSI with an Sgr payload, a run of Sgr actions
// collapses back into one CSI sequence only via EncodeAll; Encode alone
// always emits one escape sequence per action. DeviceControlEnter keeps
// no final byte, so its encoding ends after the intermediates and does
// not by itself parse back into an Enter.
func Encode(a Action) string {
	switch v := a.(type) {
	case ActionPrint:
		return string(rune(v))
	case ActionControl:
		return string([]byte{byte(v)})
	case ActionCSI:
		return encodeCSI(v.CSI)
	case ActionEsc:
		return encodeEsc(v.Esc)
	case ActionOSC:
		return encodeOSC(v.OSC)
	case ActionDeviceControl:
		return encodeDeviceControl(v.Mode)
	default:
		return ""
	}
}

// EncodeAll re-encodes a slice of actions, merging consecutive Sgr CSI
// actions into a single "\x1b[...m" sequence the way a real terminal
// emitter would, so that encoding the two Sgr actions parsed from
// "\x1b[1;3m" reproduces the single combined SGR sequence.
func EncodeAll(actions []Action) string {
	var sb strings.Builder
	i := 0
	for i < len(actions) {
		if _, isSgr := sgrOf(actions[i]); !isSgr {
			sb.WriteString(Encode(actions[i]))
			i++
			continue
		}
		var params []int
		for i < len(actions) {
			s, isSgr := sgrOf(actions[i])
			if !isSgr {
				break
			}
			params = append(params, EncodeSgrParams(s.Attr)...)
			i++
		}
		sb.WriteString(encodeCSIRaw(params, nil, false, 'm'))
	}
	return sb.String()
}

func sgrOf(a Action) (Sgr, bool) {
	csi, ok := a.(ActionCSI)
	if !ok {
		return Sgr{}, false
	}
	s, ok := csi.CSI.(Sgr)
	return s, ok
}

func encodeCSI(c CSI) string {
	switch v := c.(type) {
	case Sgr:
		return encodeCSIRaw(EncodeSgrParams(v.Attr), nil, false, 'm')
	case CursorUp:
		return encodeCSIRaw([]int{v.N}, nil, false, 'A')
	case CursorDown:
		return encodeCSIRaw([]int{v.N}, nil, false, 'B')
	case CursorForward:
		return encodeCSIRaw([]int{v.N}, nil, false, 'C')
	case CursorBack:
		return encodeCSIRaw([]int{v.N}, nil, false, 'D')
	case CursorNextLine:
		return encodeCSIRaw([]int{v.N}, nil, false, 'E')
	case CursorPreviousLine:
		return encodeCSIRaw([]int{v.N}, nil, false, 'F')
	case CursorHorizontalAbsolute:
		return encodeCSIRaw([]int{v.Col}, nil, false, 'G')
	case CursorPosition:
		return encodeCSIRaw([]int{v.Row, v.Col}, nil, false, 'H')
	case EraseInDisplay:
		return encodeCSIRaw([]int{v.Mode}, nil, false, 'J')
	case EraseInLine:
		return encodeCSIRaw([]int{v.Mode}, nil, false, 'K')
	case InsertLines:
		return encodeCSIRaw([]int{v.N}, nil, false, 'L')
	case DeleteLines:
		return encodeCSIRaw([]int{v.N}, nil, false, 'M')
	case InsertCharacters:
		return encodeCSIRaw([]int{v.N}, nil, false, '@')
	case DeleteCharacters:
		return encodeCSIRaw([]int{v.N}, nil, false, 'P')
	case ScrollUp:
		return encodeCSIRaw([]int{v.N}, nil, false, 'S')
	case ScrollDown:
		return encodeCSIRaw([]int{v.N}, nil, false, 'T')
	case SaveCursor:
		return "\x1b[s"
	case RestoreCursor:
		return "\x1b[u"
	case SetScrollingRegion:
		return encodeCSIRaw([]int{v.Top, v.Bottom}, nil, false, 'r')
	case SetMode:
		return encodeCSIRaw([]int{v.Mode}, nil, v.Private, 'h')
	case ResetMode:
		return encodeCSIRaw([]int{v.Mode}, nil, v.Private, 'l')
	case DeviceStatusReport:
		return encodeCSIRaw([]int{v.Mode}, nil, v.Private, 'n')
	case Unspecified:
		return encodeCSIRaw(v.Params, v.Intermediates, v.Private, v.Control)
	default:
		return ""
	}
}

func encodeCSIRaw(params []int, intermediates []byte, private bool, control byte) string {
	var sb strings.Builder
	sb.WriteString("\x1b[")
	if private {
		sb.WriteByte('?')
	}
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(p))
	}
	sb.Write(intermediates)
	sb.WriteByte(control)
	return sb.String()
}

func encodeEsc(e Esc) string {
	switch v := e.(type) {
	case EscCodeAction:
		switch v.Code {
		case EscIndex:
			return "\x1bD"
		case EscNextLine:
			return "\x1bE"
		case EscHorizontalTabSet:
			return "\x1bH"
		case EscReverseIndex:
			return "\x1bM"
		case EscSaveCursor:
			return "\x1b7"
		case EscRestoreCursor:
			return "\x1b8"
		case EscFullReset:
			return "\x1bc"
		case EscDECApplicationKeyPad:
			return "\x1b="
		case EscDECNormalKeyPad:
			return "\x1b>"
		case EscDECScreenAlignment:
			return "\x1b#8"
		case EscStringTerminator:
			return "\x1b\\"
		case EscDECLineDrawingG0:
			return "\x1b(0"
		case EscASCIICharacterSetG0:
			return "\x1b(B"
		default:
			return ""
		}
	case EscUnspecified:
		if v.Intermediate != nil {
			return fmt.Sprintf("\x1b%c%c", *v.Intermediate, v.Control)
		}
		return fmt.Sprintf("\x1b%c", v.Control)
	default:
		return ""
	}
}

func encodeOSC(o OperatingSystemCommand) string {
	switch v := o.(type) {
	case OSCSetIconNameAndWindowTitle:
		return "\x1b]0;" + v.Title + "\x07"
	case OSCSetIconName:
		return "\x1b]1;" + v.Name + "\x07"
	case OSCSetWindowTitle:
		return "\x1b]2;" + v.Title + "\x07"
	case OSCSetHyperlink:
		return "\x1b]8;" + v.Params + ";" + v.URI + "\x07"
	case OSCChangeColorNumber:
		var sb strings.Builder
		sb.WriteString("\x1b]4")
		for _, c := range v.Colors {
			sb.WriteByte(';')
			sb.WriteString(strconv.Itoa(c.Index))
			sb.WriteByte(';')
			sb.WriteString(c.Spec)
		}
		sb.WriteByte('\x07')
		return sb.String()
	case OSCResetColors:
		var sb strings.Builder
		sb.WriteString("\x1b]104")
		for _, idx := range v.Indices {
			sb.WriteByte(';')
			sb.WriteString(strconv.Itoa(idx))
		}
		sb.WriteByte('\x07')
		return sb.String()
	case OSCSetSelection:
		return "\x1b]52;" + v.Selection + ";" + v.Data + "\x07"
	case OSCUnspecified:
		var sb strings.Builder
		sb.WriteString("\x1b]")
		for i, f := range v.Fields {
			if i > 0 {
				sb.WriteByte(';')
			}
			sb.Write(f)
		}
		sb.WriteByte('\x07')
		return sb.String()
	default:
		return ""
	}
}

func encodeDeviceControl(m DeviceControlMode) string {
	switch v := m.(type) {
	case DeviceControlEnter:
		var sb strings.Builder
		sb.WriteString("\x1bP")
		for i, p := range v.Params {
			if i > 0 {
				sb.WriteByte(';')
			}
			sb.WriteString(strconv.Itoa(p))
		}
		sb.Write(v.Intermediates)
		return sb.String()
	case DeviceControlData:
		return string([]byte{byte(v)})
	case DeviceControlExit:
		return "\x1b\\"
	default:
		return ""
	}
}
