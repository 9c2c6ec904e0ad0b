// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: escape/action.go
// Summary: The Action variant emitted by escape/parser.

package escape

// Action is the tagged union the parser emits one instance of per
// terminating byte (or, for ground-state bytes, per byte); a CSI `m`
// terminator emits one instance per SGR subcommand. Every
// concrete type below implements Action via the unexported marker
// method so the set is closed to this package.
type Action interface {
	isAction()
}

// ActionPrint is a single printable scalar value decoded from the byte
// stream (UTF-8 where the stream is UTF-8).
type ActionPrint rune

func (ActionPrint) isAction() {}

// ActionControl is a recognized C0/C1 control code: 0x00-0x1F, 0x7F, or
// 0x80-0x9F. Unrecognized codes are logged and dropped, never wrapped
// in an ActionControl.
type ActionControl ControlCode

func (ActionControl) isAction() {}

// ActionCSI wraps a fully parsed Control Sequence Introducer command.
type ActionCSI struct {
	CSI CSI
}

func (ActionCSI) isAction() {}

// ActionEsc wraps a parsed ESC sequence.
type ActionEsc struct {
	Esc Esc
}

func (ActionEsc) isAction() {}

// ActionOSC wraps a parsed Operating System Command.
type ActionOSC struct {
	OSC OperatingSystemCommand
}

func (ActionOSC) isAction() {}

// ActionDeviceControl wraps one step of a streaming DCS envelope:
// Enter, then zero or more Data, then Exit.
type ActionDeviceControl struct {
	Mode DeviceControlMode
}

func (ActionDeviceControl) isAction() {}
