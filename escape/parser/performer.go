// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: escape/parser/performer.go
// Summary: The eight-method callback contract the state machine
// drives.

package parser

import "github.com/framegrace/texelwiz/escape"

// Performer is the set of typed hooks the VT500 state machine calls
// back into as it recognizes printable text, controls, and terminated
// sequences. Parser's default Performer turns each call into an
// escape.Action and forwards it to a sink func. Every exported Parser
// method drives that default; none accepts a caller-supplied Performer.
type Performer interface {
	Print(r rune)
	Execute(c escape.ControlCode)
	Hook(params []int, intermediates []byte, ignoredExtraIntermediates bool)
	Put(b byte)
	Unhook()
	OscDispatch(fields [][]byte)
	CsiDispatch(params []int, intermediates []byte, ignoredExtraIntermediates bool, private bool, final byte)
	EscDispatch(intermediate *byte, final byte)
}

// actionPerformer is the default Performer: it converts every hook call
// into the corresponding escape.Action and forwards it to callback.
type actionPerformer struct {
	callback func(escape.Action)
}

func (p *actionPerformer) Print(r rune) {
	p.callback(escape.ActionPrint(r))
}

func (p *actionPerformer) Execute(c escape.ControlCode) {
	p.callback(escape.ActionControl(c))
}

func (p *actionPerformer) Hook(params []int, intermediates []byte, ignored bool) {
	p.callback(escape.ActionDeviceControl{Mode: escape.DeviceControlEnter{
		Params:                    append([]int(nil), params...),
		Intermediates:             append([]byte(nil), intermediates...),
		IgnoredExtraIntermediates: ignored,
	}})
}

func (p *actionPerformer) Put(b byte) {
	p.callback(escape.ActionDeviceControl{Mode: escape.DeviceControlData(b)})
}

func (p *actionPerformer) Unhook() {
	p.callback(escape.ActionDeviceControl{Mode: escape.DeviceControlExit{}})
}

func (p *actionPerformer) OscDispatch(fields [][]byte) {
	p.callback(escape.ActionOSC{OSC: dispatchOSC(fields)})
}

func (p *actionPerformer) CsiDispatch(params []int, intermediates []byte, ignored, private bool, final byte) {
	for _, c := range dispatchCSI(params, intermediates, ignored, private, final) {
		p.callback(escape.ActionCSI{CSI: c})
	}
}

func (p *actionPerformer) EscDispatch(intermediate *byte, final byte) {
	p.callback(escape.ActionEsc{Esc: dispatchEsc(intermediate, final)})
}
