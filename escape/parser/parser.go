// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: escape/parser/parser.go
// Summary: The streaming VT500-family state machine. Pure; no I/O.
// Consumes bytes and drives a Performer.
// Usage: Consumed by anything that needs to turn a raw byte stream (a
// PTY read, a file of captured output) into a typed Action stream; see
// cmd/ptytap and internal/actionlog for two such collaborators.

package parser

import (
	"log"
	"unicode/utf8"

	"github.com/framegrace/texelwiz/escape"
)

// Parser holds the state machine used to decode a stream of bytes that
// may be split arbitrarily across calls to Parse. A Parser's state is
// private to that instance; parallel streams need independent Parsers.
type Parser struct {
	// Logger receives non-fatal diagnostics (unknown control codes,
	// malformed sequences). Defaults to log.Default() on first use;
	// set to log.New(io.Discard, "", 0) to silence it.
	Logger *log.Logger

	// OSCLimit bounds how many payload bytes an OSC string may carry
	// before being treated as overflowed (dispatching as Unspecified).
	// Zero means the 64 KiB default.
	OSCLimit int

	state state

	params        []int
	currentParam  int
	intermediates []byte
	private       bool
	ignored       bool

	oscFields   [][]byte
	oscCur      []byte
	oscOverflow bool
	oscBytes    int
	pendingEsc  bool // seen ESC while collecting an OSC or DCS string

	utf8Pending []byte
}

// New returns a Parser ready to consume bytes from the start of Ground
// state.
func New() *Parser {
	return &Parser{
		params:        make([]int, 0, maxCSIParams),
		intermediates: make([]byte, 0, maxCSIIntermediates),
	}
}

func (p *Parser) logger() *log.Logger {
	if p.Logger == nil {
		p.Logger = log.Default()
	}
	return p.Logger
}

// Parse pushes bytes through the state machine, invoking sink once per
// completed action. No allocation per printable ASCII byte.
func (p *Parser) Parse(data []byte, sink func(escape.Action)) {
	perform := &actionPerformer{callback: sink}
	for _, b := range data {
		p.advance(perform, b)
	}
}

// ParseAsVec is a convenience wrapper returning every action produced.
func (p *Parser) ParseAsVec(data []byte) []escape.Action {
	var actions []escape.Action
	p.Parse(data, func(a escape.Action) { actions = append(actions, a) })
	return actions
}

// ParseFirst consumes bytes until the first action is emitted, returning
// it plus the 1-based count of bytes consumed to produce it. If the
// input ends without completing an action, it returns (nil, 0, false)
// and retains internal state so a later call can complete the sequence.
//
// The first dispatch fills a single-slot accumulator; later dispatches
// for the same call are discarded by the early return inside the
// closure.
func (p *Parser) ParseFirst(data []byte) (escape.Action, int, bool) {
	var first escape.Action
	found := false
	perform := &actionPerformer{callback: func(a escape.Action) {
		if found {
			return
		}
		first = a
		found = true
	}}
	for i, b := range data {
		p.advance(perform, b)
		if found {
			return first, i + 1, true
		}
	}
	return nil, 0, false
}

// ParseFirstAsVec is like ParseFirst but collects every action the
// first emitting byte produced (e.g. a CSI terminator that splits into
// several SGR subcommands).
func (p *Parser) ParseFirstAsVec(data []byte) ([]escape.Action, int, bool) {
	var actions []escape.Action
	perform := &actionPerformer{callback: func(a escape.Action) {
		actions = append(actions, a)
	}}
	for i, b := range data {
		p.advance(perform, b)
		if len(actions) > 0 {
			return actions, i + 1, true
		}
	}
	return nil, 0, false
}

// advance feeds a single byte through the state machine, calling back
// into perform for any action it completes.
func (p *Parser) advance(perform Performer, b byte) {
	// CAN/SUB abort any sequence in progress, anywhere, per the VT500
	// diagram's "anywhere" transitions.
	if (b == 0x18 || b == 0x1A) && p.state != stateGround {
		p.resetSequence()
		p.state = stateGround
		return
	}
	// ESC restarts sequence recognition from anywhere except the string
	// states, where it may be the first half of a two-byte ST.
	if b == 0x1B {
		switch p.state {
		case stateGround, stateOscString, stateDcsPassthrough, stateDcsIgnore, stateSosPmApcString:
		default:
			p.resetSequence()
			p.state = stateEscape
			return
		}
	}

	switch p.state {
	case stateGround:
		p.advanceGround(perform, b)
	case stateEscape:
		p.advanceEscape(perform, b)
	case stateEscapeIntermediate:
		p.advanceEscapeIntermediate(perform, b)
	case stateCsiEntry, stateCsiParam:
		p.advanceCsiParam(perform, b)
	case stateCsiIntermediate:
		p.advanceCsiIntermediate(perform, b)
	case stateCsiIgnore:
		p.advanceCsiIgnore(perform, b)
	case stateOscString:
		p.advanceOsc(perform, b)
	case stateDcsEntry, stateDcsParam:
		p.advanceDcsParam(perform, b)
	case stateDcsIntermediate:
		p.advanceDcsIntermediate(perform, b)
	case stateDcsPassthrough:
		p.advanceDcsPassthrough(perform, b)
	case stateDcsIgnore:
		p.advanceDcsIgnore(perform, b)
	case stateSosPmApcString:
		p.advanceSosPmApc(perform, b)
	}
}

func (p *Parser) resetSequence() {
	p.params = p.params[:0]
	p.currentParam = 0
	p.intermediates = p.intermediates[:0]
	p.private = false
	p.ignored = false
	p.oscFields = nil
	p.oscCur = nil
	p.oscOverflow = false
	p.oscBytes = 0
	p.pendingEsc = false
}

func (p *Parser) advanceGround(perform Performer, b byte) {
	switch {
	case b == 0x1B:
		p.state = stateEscape
	case b >= 0x80 && len(p.utf8Pending) > 0:
		// Continuation byte of a rune already in progress, even when it
		// falls in the C1 range.
		p.feedUTF8(perform, b)
	case b < 0x20:
		code := escape.ControlCode(b)
		if code.IsKnown() {
			perform.Execute(code)
		} else {
			p.logger().Printf("escape/parser: unknown C0 control 0x%02x dropped", b)
		}
	case b == 0x7F:
		perform.Execute(escape.ControlCode(b))
	case b >= 0x20 && b <= 0x7E:
		perform.Print(rune(b))
	case b == 0x90: // DCS (C1)
		p.resetSequence()
		p.state = stateDcsEntry
	case b == 0x9B: // CSI (C1)
		p.resetSequence()
		p.state = stateCsiEntry
	case b == 0x9D: // OSC (C1)
		p.resetSequence()
		p.state = stateOscString
	case b == 0x98 || b == 0x9E || b == 0x9F: // SOS/PM/APC (C1)
		p.state = stateSosPmApcString
	case b >= 0x80 && b <= 0x9F:
		code := escape.ControlCode(b)
		if code.IsKnown() {
			perform.Execute(code)
		} else {
			p.logger().Printf("escape/parser: unknown C1 control 0x%02x dropped", b)
		}
	default: // 0xA0-0xFF: UTF-8 text (or lone high byte)
		p.feedUTF8(perform, b)
	}
}

// feedUTF8 buffers bytes of a possibly multi-byte UTF-8 rune across
// Parse calls and emits Print once a full rune (or an undecodable lead
// byte) is resolved.
func (p *Parser) feedUTF8(perform Performer, b byte) {
	p.utf8Pending = append(p.utf8Pending, b)
	for len(p.utf8Pending) > 0 {
		if utf8.FullRune(p.utf8Pending) {
			r, size := utf8.DecodeRune(p.utf8Pending)
			perform.Print(r)
			p.utf8Pending = p.utf8Pending[size:]
			return
		}
		if len(p.utf8Pending) >= utf8.UTFMax {
			p.logger().Printf("escape/parser: invalid UTF-8 byte 0x%02x dropped", p.utf8Pending[0])
			p.utf8Pending = p.utf8Pending[1:]
			continue
		}
		return // wait for more bytes
	}
}

// executeC0 handles a C0 control arriving mid-sequence: the VT500
// diagram executes it in place without disturbing the sequence in
// progress. ESC/CAN/SUB never reach here; advance intercepts them.
func (p *Parser) executeC0(perform Performer, b byte) bool {
	if b >= 0x20 {
		return false
	}
	code := escape.ControlCode(b)
	if code.IsKnown() {
		perform.Execute(code)
	} else {
		p.logger().Printf("escape/parser: unknown C0 control 0x%02x dropped", b)
	}
	return true
}

func (p *Parser) advanceEscape(perform Performer, b byte) {
	if p.executeC0(perform, b) {
		return
	}
	switch {
	case b == '[':
		p.resetSequence()
		p.state = stateCsiEntry
	case b == ']':
		p.resetSequence()
		p.state = stateOscString
	case b == 'P':
		p.resetSequence()
		p.state = stateDcsEntry
	case b == 'X' || b == '^' || b == '_':
		p.state = stateSosPmApcString
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = p.intermediates[:0]
		p.intermediates = append(p.intermediates, b)
		p.state = stateEscapeIntermediate
	case b >= 0x30 && b <= 0x7E:
		perform.EscDispatch(nil, b)
		p.state = stateGround
	case b == 0x7F:
		// ignored, per the diagram
	default:
		p.logger().Printf("escape/parser: unexpected byte 0x%02x in Escape state", b)
		p.state = stateGround
	}
}

func (p *Parser) advanceEscapeIntermediate(perform Performer, b byte) {
	if p.executeC0(perform, b) {
		return
	}
	switch {
	case b >= 0x20 && b <= 0x2F:
		// ESC dispatch carries at most one intermediate byte; keep
		// only the first one seen and drop the rest.
	case b >= 0x30 && b <= 0x7E:
		first := p.intermediates[0]
		perform.EscDispatch(&first, b)
		p.state = stateGround
	case b == 0x7F:
		// ignored
	default:
		p.state = stateGround
	}
}

// pushParam accumulates one decimal digit into the pending parameter.
// The pending value joins params only on a separator (nextParam) or at
// dispatch (finalParams), so separators never insert spurious entries.
func (p *Parser) pushParam(b byte) {
	p.currentParam = p.currentParam*10 + int(b-'0')
}

func (p *Parser) nextParam() {
	if len(p.params) < maxCSIParams {
		p.params = append(p.params, p.currentParam)
	}
	p.currentParam = 0
}

func (p *Parser) advanceCsiParam(perform Performer, b byte) {
	if p.executeC0(perform, b) {
		return
	}
	switch {
	case b >= '0' && b <= '9':
		p.pushParam(b)
		p.state = stateCsiParam
	case b == ';' || b == ':':
		p.nextParam()
		p.state = stateCsiParam
	case b >= '<' && b <= '?':
		if p.state == stateCsiEntry {
			p.private = true
		} else {
			p.state = stateCsiIgnore
		}
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		if len(p.intermediates) > maxCSIIntermediates {
			p.ignored = true
			p.state = stateCsiIgnore
			return
		}
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.dispatchCsiAndReset(perform, b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) advanceCsiIntermediate(perform Performer, b byte) {
	if p.executeC0(perform, b) {
		return
	}
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		if len(p.intermediates) > maxCSIIntermediates {
			p.ignored = true
			p.state = stateCsiIgnore
		}
	case b >= 0x40 && b <= 0x7E:
		p.dispatchCsiAndReset(perform, b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) advanceCsiIgnore(perform Performer, b byte) {
	if p.executeC0(perform, b) {
		return
	}
	if b >= 0x40 && b <= 0x7E {
		p.dispatchCsiAndReset(perform, b)
	}
	// everything else is silently absorbed until the terminator
}

func (p *Parser) dispatchCsiAndReset(perform Performer, final byte) {
	perform.CsiDispatch(p.finalParams(), p.intermediates, p.ignored, p.private, final)
	p.state = stateGround
}

// finalParams closes out the pending parameter and returns the collected
// list. A sequence with no digits at all (bare "\x1b[m") yields a single
// default-zero entry so the terminator byte always sees a complete list.
func (p *Parser) finalParams() []int {
	if len(p.params) < maxCSIParams {
		p.params = append(p.params, p.currentParam)
	}
	p.currentParam = 0
	return p.params
}

func (p *Parser) advanceOsc(perform Performer, b byte) {
	switch {
	case b == 0x07 || b == 0x9C:
		p.finishOscField()
		perform.OscDispatch(p.finalOscFields())
		p.state = stateGround
	case b == 0x1B:
		p.pendingEsc = true
	case p.pendingEsc:
		p.pendingEsc = false
		if b == '\\' {
			p.finishOscField()
			perform.OscDispatch(p.finalOscFields())
			p.state = stateGround
		} else {
			// Not a real ST; terminate early and replay this byte as
			// the start of whatever ESC sequence it actually begins.
			p.finishOscField()
			perform.OscDispatch(p.finalOscFields())
			p.resetSequence()
			p.state = stateEscape
			p.advanceEscape(perform, b)
		}
	case b == ';':
		p.finishOscField()
	default:
		p.appendOscByte(b)
	}
}

func (p *Parser) oscLimit() int {
	if p.OSCLimit > 0 {
		return p.OSCLimit
	}
	return maxOSCBytes
}

func (p *Parser) appendOscByte(b byte) {
	p.oscBytes++
	if p.oscBytes > p.oscLimit() {
		p.oscOverflow = true
		return
	}
	p.oscCur = append(p.oscCur, b)
}

func (p *Parser) finishOscField() {
	p.oscFields = append(p.oscFields, append([]byte(nil), p.oscCur...))
	p.oscCur = p.oscCur[:0]
}

func (p *Parser) finalOscFields() [][]byte {
	if p.oscOverflow {
		return [][]byte{[]byte("overflow")}
	}
	return p.oscFields
}

func (p *Parser) advanceSosPmApc(perform Performer, b byte) {
	switch {
	case b == 0x9C:
		p.state = stateGround
	case b == 0x1B:
		p.pendingEsc = true
	case p.pendingEsc:
		p.pendingEsc = false
		if b == '\\' {
			p.state = stateGround
		} else {
			p.state = stateEscape
			p.advanceEscape(perform, b)
		}
	default:
		// SOS/PM/APC payload bytes are absorbed silently; the Action
		// set has no variant for them.
	}
}

func (p *Parser) advanceDcsParam(perform Performer, b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.pushParam(b)
	case b == ';' || b == ':':
		p.nextParam()
	case b == '?' || (b >= '<' && b <= '?'):
		// accepted but not separately tracked
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		if len(p.intermediates) > maxCSIIntermediates {
			p.ignored = true
		}
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.hookAndEnterPassthrough(perform, b)
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) advanceDcsIntermediate(perform Performer, b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		if len(p.intermediates) > maxCSIIntermediates {
			p.ignored = true
		}
	case b >= 0x40 && b <= 0x7E:
		p.hookAndEnterPassthrough(perform, b)
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) hookAndEnterPassthrough(perform Performer, _ byte) {
	perform.Hook(p.finalParams(), p.intermediates, p.ignored)
	p.state = stateDcsPassthrough
}

func (p *Parser) advanceDcsPassthrough(perform Performer, b byte) {
	switch {
	case b == 0x9C:
		perform.Unhook()
		p.state = stateGround
	case b == 0x1B:
		p.pendingEsc = true
	case p.pendingEsc:
		p.pendingEsc = false
		if b == '\\' {
			perform.Unhook()
			p.state = stateGround
		} else {
			perform.Put(0x1B)
			perform.Put(b)
		}
	default:
		perform.Put(b)
	}
}

func (p *Parser) advanceDcsIgnore(perform Performer, b byte) {
	switch {
	case b == 0x9C:
		p.state = stateGround
	case b == 0x1B:
		p.pendingEsc = true
	case p.pendingEsc:
		p.pendingEsc = false
		if b == '\\' {
			p.state = stateGround
		} else {
			p.state = stateEscape
			p.advanceEscape(perform, b)
		}
	}
}
