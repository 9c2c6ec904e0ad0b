// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"fmt"
	"testing"

	"github.com/framegrace/texelwiz/escape"
)

func TestParsePlainText(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("hello"))
	if len(actions) != 5 {
		t.Fatalf("expected 5 actions, got %d: %v", len(actions), actions)
	}
	want := "hello"
	for i, r := range want {
		pr, ok := actions[i].(escape.ActionPrint)
		if !ok || rune(pr) != r {
			t.Fatalf("action %d = %#v, want Print(%q)", i, actions[i], r)
		}
	}
}

func TestParseBasicBold(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("\x1b[1m"))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %v", len(actions), actions)
	}
	csi, ok := actions[0].(escape.ActionCSI)
	if !ok {
		t.Fatalf("expected ActionCSI, got %#v", actions[0])
	}
	sgr, ok := csi.CSI.(escape.Sgr)
	if !ok {
		t.Fatalf("expected Sgr, got %#v", csi.CSI)
	}
	intensity, ok := sgr.Attr.(escape.SgrIntensity)
	if !ok || intensity.Intensity != escape.IntensityBold {
		t.Fatalf("expected bold intensity, got %#v", sgr.Attr)
	}
}

func TestParseBoldItalicSplits(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("\x1b[1;3m"))
	if len(actions) != 2 {
		t.Fatalf("expected CSI m with two params to decompose into 2 actions, got %d: %v", len(actions), actions)
	}
	first := actions[0].(escape.ActionCSI).CSI.(escape.Sgr)
	second := actions[1].(escape.ActionCSI).CSI.(escape.Sgr)
	if _, ok := first.Attr.(escape.SgrIntensity); !ok {
		t.Fatalf("expected first subcommand to be intensity, got %#v", first.Attr)
	}
	if _, ok := second.Attr.(escape.SgrItalic); !ok {
		t.Fatalf("expected second subcommand to be italic, got %#v", second.Attr)
	}
}

func TestParseMultiParamCSIValues(t *testing.T) {
	p := New()

	actions := p.ParseAsVec([]byte("\x1b[3;5H"))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %v", len(actions), actions)
	}
	cup, ok := actions[0].(escape.ActionCSI).CSI.(escape.CursorPosition)
	if !ok || cup.Row != 3 || cup.Col != 5 {
		t.Fatalf("expected CursorPosition{3,5}, got %#v", actions[0])
	}

	actions = p.ParseAsVec([]byte("\x1b[2;10r"))
	region, ok := actions[0].(escape.ActionCSI).CSI.(escape.SetScrollingRegion)
	if !ok || region.Top != 2 || region.Bottom != 10 {
		t.Fatalf("expected SetScrollingRegion{2,10}, got %#v", actions[0])
	}

	actions = p.ParseAsVec([]byte("\x1b[38;5;42m"))
	if len(actions) != 1 {
		t.Fatalf("expected 256-color SGR to decode as 1 action, got %d: %v", len(actions), actions)
	}
	fg, ok := actions[0].(escape.ActionCSI).CSI.(escape.Sgr).Attr.(escape.SgrForeground)
	if !ok || fg.Color.Mode != escape.ColorPaletteIndex || fg.Color.Palette != 42 {
		t.Fatalf("expected PaletteIndex(42) foreground, got %#v", actions[0])
	}

	actions = p.ParseAsVec([]byte("\x1b[48;2;10;20;30m"))
	if len(actions) != 1 {
		t.Fatalf("expected true-color SGR to decode as 1 action, got %d: %v", len(actions), actions)
	}
	bg, ok := actions[0].(escape.ActionCSI).CSI.(escape.Sgr).Attr.(escape.SgrBackground)
	if !ok || bg.Color.RGB != (escape.RGB{R: 10, G: 20, B: 30}) {
		t.Fatalf("expected RGB{10,20,30} background, got %#v", actions[0])
	}
}

func TestParseOSCWindowTitle(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("\x1b]0;my title\x07"))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %v", len(actions), actions)
	}
	osc, ok := actions[0].(escape.ActionOSC)
	if !ok {
		t.Fatalf("expected ActionOSC, got %#v", actions[0])
	}
	title, ok := osc.OSC.(escape.OSCSetIconNameAndWindowTitle)
	if !ok || title.Title != "my title" {
		t.Fatalf("expected icon+window title %q, got %#v", "my title", osc.OSC)
	}
}

func TestParseOSCUnspecifiedFallback(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("\x1b]999;whatever\x07"))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %v", len(actions), actions)
	}
	osc := actions[0].(escape.ActionOSC)
	if _, ok := osc.OSC.(escape.OSCUnspecified); !ok {
		t.Fatalf("expected OSCUnspecified for unrecognized selector, got %#v", osc.OSC)
	}
}

func TestParseEscHorizontalTabSet(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("\x1bH"))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %v", len(actions), actions)
	}
	esc := actions[0].(escape.ActionEsc).Esc.(escape.EscCodeAction)
	if esc.Code != escape.EscHorizontalTabSet {
		t.Fatalf("expected EscHorizontalTabSet, got %#v", esc)
	}
}

func TestParseEscUnspecifiedWithIntermediate(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("\x1b)X"))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %v", len(actions), actions)
	}
	esc := actions[0].(escape.ActionEsc).Esc.(escape.EscUnspecified)
	if esc.Intermediate == nil || *esc.Intermediate != ')' || esc.Control != 'X' {
		t.Fatalf("expected Unspecified{')', 'X'}, got %#v", esc)
	}
}

func TestStreamingSplitEquivalence(t *testing.T) {
	input := []byte("\x1b[38;2;10;20;30mhi\x1b]2;title\x07")

	whole := New().ParseAsVec(input)

	for split := 0; split <= len(input); split++ {
		p := New()
		var got []escape.Action
		p.Parse(input[:split], func(a escape.Action) { got = append(got, a) })
		p.Parse(input[split:], func(a escape.Action) { got = append(got, a) })
		if len(got) != len(whole) {
			t.Fatalf("split at %d: got %d actions, want %d (%v vs %v)", split, len(got), len(whole), got, whole)
		}
		for i := range got {
			if !sameAction(got[i], whole[i]) {
				t.Fatalf("split at %d: action %d = %#v, want %#v", split, i, got[i], whole[i])
			}
		}
	}
}

func sameAction(a, b escape.Action) bool {
	// Structural comparison via the Go-syntax rendering, which covers
	// every field of the fixed-shape actions this module produces.
	return actionString(a) == actionString(b)
}

func actionString(a escape.Action) string {
	switch v := a.(type) {
	case escape.ActionPrint:
		return "print:" + string(rune(v))
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func TestParseFirstFramesOneByteAtATime(t *testing.T) {
	p := New()
	input := []byte("ab\x1b[1m")

	action, n, ok := p.ParseFirst(input)
	if !ok || n != 1 {
		t.Fatalf("expected first action to consume 1 byte, got n=%d ok=%v", n, ok)
	}
	if pr, ok := action.(escape.ActionPrint); !ok || rune(pr) != 'a' {
		t.Fatalf("expected Print('a'), got %#v", action)
	}

	action, n, ok = p.ParseFirst(input[1:])
	if !ok || n != 1 {
		t.Fatalf("expected second action to consume 1 byte, got n=%d ok=%v", n, ok)
	}
	if pr, ok := action.(escape.ActionPrint); !ok || rune(pr) != 'b' {
		t.Fatalf("expected Print('b'), got %#v", action)
	}

	actions, n, ok := p.ParseFirstAsVec(input[2:])
	if !ok || n != len("\x1b[1m") {
		t.Fatalf("expected CSI to consume %d bytes, got n=%d ok=%v", len("\x1b[1m"), n, ok)
	}
	if len(actions) != 1 {
		t.Fatalf("expected 1 action from bold CSI, got %d", len(actions))
	}
}

func TestParseFirstIncompleteSequenceReturnsFalse(t *testing.T) {
	p := New()
	action, n, ok := p.ParseFirst([]byte("\x1b[1"))
	if ok {
		t.Fatalf("expected incomplete CSI to report ok=false, got action=%#v n=%d", action, n)
	}
	// Feeding the terminator now should complete the sequence using the
	// state retained from the prior partial call.
	actions, n, ok := p.ParseFirstAsVec([]byte("m"))
	if !ok || n != 1 {
		t.Fatalf("expected terminator to complete sequence, got n=%d ok=%v", n, ok)
	}
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
}

func TestByteAccountingRoundTrip(t *testing.T) {
	input := []byte("ab\x1b[1;3mcd\x1b]0;t\x07")
	p := New()
	total := 0
	for total < len(input) {
		_, n, ok := p.ParseFirst(input[total:])
		if !ok {
			t.Fatalf("ParseFirst failed to make progress at offset %d of %q", total, input)
		}
		total += n
	}
	if total != len(input) {
		t.Fatalf("consumed %d bytes, want %d", total, len(input))
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	cases := []string{
		"h",
		"\n",
		"\x1b[1m",
		"\x1b[1;3m",
		"\x1b[2A",
		"\x1b[?25h",
		"\x1bH",
		"\x1b(0",
		"\x1b]2;some title\x07",
		"\x1b]8;;https://example.com/\x07",
	}
	for _, input := range cases {
		actions := New().ParseAsVec([]byte(input))
		if len(actions) == 0 {
			t.Fatalf("parse(%q) produced no actions", input)
		}
		if got := escape.EncodeAll(actions); got != input {
			t.Fatalf("EncodeAll(parse(%q)) = %q", input, got)
		}
	}
}

func TestDeviceControlEnvelope(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("\x1bP1$qhi\x1b\\"))
	if len(actions) < 2 {
		t.Fatalf("expected at least Enter+Exit, got %d: %v", len(actions), actions)
	}
	if _, ok := actions[0].(escape.ActionDeviceControl).Mode.(escape.DeviceControlEnter); !ok {
		t.Fatalf("expected first action to be DeviceControlEnter, got %#v", actions[0])
	}
	last := actions[len(actions)-1].(escape.ActionDeviceControl)
	if _, ok := last.Mode.(escape.DeviceControlExit); !ok {
		t.Fatalf("expected last action to be DeviceControlExit, got %#v", last)
	}
	var data []byte
	for _, a := range actions[1 : len(actions)-1] {
		d := a.(escape.ActionDeviceControl).Mode.(escape.DeviceControlData)
		data = append(data, byte(d))
	}
	if string(data) != "hi" {
		t.Fatalf("expected passthrough data %q, got %q", "hi", data)
	}
}

func TestUTF8StreamingAcrossCalls(t *testing.T) {
	// "é" is 0xC3 0xA9 in UTF-8.
	full := []byte{0xC3, 0xA9}
	p := New()
	var actions []escape.Action
	p.Parse(full[:1], func(a escape.Action) { actions = append(actions, a) })
	if len(actions) != 0 {
		t.Fatalf("expected no action from a lone lead byte, got %v", actions)
	}
	p.Parse(full[1:], func(a escape.Action) { actions = append(actions, a) })
	if len(actions) != 1 {
		t.Fatalf("expected 1 action once the rune completes, got %v", actions)
	}
	pr, ok := actions[0].(escape.ActionPrint)
	if !ok || rune(pr) != 'é' {
		t.Fatalf("expected Print('é'), got %#v", actions[0])
	}
}

func TestC0ExecutesInsideCSI(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("\x1b[1\nm"))
	// The LF executes in place without disturbing the CSI in progress.
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d: %v", len(actions), actions)
	}
	ctrl, ok := actions[0].(escape.ActionControl)
	if !ok || escape.ControlCode(ctrl) != escape.ControlLF {
		t.Fatalf("expected Control(LF) first, got %#v", actions[0])
	}
	csi, ok := actions[1].(escape.ActionCSI)
	if !ok {
		t.Fatalf("expected the CSI still to dispatch, got %#v", actions[1])
	}
	if _, ok := csi.CSI.(escape.Sgr); !ok {
		t.Fatalf("expected Sgr, got %#v", csi.CSI)
	}
}

func TestEscRestartsMidCSI(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("\x1b[1\x1bH"))
	// A fresh ESC abandons the half-built CSI and starts over.
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %v", len(actions), actions)
	}
	esc, ok := actions[0].(escape.ActionEsc)
	if !ok {
		t.Fatalf("expected ActionEsc, got %#v", actions[0])
	}
	code, ok := esc.Esc.(escape.EscCodeAction)
	if !ok || code.Code != escape.EscHorizontalTabSet {
		t.Fatalf("expected EscHorizontalTabSet, got %#v", esc.Esc)
	}
}

func TestOSCOverflowDegradesToUnspecified(t *testing.T) {
	p := New()
	p.OSCLimit = 8
	payload := append([]byte("\x1b]2;"), make([]byte, 32)...)
	for i := range payload[4:] {
		payload[4+i] = 'x'
	}
	payload = append(payload, 0x07)
	actions := p.ParseAsVec(payload)
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %v", len(actions), actions)
	}
	osc := actions[0].(escape.ActionOSC)
	if _, ok := osc.OSC.(escape.OSCUnspecified); !ok {
		t.Fatalf("expected overflowed OSC to dispatch as Unspecified, got %#v", osc.OSC)
	}
}

func TestCANAbortsMidEscape(t *testing.T) {
	p := New()
	actions := p.ParseAsVec([]byte("\x1b[1\x18m"))
	// CAN (0x18) aborts the CSI in progress; the following 'm' is then
	// ordinary printable text in Ground state.
	if len(actions) != 1 {
		t.Fatalf("expected 1 action (printed 'm'), got %d: %v", len(actions), actions)
	}
	pr, ok := actions[0].(escape.ActionPrint)
	if !ok || rune(pr) != 'm' {
		t.Fatalf("expected Print('m'), got %#v", actions[0])
	}
}
