// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"testing"

	"github.com/framegrace/texelwiz/escape"
)

// fakeHandle is an in-memory ConsoleOutputHandle recorder, standing in
// for a real Win32 console so RenderTo's bookkeeping can be exercised
// without an actual console attached.
type fakeHandle struct {
	info        BufferInfo
	written     []byte
	lastAttr    uint16
	fillCharLog []fillCall
	fillAttrLog []fillCall
	scrollLog   []scrollCall
	flushes     int
	cursorX     int
	cursorY     int
}

type fillCall struct {
	X, Y, Count int
	Ch          rune
	Word        uint16
}

type scrollCall struct {
	Left, Top, Right, Bottom, DX, DY int
	FillAttr                         uint16
}

func newFakeHandle(width, height int) *fakeHandle {
	return &fakeHandle{
		info: BufferInfo{
			Size:   Size{X: width, Y: height},
			Window: Rect{Left: 0, Top: 0, Right: width - 1, Bottom: height - 1},
		},
	}
}

func (f *fakeHandle) GetBufferInfo() (BufferInfo, error) {
	info := f.info
	info.CursorX = f.cursorX
	info.CursorY = f.cursorY
	return info, nil
}

func (f *fakeHandle) SetViewport(left, top, right, bottom int) error {
	f.info.Window = Rect{Left: left, Top: top, Right: right, Bottom: bottom}
	return nil
}

func (f *fakeHandle) FillChar(ch rune, x, y, count int) error {
	f.fillCharLog = append(f.fillCharLog, fillCall{X: x, Y: y, Count: count, Ch: ch})
	return nil
}

func (f *fakeHandle) FillAttr(word uint16, x, y, count int) error {
	f.fillAttrLog = append(f.fillAttrLog, fillCall{X: x, Y: y, Count: count, Word: word})
	return nil
}

func (f *fakeHandle) SetCursorPosition(x, y int) error {
	f.cursorX, f.cursorY = x, y
	return nil
}

func (f *fakeHandle) SetAttr(word uint16) error {
	f.lastAttr = word
	return nil
}

func (f *fakeHandle) ScrollRegion(left, top, right, bottom, dx, dy int, fillAttr uint16) error {
	f.scrollLog = append(f.scrollLog, scrollCall{left, top, right, bottom, dx, dy, fillAttr})
	return nil
}

func (f *fakeHandle) Write(b []byte) (int, error) {
	f.written = append(f.written, b...)
	return len(b), nil
}

func (f *fakeHandle) Flush() error {
	f.flushes++
	return nil
}

func TestRenderClearScreenFillsFullWidth(t *testing.T) {
	h := newFakeHandle(80, 24)
	h.cursorX, h.cursorY = 40, 10
	h.info.Window.Top = 2

	r := NewConsoleRenderer()
	if err := r.RenderTo([]Change{ClearScreen{Background: escape.PaletteIndex(1)}}, h); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if len(h.fillCharLog) != 1 {
		t.Fatalf("expected 1 fill_char call, got %d", len(h.fillCharLog))
	}
	call := h.fillCharLog[0]
	wantCount := 80 * (24 - 2)
	if call.X != 0 || call.Y != 2 || call.Count != wantCount {
		t.Fatalf("fill_char = %+v, want x=0 y=2 count=%d", call, wantCount)
	}
	if h.cursorX != 0 || h.cursorY != 2 {
		t.Fatalf("cursor after clear = (%d,%d), want (0,2)", h.cursorX, h.cursorY)
	}
}

func TestRenderClearScreenSnapsScrolledViewport(t *testing.T) {
	h := newFakeHandle(80, 24)
	h.info.Window = Rect{Left: 5, Top: 0, Right: 84, Bottom: 23}

	r := NewConsoleRenderer()
	if err := r.RenderTo([]Change{ClearScreen{Background: escape.Default()}}, h); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if h.info.Window.Left != 0 {
		t.Fatalf("expected viewport snapped back to column 0, got %+v", h.info.Window)
	}
}

func TestRenderTextEmitsAttrThenBytes(t *testing.T) {
	h := newFakeHandle(80, 24)
	r := NewConsoleRenderer()
	changes := []Change{
		Attribute{Change: ChangeIntensity{Intensity: escape.IntensityBold}},
		Text("hi"),
	}
	if err := r.RenderTo(changes, h); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if string(h.written) != "hi" {
		t.Fatalf("written = %q, want %q", h.written, "hi")
	}
	// toAttrWord does not encode Intensity; the intensity bit comes from
	// the default bright-white foreground.
	if h.lastAttr&foregroundIntensity == 0 {
		t.Fatalf("expected foreground intensity bit set in attr word 0x%04x", h.lastAttr)
	}
}

func TestRenderCursorPositionResolution(t *testing.T) {
	h := newFakeHandle(80, 24)
	h.info.Window.Top = 3
	h.cursorX, h.cursorY = 10, 10

	r := NewConsoleRenderer()
	changes := []Change{
		CursorPosition{X: AbsolutePosition{N: 5}, Y: AbsolutePosition{N: 2}},
	}
	if err := r.RenderTo(changes, h); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if h.cursorX != 5 || h.cursorY != 5 { // Top(3) + Absolute(2)
		t.Fatalf("cursor = (%d,%d), want (5,5)", h.cursorX, h.cursorY)
	}

	changes = []Change{CursorPosition{X: NoChangePosition{}, Y: EndRelativePosition{D: 1}}}
	if err := r.RenderTo(changes, h); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if h.cursorY != h.info.Window.Bottom-1 {
		t.Fatalf("cursor y = %d, want %d", h.cursorY, h.info.Window.Bottom-1)
	}
}

func TestRenderScrollRegionNoopWhenZeroSize(t *testing.T) {
	h := newFakeHandle(80, 24)
	r := NewConsoleRenderer()
	changes := []Change{ScrollRegionUp{FirstRow: 0, RegionSize: 0, ScrollCount: 1}}
	if err := r.RenderTo(changes, h); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if len(h.scrollLog) != 0 {
		t.Fatalf("expected no scroll calls for zero region size, got %d", len(h.scrollLog))
	}
}

func TestRenderScrollRegionUpNegatesDY(t *testing.T) {
	h := newFakeHandle(80, 24)
	h.info.Window = Rect{Left: 0, Top: 0, Right: 79, Bottom: 23}
	r := NewConsoleRenderer()
	changes := []Change{ScrollRegionUp{FirstRow: 2, RegionSize: 5, ScrollCount: 3}}
	if err := r.RenderTo(changes, h); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if len(h.scrollLog) != 1 {
		t.Fatalf("expected 1 scroll call, got %d", len(h.scrollLog))
	}
	if h.scrollLog[0].DY != -3 {
		t.Fatalf("scroll up DY = %d, want -3", h.scrollLog[0].DY)
	}
}

func TestRenderImageFallbackBlanksAndAdvances(t *testing.T) {
	h := newFakeHandle(80, 24)
	h.cursorX, h.cursorY = 5, 4

	r := NewConsoleRenderer()
	if err := r.RenderTo([]Change{Image{Width: 3, Height: 2}}, h); err != nil {
		t.Fatalf("RenderTo: %v", err)
	}
	if len(h.fillCharLog) != 2 {
		t.Fatalf("expected 2 fill_char calls, got %d: %+v", len(h.fillCharLog), h.fillCharLog)
	}
	for i, want := range []fillCall{
		{X: 5, Y: 4, Count: 3, Ch: ' '},
		{X: 5, Y: 5, Count: 3, Ch: ' '},
	} {
		if h.fillCharLog[i] != want {
			t.Fatalf("fill_char[%d] = %+v, want %+v", i, h.fillCharLog[i], want)
		}
	}
	if h.cursorX != 8 || h.cursorY != 4 {
		t.Fatalf("cursor after image = (%d,%d), want (8,4)", h.cursorX, h.cursorY)
	}
}

func TestRenderAttributeWordEncodesReverseAndUnderline(t *testing.T) {
	attrs := escape.DefaultCellAttributes().SetReverse(true).SetUnderline(escape.UnderlineSingle)
	word := toAttrWord(attrs)
	if word&commonLVBReverseVideo == 0 {
		t.Fatalf("expected reverse bit set in 0x%04x", word)
	}
	if word&commonLVBUnderscore == 0 {
		t.Fatalf("expected underscore bit set in 0x%04x", word)
	}
}

func TestAttrWordEncodesPaletteColor(t *testing.T) {
	attrs := escape.DefaultCellAttributes().SetForeground(escape.PaletteIndex(9)) // bright red
	word := toAttrWord(attrs)
	want := uint16(foregroundIntensity | foregroundRed)
	if word&0x000F != want {
		t.Fatalf("fg bits = 0x%04x, want 0x%04x", word&0x000F, want)
	}
}

// TestAttrWordOutOfRangePaletteIndexDefaultsAsymmetrically exercises an
// extended 256-color index (e.g. from the grayscale ramp 232-255) that
// falls outside the 16 bit-mapped cases: foreground must fall back to
// white, background to black, not the same bit pattern for both.
func TestAttrWordOutOfRangePaletteIndexDefaultsAsymmetrically(t *testing.T) {
	fgAttrs := escape.DefaultCellAttributes().SetForeground(escape.PaletteIndex(240))
	fgWord := toAttrWord(fgAttrs)
	wantFg := uint16(foregroundBlue | foregroundRed | foregroundGreen | foregroundIntensity)
	if fgWord&0x000F != wantFg {
		t.Fatalf("out-of-range fg bits = 0x%04x, want white 0x%04x", fgWord&0x000F, wantFg)
	}

	bgAttrs := escape.DefaultCellAttributes().SetBackground(escape.PaletteIndex(240))
	bgWord := toAttrWord(bgAttrs)
	if bgWord&0x00F0 != 0 {
		t.Fatalf("out-of-range bg bits = 0x%04x, want black 0x0000", bgWord&0x00F0)
	}
}
