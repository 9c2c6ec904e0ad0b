// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/renderer.go
// Summary: ConsoleRenderer.RenderTo, applying a Change list to a legacy
// console screen buffer.
// Notes: The legacy console API has no escape-sequence semantics; every
// high-level change is reconciled into absolute buffer operations here.

package console

import (
	"fmt"

	"github.com/framegrace/texelwiz/escape"
)

// ConsoleRenderer applies Change lists to a ConsoleOutputHandle,
// carrying a single running attribute state between changes.
type ConsoleRenderer struct {
	currentAttr escape.CellAttributes
}

// NewConsoleRenderer returns a renderer with default attributes.
func NewConsoleRenderer() *ConsoleRenderer {
	return &ConsoleRenderer{currentAttr: escape.DefaultCellAttributes()}
}

// RenderTo applies changes in order, returning the first I/O error
// encountered. No partial rollback, no retries; already-applied changes
// remain visible on error.
func (r *ConsoleRenderer) RenderTo(changes []Change, out ConsoleOutputHandle) error {
	for _, change := range changes {
		if err := r.apply(change, out); err != nil {
			return err
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush console output: %w", err)
	}
	if err := out.SetAttr(toAttrWord(r.currentAttr)); err != nil {
		return fmt.Errorf("failed to set final console attribute: %w", err)
	}
	return nil
}

func (r *ConsoleRenderer) apply(change Change, out ConsoleOutputHandle) error {
	switch c := change.(type) {
	case ClearScreen:
		return r.clearScreen(c.Background, out)
	case ClearToEndOfLine:
		return r.clearToEndOfLine(c.Background, out)
	case ClearToEndOfScreen:
		return r.clearToEndOfScreen(c.Background, out)
	case Text:
		return r.text(string(c), out)
	case CursorPosition:
		return r.cursorPosition(c, out)
	case Attribute:
		r.currentAttr = c.Change.Apply(r.currentAttr)
		return nil
	case AllAttributes:
		r.currentAttr = c.Attrs
		return nil
	case CursorColor, CursorShape, Title:
		// The legacy console API can't represent these; a compositing
		// caller decides what, if anything, a title change should do.
		return nil
	case Image:
		return r.image(c, out)
	case ScrollRegionUp:
		return r.scrollRegion(c.FirstRow, c.RegionSize, -c.ScrollCount, out)
	case ScrollRegionDown:
		return r.scrollRegion(c.FirstRow, c.RegionSize, c.ScrollCount, out)
	default:
		return nil
	}
}

// clearScreen clears from the viewport top down to the last row of the
// screen buffer (dwSize.Y), not just the viewport; rows above the
// viewport are left untouched.
func (r *ConsoleRenderer) clearScreen(bg escape.Color, out ConsoleOutputHandle) error {
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush before clear screen: %w", err)
	}
	r.currentAttr = escape.DefaultCellAttributes().SetBackground(bg)

	info, err := out.GetBufferInfo()
	if err != nil {
		return fmt.Errorf("failed to get console buffer info: %w", err)
	}
	if info.Window.Left != 0 {
		if err := out.SetViewport(0, info.Window.Top, info.Window.Right-info.Window.Left, info.Window.Bottom); err != nil {
			return fmt.Errorf("failed to reset scrolled viewport: %w", err)
		}
	}
	visibleWidth := info.Size.X
	visibleHeight := info.Size.Y - info.Window.Top
	numSpaces := visibleWidth * visibleHeight
	if err := out.FillChar(' ', 0, info.Window.Top, numSpaces); err != nil {
		return fmt.Errorf("failed to clear screen characters: %w", err)
	}
	if err := out.FillAttr(toAttrWord(r.currentAttr), 0, info.Window.Top, numSpaces); err != nil {
		return fmt.Errorf("failed to clear screen attributes: %w", err)
	}
	return wrapCursor(out.SetCursorPosition(0, info.Window.Top))
}

func (r *ConsoleRenderer) clearToEndOfLine(bg escape.Color, out ConsoleOutputHandle) error {
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush before clear to end of line: %w", err)
	}
	r.currentAttr = escape.DefaultCellAttributes().SetBackground(bg)

	info, err := out.GetBufferInfo()
	if err != nil {
		return fmt.Errorf("failed to get console buffer info: %w", err)
	}
	width := saturatingSub(info.Size.X, info.CursorX)
	if err := out.FillChar(' ', info.CursorX, info.CursorY, width); err != nil {
		return fmt.Errorf("failed to clear to end of line characters: %w", err)
	}
	return wrapAttr(out.FillAttr(toAttrWord(r.currentAttr), info.CursorX, info.CursorY, width))
}

func (r *ConsoleRenderer) clearToEndOfScreen(bg escape.Color, out ConsoleOutputHandle) error {
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush before clear to end of screen: %w", err)
	}
	r.currentAttr = escape.DefaultCellAttributes().SetBackground(bg)

	info, err := out.GetBufferInfo()
	if err != nil {
		return fmt.Errorf("failed to get console buffer info: %w", err)
	}
	width := saturatingSub(info.Size.X, info.CursorX)
	if err := out.FillChar(' ', info.CursorX, info.CursorY, width); err != nil {
		return fmt.Errorf("failed to clear to end of screen characters: %w", err)
	}
	if err := out.FillAttr(toAttrWord(r.currentAttr), info.CursorX, info.CursorY, width); err != nil {
		return fmt.Errorf("failed to clear to end of screen attributes: %w", err)
	}

	visibleWidth := info.Size.X
	visibleHeight := saturatingSub(info.Size.Y, info.CursorY+1)
	numSpaces := visibleWidth * visibleHeight
	if err := out.FillChar(' ', 0, info.CursorY+1, numSpaces); err != nil {
		return fmt.Errorf("failed to clear trailing rows: %w", err)
	}
	return wrapAttr(out.FillAttr(toAttrWord(r.currentAttr), 0, info.CursorY+1, numSpaces))
}

func (r *ConsoleRenderer) text(s string, out ConsoleOutputHandle) error {
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush before text: %w", err)
	}
	if err := out.SetAttr(toAttrWord(r.currentAttr)); err != nil {
		return fmt.Errorf("failed to set text attribute: %w", err)
	}
	if _, err := out.Write([]byte(s)); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

func (r *ConsoleRenderer) cursorPosition(c CursorPosition, out ConsoleOutputHandle) error {
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush before cursor move: %w", err)
	}
	info, err := out.GetBufferInfo()
	if err != nil {
		return fmt.Errorf("failed to get console buffer info: %w", err)
	}

	x := resolveHorizontal(c.X, info)
	y := resolveVertical(c.Y, info)
	return wrapCursor(out.SetCursorPosition(x, y))
}

func resolveHorizontal(p Position, info BufferInfo) int {
	switch v := p.(type) {
	case AbsolutePosition:
		return v.N
	case RelativePosition:
		return info.CursorX + v.D
	case EndRelativePosition:
		return info.Size.X - v.D
	default: // NoChangePosition
		return info.CursorX
	}
}

func resolveVertical(p Position, info BufferInfo) int {
	switch v := p.(type) {
	case AbsolutePosition:
		return info.Window.Top + v.N
	case RelativePosition:
		return info.CursorY + v.D
	case EndRelativePosition:
		return info.Window.Bottom - v.D
	default: // NoChangePosition
		return info.CursorY
	}
}

func (r *ConsoleRenderer) image(c Image, out ConsoleOutputHandle) error {
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush before image fallback: %w", err)
	}
	info, err := out.GetBufferInfo()
	if err != nil {
		return fmt.Errorf("failed to get console buffer info: %w", err)
	}
	for y := 0; y < c.Height; y++ {
		if err := out.FillChar(' ', info.CursorX, info.CursorY+y, c.Width); err != nil {
			return fmt.Errorf("failed to fill image fallback rectangle: %w", err)
		}
	}
	return wrapCursor(out.SetCursorPosition(info.CursorX+c.Width, info.CursorY))
}

func (r *ConsoleRenderer) scrollRegion(firstRow, regionSize, signedScrollCount int, out ConsoleOutputHandle) error {
	if regionSize <= 0 {
		return nil
	}
	info, err := out.GetBufferInfo()
	if err != nil {
		return fmt.Errorf("failed to get console buffer info: %w", err)
	}
	err = out.ScrollRegion(
		info.Window.Left,
		info.Window.Top+firstRow,
		info.Window.Right,
		info.Window.Top+firstRow+regionSize,
		0,
		signedScrollCount,
		toAttrWord(r.currentAttr),
	)
	if err != nil {
		return fmt.Errorf("failed to scroll console region: %w", err)
	}
	return nil
}

func saturatingSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}

func wrapCursor(err error) error {
	if err != nil {
		return fmt.Errorf("failed to set cursor position: %w", err)
	}
	return nil
}

func wrapAttr(err error) error {
	if err != nil {
		return fmt.Errorf("failed to fill console attribute: %w", err)
	}
	return nil
}
