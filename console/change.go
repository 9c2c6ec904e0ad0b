// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/change.go
// Summary: The Change list ConsoleRenderer consumes.

package console

import "github.com/framegrace/texelwiz/escape"

// Change is the tagged union of instructions RenderTo applies in order.
type Change interface {
	isChange()
}

// Position resolves one axis of a CursorPosition change against the
// current BufferInfo at render time.
type Position interface {
	isPosition()
}

type NoChangePosition struct{}
type AbsolutePosition struct{ N int }
type RelativePosition struct{ D int }
type EndRelativePosition struct{ D int }

func (NoChangePosition) isPosition()    {}
func (AbsolutePosition) isPosition()    {}
func (RelativePosition) isPosition()    {}
func (EndRelativePosition) isPosition() {}

type ClearScreen struct{ Background escape.Color }
type ClearToEndOfLine struct{ Background escape.Color }
type ClearToEndOfScreen struct{ Background escape.Color }
type Text string

// CursorPosition moves the cursor; X resolves against the full buffer
// width, Y is viewport-relative.
type CursorPosition struct {
	X Position
	Y Position
}

// AttributeChange mutates a single field of the running CellAttributes;
// Apply performs that mutation.
type AttributeChange interface {
	Apply(escape.CellAttributes) escape.CellAttributes
}

type Attribute struct{ Change AttributeChange }
type AllAttributes struct{ Attrs escape.CellAttributes }

// CursorColor and CursorShape are accepted for API completeness but the
// legacy console API has no representation for them; RenderTo no-ops
// them, as it does Title.
type CursorColor struct{ Color escape.Color }
type CursorShape struct{ Shape string }
type Title struct{ Text string }

// Image is rendered as a blank rectangle fallback: the legacy console
// API has no pixel surface.
type Image struct {
	Width, Height int
}

// ScrollRegionUp/Down scroll a sub-rectangle of the viewport, filling
// vacated rows with the current attribute.
type ScrollRegionUp struct {
	FirstRow, RegionSize, ScrollCount int
}
type ScrollRegionDown struct {
	FirstRow, RegionSize, ScrollCount int
}

func (ClearScreen) isChange()        {}
func (ClearToEndOfLine) isChange()   {}
func (ClearToEndOfScreen) isChange() {}
func (Text) isChange()               {}
func (CursorPosition) isChange()     {}
func (Attribute) isChange()          {}
func (AllAttributes) isChange()      {}
func (CursorColor) isChange()        {}
func (CursorShape) isChange()        {}
func (Title) isChange()              {}
func (Image) isChange()              {}
func (ScrollRegionUp) isChange()     {}
func (ScrollRegionDown) isChange()   {}
