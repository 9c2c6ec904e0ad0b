// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: escape/cell_attributes.go
// Summary: The renderer-side attribute accumulator.

package escape

// Intensity is the bold/half-bright/normal text weight.
type Intensity int

const (
	IntensityNormal Intensity = iota
	IntensityBold
	IntensityHalf
)

// Underline distinguishes the underline styles a cell may carry. The
// console renderer collapses every non-None variant to a single bit,
// but the parser still needs to tell them apart for SGR.
type Underline int

const (
	UnderlineNone Underline = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// CellAttributes is the single running attribute state the renderer
// carries, mutated only by Attribute/AllAttributes changes.
type CellAttributes struct {
	Intensity     Intensity
	Underline     Underline
	Italic        bool
	Reverse       bool
	StrikeThrough bool
	Blink         bool
	Invisible     bool
	Foreground    Color
	Background    Color
	LineDrawing   bool
	Hyperlink     string // opaque handle; empty means none
}

// DefaultCellAttributes returns the zero-value attribute set: normal
// intensity, no underline, default colors, no hyperlink.
func DefaultCellAttributes() CellAttributes {
	return CellAttributes{
		Foreground: Default(),
		Background: Default(),
	}
}

func (a CellAttributes) SetIntensity(v Intensity) CellAttributes   { a.Intensity = v; return a }
func (a CellAttributes) SetUnderline(v Underline) CellAttributes   { a.Underline = v; return a }
func (a CellAttributes) SetItalic(v bool) CellAttributes           { a.Italic = v; return a }
func (a CellAttributes) SetReverse(v bool) CellAttributes          { a.Reverse = v; return a }
func (a CellAttributes) SetStrikeThrough(v bool) CellAttributes    { a.StrikeThrough = v; return a }
func (a CellAttributes) SetBlink(v bool) CellAttributes            { a.Blink = v; return a }
func (a CellAttributes) SetInvisible(v bool) CellAttributes        { a.Invisible = v; return a }
func (a CellAttributes) SetForeground(c Color) CellAttributes      { a.Foreground = c; return a }
func (a CellAttributes) SetBackground(c Color) CellAttributes      { a.Background = c; return a }
func (a CellAttributes) SetLineDrawing(v bool) CellAttributes      { a.LineDrawing = v; return a }
func (a CellAttributes) SetHyperlink(handle string) CellAttributes { a.Hyperlink = handle; return a }
