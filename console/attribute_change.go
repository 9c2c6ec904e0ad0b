// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/attribute_change.go
// Summary: Concrete AttributeChange variants, one per CellAttributes field.

package console

import "github.com/framegrace/texelwiz/escape"

type ChangeIntensity struct{ Intensity escape.Intensity }
type ChangeUnderline struct{ Underline escape.Underline }
type ChangeItalic struct{ Value bool }
type ChangeReverse struct{ Value bool }
type ChangeBlink struct{ Value bool }
type ChangeInvisible struct{ Value bool }
type ChangeStrikeThrough struct{ Value bool }
type ChangeForeground struct{ Color escape.Color }
type ChangeBackground struct{ Color escape.Color }
type ChangeHyperlink struct{ Handle string }

func (c ChangeIntensity) Apply(a escape.CellAttributes) escape.CellAttributes {
	return a.SetIntensity(c.Intensity)
}
func (c ChangeUnderline) Apply(a escape.CellAttributes) escape.CellAttributes {
	return a.SetUnderline(c.Underline)
}
func (c ChangeItalic) Apply(a escape.CellAttributes) escape.CellAttributes {
	return a.SetItalic(c.Value)
}
func (c ChangeReverse) Apply(a escape.CellAttributes) escape.CellAttributes {
	return a.SetReverse(c.Value)
}
func (c ChangeBlink) Apply(a escape.CellAttributes) escape.CellAttributes {
	return a.SetBlink(c.Value)
}
func (c ChangeInvisible) Apply(a escape.CellAttributes) escape.CellAttributes {
	return a.SetInvisible(c.Value)
}
func (c ChangeStrikeThrough) Apply(a escape.CellAttributes) escape.CellAttributes {
	return a.SetStrikeThrough(c.Value)
}
func (c ChangeForeground) Apply(a escape.CellAttributes) escape.CellAttributes {
	return a.SetForeground(c.Color)
}
func (c ChangeBackground) Apply(a escape.CellAttributes) escape.CellAttributes {
	return a.SetBackground(c.Color)
}
func (c ChangeHyperlink) Apply(a escape.CellAttributes) escape.CellAttributes {
	return a.SetHyperlink(c.Handle)
}
