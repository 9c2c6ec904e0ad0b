// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: escape/sgr.go
// Summary: SGR (CSI ... m) subcommand <-> numeric parameter mapping.
//
// Kept in the escape package (rather than escape/parser) so that the
// dispatch side (parsing numeric params into SgrAttribute values) and
// the encode side (turning SgrAttribute values back into numeric
// params) can't drift out of sync with each other.

package escape

// ParseSgrParams consumes the numeric SGR parameter list and returns one
// Sgr per recognized subcommand, in left-to-right order ("\x1b[1;3m"
// decomposes into two Sgr values). Extended color forms (38/48;5;n and
// 38/48;2;r;g;b) consume the trailing params that belong to them.
func ParseSgrParams(params []int) []Sgr {
	var out []Sgr
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			out = append(out, Sgr{SgrReset{}})
		case p == 1:
			out = append(out, Sgr{SgrIntensity{IntensityBold}})
		case p == 2:
			out = append(out, Sgr{SgrIntensity{IntensityHalf}})
		case p == 22:
			out = append(out, Sgr{SgrIntensity{IntensityNormal}})
		case p == 3:
			out = append(out, Sgr{SgrItalic{true}})
		case p == 23:
			out = append(out, Sgr{SgrItalic{false}})
		case p == 4:
			out = append(out, Sgr{SgrUnderline{UnderlineSingle}})
		case p == 21:
			out = append(out, Sgr{SgrUnderline{UnderlineDouble}})
		case p == 24:
			out = append(out, Sgr{SgrUnderline{UnderlineNone}})
		case p == 5:
			out = append(out, Sgr{SgrBlink{true}})
		case p == 25:
			out = append(out, Sgr{SgrBlink{false}})
		case p == 7:
			out = append(out, Sgr{SgrReverse{true}})
		case p == 27:
			out = append(out, Sgr{SgrReverse{false}})
		case p == 8:
			out = append(out, Sgr{SgrInvisible{true}})
		case p == 28:
			out = append(out, Sgr{SgrInvisible{false}})
		case p == 9:
			out = append(out, Sgr{SgrStrikeThrough{true}})
		case p == 29:
			out = append(out, Sgr{SgrStrikeThrough{false}})
		case p >= 10 && p <= 19:
			out = append(out, Sgr{SgrFont{p - 10}})
		case p >= 30 && p <= 37:
			out = append(out, Sgr{SgrForeground{PaletteIndex(uint8(p - 30))}})
		case p == 39:
			out = append(out, Sgr{SgrForeground{Default()}})
		case p >= 90 && p <= 97:
			out = append(out, Sgr{SgrForeground{PaletteIndex(uint8(p-90) + 8)}})
		case p >= 40 && p <= 47:
			out = append(out, Sgr{SgrBackground{PaletteIndex(uint8(p - 40))}})
		case p == 49:
			out = append(out, Sgr{SgrBackground{Default()}})
		case p >= 100 && p <= 107:
			out = append(out, Sgr{SgrBackground{PaletteIndex(uint8(p-100) + 8)}})
		case p == 38:
			if c, n := parseExtendedColor(params[i+1:]); n > 0 {
				out = append(out, Sgr{SgrForeground{c}})
				i += n
			}
		case p == 48:
			if c, n := parseExtendedColor(params[i+1:]); n > 0 {
				out = append(out, Sgr{SgrBackground{c}})
				i += n
			}
		}
	}
	return out
}

// parseExtendedColor parses the tail of a 38/48 extended color sequence
// (either "5;n" for a palette index or "2;r;g;b" for true color) and
// returns the number of trailing params consumed.
func parseExtendedColor(rest []int) (Color, int) {
	if len(rest) == 0 {
		return Color{}, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return Color{}, 0
		}
		return PaletteIndex(uint8(rest[1])), 2
	case 2:
		if len(rest) < 4 {
			return Color{}, 0
		}
		return TrueColorWithDefaultFallback(RGB{uint8(rest[1]), uint8(rest[2]), uint8(rest[3])}), 4
	default:
		return Color{}, 0
	}
}

// EncodeSgrParams turns a single SgrAttribute back into its CSI numeric
// parameter list, the inverse of the relevant branch of ParseSgrParams.
func EncodeSgrParams(attr SgrAttribute) []int {
	switch v := attr.(type) {
	case SgrReset:
		return []int{0}
	case SgrIntensity:
		switch v.Intensity {
		case IntensityBold:
			return []int{1}
		case IntensityHalf:
			return []int{2}
		default:
			return []int{22}
		}
	case SgrItalic:
		if v.Value {
			return []int{3}
		}
		return []int{23}
	case SgrUnderline:
		switch v.Underline {
		case UnderlineSingle:
			return []int{4}
		case UnderlineDouble:
			return []int{21}
		default:
			return []int{24}
		}
	case SgrBlink:
		if v.Value {
			return []int{5}
		}
		return []int{25}
	case SgrReverse:
		if v.Value {
			return []int{7}
		}
		return []int{27}
	case SgrInvisible:
		if v.Value {
			return []int{8}
		}
		return []int{28}
	case SgrStrikeThrough:
		if v.Value {
			return []int{9}
		}
		return []int{29}
	case SgrFont:
		return []int{10 + v.N}
	case SgrForeground:
		return encodeColorParams(v.Color, 30, 90, 39, 38)
	case SgrBackground:
		return encodeColorParams(v.Color, 40, 100, 49, 48)
	default:
		return nil
	}
}

func encodeColorParams(c Color, base, brightBase, defaultCode, extendedCode int) []int {
	switch c.Mode {
	case ColorDefault:
		return []int{defaultCode}
	case ColorPaletteIndex, ColorTrueColorWithPaletteFallback:
		if c.Palette < 8 {
			return []int{base + int(c.Palette)}
		}
		if c.Palette < 16 {
			return []int{brightBase + int(c.Palette) - 8}
		}
		return []int{extendedCode, 5, int(c.Palette)}
	case ColorTrueColorWithDefaultFallback:
		return []int{extendedCode, 2, int(c.RGB.R), int(c.RGB.G), int(c.RGB.B)}
	default:
		return []int{defaultCode}
	}
}
