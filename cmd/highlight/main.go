// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/highlight/main.go
// Summary: Reads a source file from stdin or argv, detects its
// language with go-enry, tokenizes it with Chroma, and renders the
// token stream as a console.Change list through console.ConsoleRenderer.
// On Windows this targets the real legacy console API, elsewhere a
// raw-ANSI fallback writer.

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/texelwiz/config"
	"github.com/framegrace/texelwiz/console"
	"github.com/framegrace/texelwiz/escape"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("highlight: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var path string
	var src []byte
	if len(os.Args) > 1 {
		path = os.Args[1]
		src, err = os.ReadFile(path)
		if err != nil {
			return err
		}
	} else {
		src, err = io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
	}

	lexer := resolveLexer(path, src)
	style := styles.Get(cfg.HighlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	changes, err := tokenize(lexer, style, string(src))
	if err != nil {
		return err
	}

	out, err := openOutputHandle()
	if err != nil {
		return err
	}
	defer out.Flush()

	r := console.NewConsoleRenderer()
	return r.RenderTo(changes, out)
}

// resolveLexer picks a Chroma lexer from the file extension, falling
// back to go-enry content-based language detection, then Chroma's own
// content analysis.
func resolveLexer(path string, src []byte) chroma.Lexer {
	if path != "" {
		if l := lexers.Match(path); l != nil {
			return l
		}
		if lang := enry.GetLanguage(path, src); lang != "" {
			if l := lexers.Get(lang); l != nil {
				return l
			}
		}
	}
	if l := lexers.Analyse(string(src)); l != nil {
		return l
	}
	return lexers.Fallback
}

// tokenize maps each token run to its style attributes, appending a
// Change per run to a flat list a ConsoleRenderer can play back in
// order.
func tokenize(lexer chroma.Lexer, style *chroma.Style, text string) ([]console.Change, error) {
	lexer = chroma.Coalesce(lexer)
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize source: %w", err)
	}

	baseColour := style.Get(chroma.Text).Colour
	var changes []console.Change
	var lastAttrs escape.CellAttributes
	first := true

	for _, tok := range tokens {
		fg, attrs, distinct := resolveTokenStyle(style.Get(tok.Type), baseColour)
		cellAttrs := escape.DefaultCellAttributes()
		if distinct {
			cellAttrs = cellAttrs.SetForeground(fg)
		}
		cellAttrs = applyTokenAttrs(cellAttrs, attrs)

		if first || cellAttrs != lastAttrs {
			changes = append(changes, console.AllAttributes{Attrs: cellAttrs})
			lastAttrs = cellAttrs
			first = false
		}
		changes = append(changes, console.Text(tok.Value))
	}
	return changes, nil
}

type tokenAttrs struct {
	bold, italic, underline bool
}

func resolveTokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour) (escape.Color, tokenAttrs, bool) {
	attrs := tokenAttrs{
		bold:      entry.Bold == chroma.Yes,
		italic:    entry.Italic == chroma.Yes,
		underline: entry.Underline == chroma.Yes,
	}
	if !entry.Colour.IsSet() || entry.Colour == baseColour {
		return escape.Color{}, attrs, false
	}
	rgb := escape.RGB{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue()}
	return escape.TrueColorWithDefaultFallback(rgb), attrs, true
}

func applyTokenAttrs(attrs escape.CellAttributes, t tokenAttrs) escape.CellAttributes {
	if t.bold {
		attrs = attrs.SetIntensity(escape.IntensityBold)
	}
	if t.italic {
		attrs = attrs.SetItalic(true)
	}
	if t.underline {
		attrs = attrs.SetUnderline(escape.UnderlineSingle)
	}
	return attrs
}
