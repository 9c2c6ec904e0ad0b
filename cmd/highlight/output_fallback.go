// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/highlight/output_fallback.go
// Summary: A console.ConsoleOutputHandle that speaks raw ANSI/VT
// sequences instead of the Win32 console API, so cmd/highlight can run
// somewhere other than Windows. Buffer geometry comes from
// golang.org/x/term, not a real console screen buffer.

//go:build !windows

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/framegrace/texelwiz/console"
)

type ansiOutput struct {
	w         *bufio.Writer
	width     int
	height    int
	cursorX   int
	cursorY   int
	winTop    int
	winBottom int
}

func openOutputHandle() (console.ConsoleOutputHandle, error) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}
	return &ansiOutput{
		w:         bufio.NewWriter(os.Stdout),
		width:     width,
		height:    height,
		winBottom: height - 1,
	}, nil
}

func (o *ansiOutput) GetBufferInfo() (console.BufferInfo, error) {
	return console.BufferInfo{
		Size:    console.Size{X: o.width, Y: o.height},
		Window:  console.Rect{Left: 0, Top: o.winTop, Right: o.width - 1, Bottom: o.winBottom},
		CursorX: o.cursorX,
		CursorY: o.cursorY,
	}, nil
}

func (o *ansiOutput) SetViewport(left, top, right, bottom int) error {
	o.winTop, o.winBottom = top, bottom
	return nil
}

func (o *ansiOutput) FillChar(ch rune, x, y, count int) error {
	return o.fill(x, y, count, string(ch))
}

func (o *ansiOutput) FillAttr(word uint16, x, y, count int) error {
	// The legacy attribute word has no ANSI-side meaning on its own;
	// text runs carry their own SGR via SetAttr/Write, so this is a
	// bookkeeping no-op for the fallback path.
	return nil
}

func (o *ansiOutput) fill(x, y, count int, s string) error {
	if count <= 0 {
		return nil
	}
	if err := o.SetCursorPosition(x, y); err != nil {
		return err
	}
	_, err := o.w.WriteString(strings.Repeat(s, count))
	return err
}

func (o *ansiOutput) SetCursorPosition(x, y int) error {
	o.cursorX, o.cursorY = x, y
	_, err := fmt.Fprintf(o.w, "\x1b[%d;%dH", y+1, x+1)
	return err
}

func (o *ansiOutput) SetAttr(word uint16) error {
	var sgr []string
	sgr = append(sgr, "0")
	if word&0x4000 != 0 { // COMMON_LVB_REVERSE_VIDEO
		sgr = append(sgr, "7")
	}
	if word&0x8000 != 0 { // COMMON_LVB_UNDERSCORE
		sgr = append(sgr, "4")
	}
	_, err := fmt.Fprintf(o.w, "\x1b[%sm", strings.Join(sgr, ";"))
	return err
}

func (o *ansiOutput) ScrollRegion(left, top, right, bottom, dx, dy int, fillAttr uint16) error {
	if dy == 0 {
		return nil
	}
	if err := o.SetCursorPosition(left, top); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(o.w, "\x1b[%d;%dr", top+1, bottom+1); err != nil {
		return err
	}
	// Negative dy moves content up (SU); positive moves it down (SD).
	var err error
	if dy < 0 {
		_, err = fmt.Fprintf(o.w, "\x1b[%dS", -dy)
	} else {
		_, err = fmt.Fprintf(o.w, "\x1b[%dT", dy)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(o.w, "\x1b[1;%dr", o.height)
	return err
}

func (o *ansiOutput) Write(b []byte) (int, error) {
	return o.w.Write(b)
}

func (o *ansiOutput) Flush() error {
	return o.w.Flush()
}
