// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/winconsole/handle_windows.go
// Summary: The real console.ConsoleOutputHandle, backed by the legacy
// Win32 console API. GetConsoleScreenBufferInfo, SetConsoleCursorPosition
// and WriteFile come from golang.org/x/sys/windows directly; the five
// calls that package doesn't wrap (FillConsoleOutputCharacter,
// FillConsoleOutputAttribute, SetConsoleTextAttribute,
// SetConsoleWindowInfo, ScrollConsoleScreenBuffer) are hand-bound via
// kernel32.dll.

//go:build windows

package winconsole

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/framegrace/texelwiz/console"
)

var kernel32DLL = syscall.NewLazyDLL("kernel32.dll")

var (
	procFillConsoleOutputCharacter = kernel32DLL.NewProc("FillConsoleOutputCharacterW")
	procFillConsoleOutputAttribute = kernel32DLL.NewProc("FillConsoleOutputAttribute")
	procSetConsoleTextAttribute    = kernel32DLL.NewProc("SetConsoleTextAttribute")
	procSetConsoleWindowInfo       = kernel32DLL.NewProc("SetConsoleWindowInfo")
	procScrollConsoleScreenBuffer  = kernel32DLL.NewProc("ScrollConsoleScreenBufferW")
)

// charInfo mirrors the Win32 CHAR_INFO struct ScrollConsoleScreenBuffer
// takes for the fill cell of a scrolled-out region. x/sys/windows has no
// equivalent type, so it's defined locally.
type charInfo struct {
	UnicodeChar uint16
	Attributes  uint16
}

// coordArg packs a COORD into the single uintptr Win32's stdcall-style
// syscall.Proc.Call expects for by-value struct arguments
// (little-endian, X in the low word).
func coordArg(c windows.Coord) uintptr {
	return uintptr(uint16(c.X)) | uintptr(uint16(c.Y))<<16
}

func fillConsoleOutputCharacter(h windows.Handle, ch uint16, length uint32, pos windows.Coord) error {
	var written uint32
	r, _, err := procFillConsoleOutputCharacter.Call(
		uintptr(h),
		uintptr(ch),
		uintptr(length),
		coordArg(pos),
		uintptr(unsafe.Pointer(&written)),
	)
	if r == 0 {
		return err
	}
	return nil
}

func fillConsoleOutputAttribute(h windows.Handle, attr uint16, length uint32, pos windows.Coord) error {
	var written uint32
	r, _, err := procFillConsoleOutputAttribute.Call(
		uintptr(h),
		uintptr(attr),
		uintptr(length),
		coordArg(pos),
		uintptr(unsafe.Pointer(&written)),
	)
	if r == 0 {
		return err
	}
	return nil
}

func setConsoleTextAttribute(h windows.Handle, attr uint16) error {
	r, _, err := procSetConsoleTextAttribute.Call(uintptr(h), uintptr(attr))
	if r == 0 {
		return err
	}
	return nil
}

func setConsoleWindowInfo(h windows.Handle, absolute bool, rect *windows.SmallRect) error {
	var abs uintptr
	if absolute {
		abs = 1
	}
	r, _, err := procSetConsoleWindowInfo.Call(uintptr(h), abs, uintptr(unsafe.Pointer(rect)))
	if r == 0 {
		return err
	}
	return nil
}

func scrollConsoleScreenBuffer(h windows.Handle, scrollRect, clipRect *windows.SmallRect, dest windows.Coord, fill *charInfo) error {
	r, _, err := procScrollConsoleScreenBuffer.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(scrollRect)),
		uintptr(unsafe.Pointer(clipRect)),
		coordArg(dest),
		uintptr(unsafe.Pointer(fill)),
	)
	if r == 0 {
		return err
	}
	return nil
}

// Handle wraps an open console output handle (typically os.Stdout's
// underlying fd) with console.ConsoleOutputHandle.
type Handle struct {
	h windows.Handle
}

// New wraps h (e.g. windows.Handle(os.Stdout.Fd())) as a
// console.ConsoleOutputHandle.
func New(h windows.Handle) *Handle {
	return &Handle{h: h}
}

func (c *Handle) GetBufferInfo() (console.BufferInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.h, &info); err != nil {
		return console.BufferInfo{}, fmt.Errorf("GetConsoleScreenBufferInfo: %w", err)
	}
	return console.BufferInfo{
		Size: console.Size{X: int(info.Size.X), Y: int(info.Size.Y)},
		Window: console.Rect{
			Left:   int(info.Window.Left),
			Top:    int(info.Window.Top),
			Right:  int(info.Window.Right),
			Bottom: int(info.Window.Bottom),
		},
		CursorX: int(info.CursorPosition.X),
		CursorY: int(info.CursorPosition.Y),
	}, nil
}

func (c *Handle) SetViewport(left, top, right, bottom int) error {
	rect := windows.SmallRect{
		Left:   int16(left),
		Top:    int16(top),
		Right:  int16(right),
		Bottom: int16(bottom),
	}
	if err := setConsoleWindowInfo(c.h, true, &rect); err != nil {
		return fmt.Errorf("SetConsoleWindowInfo: %w", err)
	}
	return nil
}

func (c *Handle) FillChar(ch rune, x, y, count int) error {
	coord := windows.Coord{X: int16(x), Y: int16(y)}
	if err := fillConsoleOutputCharacter(c.h, uint16(ch), uint32(count), coord); err != nil {
		return fmt.Errorf("FillConsoleOutputCharacter: %w", err)
	}
	return nil
}

func (c *Handle) FillAttr(word uint16, x, y, count int) error {
	coord := windows.Coord{X: int16(x), Y: int16(y)}
	if err := fillConsoleOutputAttribute(c.h, word, uint32(count), coord); err != nil {
		return fmt.Errorf("FillConsoleOutputAttribute: %w", err)
	}
	return nil
}

func (c *Handle) SetCursorPosition(x, y int) error {
	if err := windows.SetConsoleCursorPosition(c.h, windows.Coord{X: int16(x), Y: int16(y)}); err != nil {
		return fmt.Errorf("SetConsoleCursorPosition: %w", err)
	}
	return nil
}

func (c *Handle) SetAttr(word uint16) error {
	if err := setConsoleTextAttribute(c.h, word); err != nil {
		return fmt.Errorf("SetConsoleTextAttribute: %w", err)
	}
	return nil
}

func (c *Handle) ScrollRegion(left, top, right, bottom, dx, dy int, fillAttr uint16) error {
	scrollRect := windows.SmallRect{
		Left:   int16(left),
		Top:    int16(top),
		Right:  int16(right),
		Bottom: int16(bottom),
	}
	dest := windows.Coord{X: int16(left + dx), Y: int16(top + dy)}
	fill := charInfo{UnicodeChar: ' ', Attributes: fillAttr}
	if err := scrollConsoleScreenBuffer(c.h, &scrollRect, &scrollRect, dest, &fill); err != nil {
		return fmt.Errorf("ScrollConsoleScreenBuffer: %w", err)
	}
	return nil
}

func (c *Handle) Write(b []byte) (int, error) {
	var written uint32
	if err := windows.WriteFile(c.h, b, &written, nil); err != nil {
		return int(written), fmt.Errorf("WriteFile: %w", err)
	}
	return int(written), nil
}

func (c *Handle) Flush() error {
	// Write hands bytes straight to WriteFile, so nothing is buffered
	// here; this is a no-op that exists to satisfy
	// console.ConsoleOutputHandle.
	return nil
}
