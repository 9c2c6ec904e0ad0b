// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/ptytap/main.go
// Summary: Spawns a shell (or the given command) in a PTY, feeds its
// output through escape/parser, indexes the recognized text into
// internal/actionlog, and passes the raw bytes through to stdout
// unmodified.

package main

import (
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/framegrace/texelwiz/config"
	"github.com/framegrace/texelwiz/escape"
	"github.com/framegrace/texelwiz/escape/parser"
	"github.com/framegrace/texelwiz/internal/actionlog"
)

func init() {
	// Redirect log output away from stderr so it doesn't mangle the
	// attached terminal; opt in with PTYTAP_DEBUG to see it in a file.
	if os.Getenv("PTYTAP_DEBUG") != "" {
		if f, err := os.OpenFile("/tmp/ptytap-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			log.SetOutput(f)
			log.SetFlags(log.Ltime | log.Lmicroseconds)
		} else {
			log.SetOutput(io.Discard)
		}
	} else {
		log.SetOutput(io.Discard)
	}
}

func main() {
	if err := run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("ptytap: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	args := os.Args[1:]
	var cmd *exec.Cmd
	if len(args) > 0 {
		cmd = exec.Command(args[0], args[1:]...)
	} else {
		cmd = exec.Command(shell)
	}
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer ptmx.Close()

	if size, err := pty.GetsizeFull(os.Stdin); err == nil {
		_ = pty.Setsize(ptmx, size)
	}
	if sig := sigWinch(); sig != nil {
		sigwinch := make(chan os.Signal, 1)
		signal.Notify(sigwinch, sig)
		go func() {
			for range sigwinch {
				if size, err := pty.GetsizeFull(os.Stdin); err == nil {
					_ = pty.Setsize(ptmx, size)
				}
			}
		}()
	}

	idx, err := actionlog.Open(cfg.ActionLogPath)
	if err != nil {
		log.Printf("ptytap: failed to open action log: %v", err)
		idx = nil
	}
	if idx != nil {
		defer idx.Close()
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return err
		}
		defer term.Restore(int(os.Stdin.Fd()), oldState)
	}

	go func() { _, _ = io.Copy(ptmx, os.Stdin) }()

	p := parser.New()
	p.Logger = log.Default()
	p.OSCLimit = cfg.OSCByteCap

	buf := make([]byte, 4096)
	for {
		n, readErr := ptmx.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if _, err := os.Stdout.Write(chunk); err != nil {
				return err
			}
			if idx != nil {
				now := time.Now()
				p.Parse(chunk, func(a escape.Action) {
					if err := idx.IndexAction(now, a); err != nil {
						log.Printf("ptytap: index action: %v", err)
					}
				})
			} else {
				p.Parse(chunk, func(escape.Action) {})
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return readErr
		}
	}

	return cmd.Wait()
}
