//go:build !linux

// Package terminal puts stdin into raw mode and reads single keystrokes.
package terminal

import "errors"

var errUnsupported = errors.New("terminal: raw mode is only supported on linux")

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool { return false }

// MakeRaw is not available on this platform.
func MakeRaw(fd int) (restore func() error, err error) { return nil, errUnsupported }
