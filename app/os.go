// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"time"

	"gaudium.org/io/system"
)

// Platform is a native binding that can host an event thread.
type Platform interface {
	// Open prepares the native event loop of the calling thread.
	Open(ctx *Context) (Loop, error)
}

// Loop is the native message loop of an event thread. Its methods are
// called on the event thread only. Dispatching a native message delivers
// the resulting events through the React, Enqueue and EnqueueSeq hooks.
type Loop interface {
	// Peek dispatches one pending native message without blocking. It
	// returns WakeNone if no message is pending.
	Peek() Wake
	// Wait blocks until one native message is dispatched or the deadline
	// passes. The zero deadline never passes.
	Wait(deadline time.Time) Wake
	// ExitCode is the code the platform was asked to quit with. It is
	// valid after Peek or Wait returned WakeQuit.
	ExitCode() int
	// Close releases the native resources of the loop.
	Close() error
}

// Wake is the outcome of a native wait.
type Wake uint8

const (
	// WakeNone means no native message was pending.
	WakeNone Wake = iota
	// WakeDispatched means a native message was dispatched.
	WakeDispatched
	// WakeTimeout means the deadline passed without a native message.
	WakeTimeout
	// WakeQuit means the platform was asked to quit.
	WakeQuit
)

// WindowFactory is implemented by loops that support windows.
type WindowFactory interface {
	NewWindow(cfg Config) (NativeWindow, error)
}

// NativeWindow is the platform part of a Window.
type NativeWindow interface {
	Handle() system.WindowHandle
	// Close asks the platform to destroy the window. The platform
	// confirms with a Closed event in state CloseCommitted.
	Close() error
}

func (w Wake) String() string {
	switch w {
	case WakeNone:
		return "None"
	case WakeDispatched:
		return "Dispatched"
	case WakeTimeout:
		return "Timeout"
	case WakeQuit:
		return "Quit"
	default:
		panic("invalid Wake")
	}
}
