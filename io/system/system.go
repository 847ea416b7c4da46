// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains window lifecycle events, usually handled at
// the top-level program level.
package system

// WindowHandle is an opaque identifier of a window. Like device handles,
// window handles compare by their platform identifier and may be copied
// freely. The zero WindowHandle identifies no window.
type WindowHandle struct {
	raw uintptr
}

// CloseState distinguishes a request to close a window from the
// window actually being destroyed.
type CloseState uint8

const (
	// CloseRequested is sent when the user asks to close the window, for
	// example through its decorations. The window stays open.
	CloseRequested CloseState = iota
	// CloseCommitted is sent when the window has been destroyed.
	CloseCommitted
)

// Closed is generated when a window is asked to close or has closed.
type Closed struct {
	State CloseState
}

// Activated is generated when a window gains focus.
type Activated struct{}

// Deactivated is generated when a window loses focus.
type Deactivated struct{}

// Moved is generated when the window origin changes.
type Moved struct {
	X, Y int32
}

// Resized is generated when the window client area changes size.
type Resized struct {
	Width, Height uint32
}

// WindowFromRaw wraps a platform window identifier. A zero raw value
// yields the zero handle.
func WindowFromRaw(raw uintptr) WindowHandle {
	return WindowHandle{raw: raw}
}

// Raw returns the platform identifier of h.
func (h WindowHandle) Raw() uintptr {
	return h.raw
}

// IsZero reports whether h identifies no window.
func (h WindowHandle) IsZero() bool {
	return h.raw == 0
}

func (s CloseState) String() string {
	switch s {
	case CloseRequested:
		return "Requested"
	case CloseCommitted:
		return "Committed"
	default:
		panic("invalid CloseState")
	}
}

func (Closed) ImplementsWindowEvent()      {}
func (Activated) ImplementsWindowEvent()   {}
func (Deactivated) ImplementsWindowEvent() {}
func (Moved) ImplementsWindowEvent()       {}
func (Resized) ImplementsWindowEvent()     {}
