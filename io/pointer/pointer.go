// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer implements mouse events.
package pointer

import (
	"fmt"
	"image"

	"gaudium.org/io/event"
	"gaudium.org/io/key"
)

// Button identifies a mouse button.
type Button uint16

const (
	// ButtonLeft is the primary button.
	ButtonLeft Button = iota + 1
	// ButtonRight is the secondary button.
	ButtonRight
	// ButtonCenter is the middle button, often the wheel.
	ButtonCenter
)

// other marks buttons created by OtherButton.
const other Button = 0x100

// WheelKind distinguishes wheel deltas measured in detents from deltas
// measured in distance.
type WheelKind uint8

const (
	// Rotational deltas count wheel detents.
	Rotational WheelKind = iota
	// Positional deltas are scroll distances, as reported by touchpads.
	Positional
)

// Movement describes pointer motion. Either part may be missing,
// depending on what the platform reports.
type Movement struct {
	// Absolute is the pointer position in window coordinates.
	Absolute image.Point
	// Relative is the raw motion since the previous movement.
	Relative    image.Point
	HasAbsolute bool
	HasRelative bool
}

// WheelDelta is the amount of a wheel rotation.
type WheelDelta struct {
	Kind WheelKind
	X, Y float64
}

// ButtonChanged is generated when a mouse button is pressed or released.
type ButtonChanged struct {
	Button    Button
	State     event.ElementState
	Modifiers key.Modifiers
}

// WheelRotated is generated when a mouse wheel is rotated.
type WheelRotated struct {
	Delta     WheelDelta
	Modifiers key.Modifiers
}

// Moved is generated when the mouse moves.
type Moved struct {
	Movement  Movement
	Modifiers key.Modifiers
}

// OtherButton returns the button with the platform-assigned index n,
// for buttons beyond left, right and center.
func OtherButton(n uint8) Button {
	return other | Button(n)
}

// Other reports whether b was created by OtherButton and returns its
// index.
func (b Button) Other() (uint8, bool) {
	if b&other == 0 {
		return 0, false
	}
	return uint8(b), true
}

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonCenter:
		return "Center"
	}
	if n, ok := b.Other(); ok {
		return fmt.Sprintf("Other(%d)", n)
	}
	panic("invalid Button")
}

func (k WheelKind) String() string {
	switch k {
	case Rotational:
		return "Rotational"
	case Positional:
		return "Positional"
	default:
		panic("invalid WheelKind")
	}
}

func (ButtonChanged) ImplementsInputEvent() {}
func (WheelRotated) ImplementsInputEvent()  {}
func (Moved) ImplementsInputEvent()         {}
