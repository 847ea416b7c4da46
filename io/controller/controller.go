// SPDX-License-Identifier: Unlicense OR MIT

// Package controller implements game controller events.
package controller

import (
	"gaudium.org/io/event"
)

// Button identifies a game controller button. Numbering is assigned by
// the platform.
type Button uint8

// Axis identifies a game controller axis, throttle or other value input.
type Axis uint8

// ButtonChanged is generated when a controller button is pressed or
// released.
type ButtonChanged struct {
	Button Button
	State  event.ElementState
}

// AxisChanged is generated when the value of a controller axis changes.
type AxisChanged struct {
	Axis  Axis
	Value float64
}

func (ButtonChanged) ImplementsInputEvent() {}
func (AxisChanged) ImplementsInputEvent()   {}
