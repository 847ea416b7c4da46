// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the portable event model dispatched by an
// event thread.
//
// An event is one of Application, Input or Window. Input and Window
// events carry handles that identify their source and a payload
// declared by the io/device, io/key, io/pointer, io/controller and
// io/system packages.
package event

import (
	"gaudium.org/io/device"
	"gaudium.org/io/system"
)

// Event is the marker interface for events. It is implemented by
// Application, Input and Window only.
type Event interface {
	ImplementsEvent()
}

// InputEvent is the marker interface for the payload of Input events.
type InputEvent interface {
	ImplementsInputEvent()
}

// WindowEvent is the marker interface for the payload of Window events.
type WindowEvent interface {
	ImplementsWindowEvent()
}

// Application events describe phase transitions of the event loop. They
// are synthesized by the event thread, never by input devices.
type Application struct {
	Event ApplicationEvent
}

// Input is an event originating from an input device.
type Input struct {
	Device device.Handle
	// Window is the window that received the input, or the zero handle
	// for input that is not tied to a window, such as a device being
	// connected.
	Window system.WindowHandle
	Event  InputEvent
}

// Window is a lifecycle event of a window.
type Window struct {
	Window system.WindowHandle
	Event  WindowEvent
}

// ApplicationEvent is the payload of Application.
type ApplicationEvent uint8

const (
	// QueueExhausted is dispatched after the native event queue has been
	// drained while polling with Ready.
	QueueExhausted ApplicationEvent = iota
	// TimeoutExpired is dispatched when the deadline of a WaitUntil or
	// Timeout poll passes without a native event.
	TimeoutExpired
)

// ElementState is the state of a discrete input element such as a key
// or a button.
type ElementState uint8

const (
	// Released is the state of an element that is not active.
	Released ElementState = iota
	// Pressed is the state of an active element.
	Pressed
)

// ForWindow narrows e to events concerning w. Window events match when
// they target w. Input events match when they target w or no window at
// all; non-windowed input is never filtered out. Application events never
// match.
func ForWindow(e Event, w system.WindowHandle) (Event, bool) {
	switch e := e.(type) {
	case Input:
		if e.Window.IsZero() || e.Window == w {
			return e, true
		}
	case Window:
		if e.Window == w {
			return e, true
		}
	}
	return nil, false
}

// ForDevice narrows e to Input events originating from d.
func ForDevice(e Event, d device.Handle) (Event, bool) {
	if e, ok := e.(Input); ok && e.Device == d {
		return e, true
	}
	return nil, false
}

func (a ApplicationEvent) String() string {
	switch a {
	case QueueExhausted:
		return "QueueExhausted"
	case TimeoutExpired:
		return "TimeoutExpired"
	default:
		panic("invalid ApplicationEvent")
	}
}

func (s ElementState) String() string {
	switch s {
	case Released:
		return "Released"
	case Pressed:
		return "Pressed"
	default:
		panic("invalid ElementState")
	}
}

func (Application) ImplementsEvent() {}
func (Input) ImplementsEvent()       {}
func (Window) ImplementsEvent()      {}
