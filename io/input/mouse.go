// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"image"

	"gaudium.org/io/event"
	"gaudium.org/io/pointer"
)

// MouseState is the aggregate state of a mouse: its pressed buttons,
// its position and whether it is within the bounds of a window.
type MouseState struct {
	buttons   Set[pointer.Button]
	position  image.Point
	proximity bool
}

// MouseSnapshot tracks the state of the mouse. The zero MouseSnapshot has
// no buttons pressed and is positioned at the origin.
type MouseSnapshot struct {
	Pair[MouseState]
}

var _ Tracker = (*MouseSnapshot)(nil)

// NewMouseSnapshot returns a snapshot of a mouse at the origin.
func NewMouseSnapshot() *MouseSnapshot {
	return new(MouseSnapshot)
}

// React applies button and movement events. An absolute movement sets
// the position; a relative-only movement offsets it.
func (s *MouseSnapshot) React(e event.Event) {
	in, ok := e.(event.Input)
	if !ok {
		return
	}
	switch e := in.Event.(type) {
	case pointer.ButtonChanged:
		s.new.buttons.Apply(e.Button, e.State)
	case pointer.Moved:
		m := e.Movement
		switch {
		case m.HasAbsolute:
			s.new.position = m.Absolute
		case m.HasRelative:
			s.new.position = s.new.position.Add(m.Relative)
		}
	}
}

// SetProximity records whether the mouse is within the bounds of a
// window. Platforms report proximity separately from movement.
func (s *MouseSnapshot) SetProximity(in bool) {
	s.new.proximity = in
}

// State returns the live mouse state.
func (s *MouseSnapshot) State() MouseState {
	return s.new
}

// ButtonTransition reports the state b changed to since the last
// snapshot.
func (s *MouseSnapshot) ButtonTransition(b pointer.Button) (event.ElementState, bool) {
	return TransitionOf(&s.Pair, func(st MouseState) event.ElementState {
		return st.State(b)
	})
}

// ButtonDifference returns the buttons pressed or released since the
// last snapshot.
func (s *MouseSnapshot) ButtonDifference() []Change[pointer.Button] {
	return DifferenceOf(&s.Pair, MouseState.buttonSet)
}

// PositionTransition returns the new position if it differs from the
// position at the last snapshot.
func (s *MouseSnapshot) PositionTransition() (image.Point, bool) {
	return TransitionOf(&s.Pair, MouseState.Position)
}

// PositionDifference returns the displacement since the last snapshot,
// or false if the mouse has not moved.
func (s *MouseSnapshot) PositionDifference() (image.Point, bool) {
	d := s.new.position.Sub(s.old.position)
	if d == (image.Point{}) {
		return image.Point{}, false
	}
	return d, true
}

// ProximityTransition returns the new proximity if it changed since the
// last snapshot.
func (s *MouseSnapshot) ProximityTransition() (bool, bool) {
	return TransitionOf(&s.Pair, MouseState.Proximity)
}

// ProximityDifference is like ProximityTransition; proximity has a single
// element, so its difference is its transition.
func (s *MouseSnapshot) ProximityDifference() (bool, bool) {
	return s.ProximityTransition()
}

// Clone returns a copy of st that shares no buttons with it.
func (st MouseState) Clone() MouseState {
	c := st
	c.buttons = st.buttons.Clone()
	return c
}

// Pressed reports whether b is pressed.
func (st MouseState) Pressed(b pointer.Button) bool {
	return st.buttons.Contains(b)
}

// State returns the state of b.
func (st MouseState) State(b pointer.Button) event.ElementState {
	return st.buttons.State(b)
}

// Buttons returns the pressed buttons in unspecified order.
func (st MouseState) Buttons() []pointer.Button {
	return st.buttons.Elements()
}

// Position returns the pointer position.
func (st MouseState) Position() image.Point {
	return st.position
}

// Proximity reports whether the mouse is within the bounds of a window.
func (st MouseState) Proximity() bool {
	return st.proximity
}

func (st MouseState) buttonSet() Set[pointer.Button] {
	return st.buttons
}
