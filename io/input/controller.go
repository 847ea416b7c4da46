// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"math"

	"golang.org/x/exp/maps"

	"gaudium.org/io/controller"
	"gaudium.org/io/event"
)

// ControllerState is the aggregate state of a game controller.
type ControllerState struct {
	buttons Set[controller.Button]
	axes    map[controller.Axis]float64
}

// ControllerSnapshot tracks game controller buttons and axes. Axes that
// have never been reported read as zero.
type ControllerSnapshot struct {
	Pair[ControllerState]
}

// AxisChange is the change of an axis since the last snapshot.
type AxisChange struct {
	Axis  controller.Axis
	Value float64
	Delta float64
}

var _ Tracker = (*ControllerSnapshot)(nil)

// NewControllerSnapshot returns a snapshot with no buttons pressed.
func NewControllerSnapshot() *ControllerSnapshot {
	return new(ControllerSnapshot)
}

// React applies button and axis events. Axis values that are NaN or
// infinite are ignored.
func (s *ControllerSnapshot) React(e event.Event) {
	in, ok := e.(event.Input)
	if !ok {
		return
	}
	switch e := in.Event.(type) {
	case controller.ButtonChanged:
		s.new.buttons.Apply(e.Button, e.State)
	case controller.AxisChanged:
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return
		}
		if s.new.axes == nil {
			s.new.axes = make(map[controller.Axis]float64)
		}
		s.new.axes[e.Axis] = e.Value
	}
}

// State returns the live controller state.
func (s *ControllerSnapshot) State() ControllerState {
	return s.new
}

// ButtonTransition returns the new state of b if it changed since the
// last snapshot.
func (s *ControllerSnapshot) ButtonTransition(b controller.Button) (event.ElementState, bool) {
	return TransitionOf(&s.Pair, func(st ControllerState) event.ElementState {
		return st.buttons.State(b)
	})
}

// ButtonDifference returns the buttons pressed or released since the
// last snapshot.
func (s *ControllerSnapshot) ButtonDifference() []Change[controller.Button] {
	return DifferenceOf(&s.Pair, func(st ControllerState) Set[controller.Button] {
		return st.buttons
	})
}

// AxisTransition returns the new value of a if it changed since the last
// snapshot.
func (s *ControllerSnapshot) AxisTransition(a controller.Axis) (float64, bool) {
	return TransitionOf(&s.Pair, func(st ControllerState) float64 {
		return st.Axis(a)
	})
}

// AxisDifference returns every axis whose value changed since the last
// snapshot, in unspecified order.
func (s *ControllerSnapshot) AxisDifference() []AxisChange {
	var diff []AxisChange
	for a, v := range s.new.axes {
		if d := v - s.old.Axis(a); d != 0 {
			diff = append(diff, AxisChange{Axis: a, Value: v, Delta: d})
		}
	}
	return diff
}

// Clone returns a copy of st that shares no maps with it.
func (st ControllerState) Clone() ControllerState {
	return ControllerState{
		buttons: st.buttons.Clone(),
		axes:    maps.Clone(st.axes),
	}
}

// Pressed reports whether b is pressed.
func (st ControllerState) Pressed(b controller.Button) bool {
	return st.buttons.Contains(b)
}

// Axis returns the last reported value of a.
func (st ControllerState) Axis(a controller.Axis) float64 {
	return st.axes[a]
}
