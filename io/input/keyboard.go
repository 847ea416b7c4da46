// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"gaudium.org/io/event"
	"gaudium.org/io/key"
)

// KeyboardState is the set of pressed keys.
type KeyboardState struct {
	keys Set[key.Code]
}

// KeyboardSnapshot tracks the keys pressed on any keyboard. The zero
// KeyboardSnapshot has no keys pressed.
type KeyboardSnapshot struct {
	Pair[KeyboardState]
}

var _ Tracker = (*KeyboardSnapshot)(nil)

// NewKeyboardSnapshot returns a snapshot with no keys pressed.
func NewKeyboardSnapshot() *KeyboardSnapshot {
	return new(KeyboardSnapshot)
}

// React applies key.Changed events. Keys without a Code are not tracked.
func (s *KeyboardSnapshot) React(e event.Event) {
	in, ok := e.(event.Input)
	if !ok {
		return
	}
	if c, ok := in.Event.(key.Changed); ok && c.Code != key.NoCode {
		s.new.keys.Apply(c.Code, c.State)
	}
}

// State returns the live keyboard state.
func (s *KeyboardSnapshot) State() KeyboardState {
	return s.new
}

// Transition reports the state k changed to since the last snapshot.
func (s *KeyboardSnapshot) Transition(k key.Code) (event.ElementState, bool) {
	return TransitionOf(&s.Pair, func(st KeyboardState) event.ElementState {
		return st.State(k)
	})
}

// Difference returns the keys pressed or released since the last
// snapshot.
func (s *KeyboardSnapshot) Difference() []Change[key.Code] {
	return DifferenceOf(&s.Pair, KeyboardState.keySet)
}

// Clone returns a copy of st that shares no keys with it.
func (st KeyboardState) Clone() KeyboardState {
	return KeyboardState{keys: st.keys.Clone()}
}

// Pressed reports whether k is pressed.
func (st KeyboardState) Pressed(k key.Code) bool {
	return st.keys.Contains(k)
}

// State returns the state of k.
func (st KeyboardState) State(k key.Code) event.ElementState {
	return st.keys.State(k)
}

// Keys returns the pressed keys in unspecified order.
func (st KeyboardState) Keys() []key.Code {
	return st.keys.Elements()
}

func (st KeyboardState) keySet() Set[key.Code] {
	return st.keys
}
