// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"golang.org/x/exp/maps"

	"gaudium.org/io/event"
)

// Tracker is implemented by snapshots that follow an event stream.
type Tracker interface {
	// React updates the new state from e. Events that don't concern the
	// tracker are ignored.
	React(e event.Event)
	// Snapshot copies the new state into the old state.
	Snapshot()
}

// Aggregate is the complete state of a device. Clone must return a copy
// that shares no mutable data with the original.
type Aggregate[S any] interface {
	Clone() S
}

// Pair holds the new and old states of a device. It is embedded by
// snapshots; the zero Pair is ready for use if the zero S is.
type Pair[S Aggregate[S]] struct {
	new, old S
}

// Set is the set of active elements of type E, such as the pressed keys
// of a keyboard. The zero Set is empty and ready for use.
type Set[E comparable] map[E]struct{}

// Change is the state an element changed to.
type Change[E comparable] struct {
	Element E
	State   event.ElementState
}

// Transition returns new and true if new differs from old. Otherwise it
// returns the zero S and false.
func Transition[S comparable](new, old S) (S, bool) {
	if new == old {
		var zero S
		return zero, false
	}
	return new, true
}

// Difference returns every element whose membership differs between the
// new and old sets, paired with its state in new. The cost is linear in
// the sizes of the sets. The order of the changes is unspecified.
func Difference[E comparable](new, old Set[E]) []Change[E] {
	var diff []Change[E]
	for e := range new {
		if !old.Contains(e) {
			diff = append(diff, Change[E]{Element: e, State: new.State(e)})
		}
	}
	for e := range old {
		if !new.Contains(e) {
			diff = append(diff, Change[E]{Element: e, State: new.State(e)})
		}
	}
	return diff
}

// TransitionOf reports the transition of the element selected by state
// between the new and old states of p.
func TransitionOf[S Aggregate[S], V comparable](p *Pair[S], state func(S) V) (V, bool) {
	return Transition(state(p.new), state(p.old))
}

// DifferenceOf returns the set difference of p for the element set
// selected by backing.
func DifferenceOf[S Aggregate[S], E comparable](p *Pair[S], backing func(S) Set[E]) []Change[E] {
	return Difference(backing(p.new), backing(p.old))
}

// NewState returns the live state.
func (p *Pair[S]) NewState() S {
	return p.new
}

// OldState returns the state captured by the last call to Snapshot.
func (p *Pair[S]) OldState() S {
	return p.old
}

// Snapshot copies the new state into the old state.
func (p *Pair[S]) Snapshot() {
	p.old = p.new.Clone()
}

// Contains reports whether e is active.
func (s Set[E]) Contains(e E) bool {
	_, ok := s[e]
	return ok
}

// State derives the state of e from its membership: members are Pressed,
// everything else is Released.
func (s Set[E]) State(e E) event.ElementState {
	if s.Contains(e) {
		return event.Pressed
	}
	return event.Released
}

// Apply inserts e when st is Pressed and removes it when st is Released.
func (s *Set[E]) Apply(e E, st event.ElementState) {
	switch st {
	case event.Pressed:
		if *s == nil {
			*s = make(Set[E])
		}
		(*s)[e] = struct{}{}
	case event.Released:
		delete(*s, e)
	}
}

// Clone returns a copy of s.
func (s Set[E]) Clone() Set[E] {
	return maps.Clone(s)
}

// Elements returns the active elements in unspecified order.
func (s Set[E]) Elements() []E {
	return maps.Keys(s)
}
