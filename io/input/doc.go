// SPDX-License-Identifier: Unlicense OR MIT

/*
Package input tracks the state of input devices between two points in
time.

A snapshot holds two aggregate states of a device: the new state, which
follows the event stream through React, and the old state, captured by
the most recent call to Snapshot. Comparing the two answers whether an
element changed (Transition) and which elements changed (Difference).
A typical program calls Snapshot once per frame or tick:

	keyboard := input.NewKeyboardSnapshot()
	...
	keyboard.React(e)
	...
	for _, c := range keyboard.Difference() {
		// c.Element changed to c.State since the last tick.
	}
	keyboard.Snapshot()

Discrete elements such as keys and buttons are tracked in a Set, and
their differences are computed from the symmetric difference of the new
and old sets. Continuous elements such as the mouse position have their
own difference methods.

Snapshots are not safe for concurrent use; they are meant to be owned by
a reactor on the event thread.
*/
package input
