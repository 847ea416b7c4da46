// SPDX-License-Identifier: Unlicense OR MIT

// Package thread identifies operating system threads. Callers must lock
// the calling goroutine to its thread for the identity to be stable.
package thread

// ID identifies an operating system thread.
type ID uint64

// Current returns the ID of the calling thread.
func Current() ID {
	return current()
}

// Supported reports whether Current distinguishes threads on this
// platform. Where it does not, every thread has the same ID.
const Supported = supported
