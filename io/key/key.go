// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements keyboard events.
package key

import (
	"strings"

	"gaudium.org/io/event"
)

// ScanCode is the hardware-dependent code of a physical key as reported
// by the platform.
type ScanCode uint32

// Code identifies a key independent of the keyboard hardware. Values are
// assigned by the platform and are opaque: two events for the same key
// carry equal codes, nothing more is implied.
type Code uint32

// NoCode marks a key the platform could not map to a Code.
const NoCode Code = 0

// Changed is generated when a key is pressed or released.
type Changed struct {
	ScanCode ScanCode
	// Code is NoCode if the platform could not map the key.
	Code      Code
	State     event.ElementState
	Modifiers Modifiers
}

// Modifiers is the set of modifier keys active when an event was
// generated.
type Modifiers uint32

const (
	// ModCtrl is the ctrl modifier key.
	ModCtrl Modifiers = 1 << iota
	// ModShift is the shift modifier key.
	ModShift
	// ModAlt is the alt modifier key, or the option
	// key on Apple keyboards.
	ModAlt
	// ModSuper is the "logo" modifier key, often
	// represented by a Windows logo.
	ModSuper
)

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCtrl) {
		strs = append(strs, "Ctrl")
	}
	if m.Contain(ModShift) {
		strs = append(strs, "Shift")
	}
	if m.Contain(ModAlt) {
		strs = append(strs, "Alt")
	}
	if m.Contain(ModSuper) {
		strs = append(strs, "Super")
	}
	return strings.Join(strs, "-")
}

func (Changed) ImplementsInputEvent() {}
