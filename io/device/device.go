// SPDX-License-Identifier: Unlicense OR MIT

// Package device identifies input devices and reports their arrival
// and removal.
package device

// Handle is an opaque identifier of an input device. Handles compare
// and hash by their platform identifier and carry no resources; a handle
// stays meaningful only while its device is connected.
type Handle struct {
	raw uintptr
}

// Usage describes what kind of device was connected.
type Usage uint8

const (
	// UsageUnknown is the usage of devices the platform could not
	// classify.
	UsageUnknown Usage = iota
	UsageKeyboard
	UsageMouse
	UsageGameController
)

// Connected is generated when a device becomes available.
type Connected struct {
	Usage Usage
}

// Disconnected is generated when a device is removed. The device handle
// must not be used afterwards.
type Disconnected struct{}

// FromRaw wraps a platform identifier.
func FromRaw(raw uintptr) Handle {
	return Handle{raw: raw}
}

// Raw returns the platform identifier of h.
func (h Handle) Raw() uintptr {
	return h.raw
}

func (u Usage) String() string {
	switch u {
	case UsageUnknown:
		return "Unknown"
	case UsageKeyboard:
		return "Keyboard"
	case UsageMouse:
		return "Mouse"
	case UsageGameController:
		return "GameController"
	default:
		panic("invalid Usage")
	}
}

func (Connected) ImplementsInputEvent()    {}
func (Disconnected) ImplementsInputEvent() {}
