// SPDX-License-Identifier: Unlicense OR MIT

package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaudium.org/io/device"
	"gaudium.org/io/event"
	"gaudium.org/io/key"
	"gaudium.org/io/system"
)

var (
	win1 = system.WindowFromRaw(1)
	win2 = system.WindowFromRaw(2)
	dev1 = device.FromRaw(10)
	dev2 = device.FromRaw(11)
)

func TestForWindow(t *testing.T) {
	closed := event.Window{Window: win1, Event: system.Closed{State: system.CloseRequested}}

	e, ok := event.ForWindow(closed, win1)
	require.True(t, ok)
	assert.Equal(t, event.Event(closed), e)

	_, ok = event.ForWindow(closed, win2)
	assert.False(t, ok)
}

func TestForWindowInput(t *testing.T) {
	windowed := event.Input{
		Device: dev1,
		Window: win1,
		Event:  key.Changed{ScanCode: 30, State: event.Pressed},
	}
	_, ok := event.ForWindow(windowed, win1)
	assert.True(t, ok)
	_, ok = event.ForWindow(windowed, win2)
	assert.False(t, ok)

	// Input without a window passes any filter.
	disconnected := event.Input{Device: dev1, Event: device.Disconnected{}}
	for _, w := range []system.WindowHandle{win1, win2, {}} {
		e, ok := event.ForWindow(disconnected, w)
		require.True(t, ok, "window %v", w)
		assert.Equal(t, event.Event(disconnected), e)
	}
}

func TestForWindowApplication(t *testing.T) {
	_, ok := event.ForWindow(event.Application{Event: event.QueueExhausted}, win1)
	assert.False(t, ok)
}

func TestForDevice(t *testing.T) {
	in := event.Input{Device: dev1, Event: device.Connected{Usage: device.UsageMouse}}

	e, ok := event.ForDevice(in, dev1)
	require.True(t, ok)
	assert.Equal(t, event.Event(in), e)

	_, ok = event.ForDevice(in, dev2)
	assert.False(t, ok)

	_, ok = event.ForDevice(event.Window{Window: win1, Event: system.Activated{}}, dev1)
	assert.False(t, ok)
}

func TestEventsCompareByValue(t *testing.T) {
	a := event.Input{Device: dev1, Window: win1, Event: key.Changed{Code: 4, State: event.Released}}
	b := event.Input{Device: device.FromRaw(10), Window: system.WindowFromRaw(1), Event: key.Changed{Code: 4, State: event.Released}}
	assert.True(t, event.Event(a) == event.Event(b))
}
