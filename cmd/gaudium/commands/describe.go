// SPDX-License-Identifier: Unlicense OR MIT

package commands

import (
	"fmt"
	"sort"
	"strings"

	"gaudium.org/io/controller"
	"gaudium.org/io/device"
	"gaudium.org/io/event"
	"gaudium.org/io/input"
	"gaudium.org/io/key"
	"gaudium.org/io/pointer"
	"gaudium.org/io/system"
)

// tracker follows the input devices and reports their changes per tick.
type tracker struct {
	keyboard   input.KeyboardSnapshot
	mouse      input.MouseSnapshot
	controller input.ControllerSnapshot
}

func (t *tracker) React(e event.Event) {
	for _, s := range []input.Tracker{&t.keyboard, &t.mouse, &t.controller} {
		s.React(e)
	}
}

// tick describes the changes since the previous tick and snapshots the
// devices.
func (t *tracker) tick() []string {
	var lines []string
	keys := t.keyboard.Difference()
	sort.Slice(keys, func(i, j int) bool { return keys[i].Element < keys[j].Element })
	for _, c := range keys {
		lines = append(lines, fmt.Sprintf("key %d %s", c.Element, c.State))
	}
	buttons := t.mouse.ButtonDifference()
	sort.Slice(buttons, func(i, j int) bool { return buttons[i].Element < buttons[j].Element })
	for _, c := range buttons {
		lines = append(lines, fmt.Sprintf("button %s %s", c.Element, c.State))
	}
	if d, ok := t.mouse.PositionDifference(); ok {
		lines = append(lines, fmt.Sprintf("moved %d,%d", d.X, d.Y))
	}
	axes := t.controller.AxisDifference()
	sort.Slice(axes, func(i, j int) bool { return axes[i].Axis < axes[j].Axis })
	for _, c := range axes {
		lines = append(lines, fmt.Sprintf("axis %d %+g", c.Axis, c.Delta))
	}
	pads := t.controller.ButtonDifference()
	sort.Slice(pads, func(i, j int) bool { return pads[i].Element < pads[j].Element })
	for _, c := range pads {
		lines = append(lines, fmt.Sprintf("pad %d %s", c.Element, c.State))
	}
	t.keyboard.Snapshot()
	t.mouse.Snapshot()
	t.controller.Snapshot()
	return lines
}

// status describes the live state of the devices.
func (t *tracker) status() string {
	keys := t.keyboard.State().Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	buttons := t.mouse.State().Buttons()
	sort.Slice(buttons, func(i, j int) bool { return buttons[i] < buttons[j] })
	pos := t.mouse.State().Position()
	return fmt.Sprintf("keys %v buttons %v position %d,%d", keys, buttons, pos.X, pos.Y)
}

// describe formats e on one line.
func describe(e event.Event) string {
	switch e := e.(type) {
	case event.Application:
		return "application " + e.Event.String()
	case event.Input:
		return strings.TrimSpace(fmt.Sprintf("input device=%d window=%d %s", e.Device.Raw(), e.Window.Raw(), describeInput(e.Event)))
	case event.Window:
		return fmt.Sprintf("window %d %s", e.Window.Raw(), describeWindow(e.Event))
	default:
		return fmt.Sprintf("%T", e)
	}
}

func describeInput(e event.InputEvent) string {
	switch e := e.(type) {
	case device.Connected:
		return "connected " + e.Usage.String()
	case device.Disconnected:
		return "disconnected"
	case key.Changed:
		return fmt.Sprintf("key code=%d scan=%d %s %s", e.Code, e.ScanCode, e.State, e.Modifiers)
	case pointer.ButtonChanged:
		return fmt.Sprintf("button %s %s %s", e.Button, e.State, e.Modifiers)
	case pointer.WheelRotated:
		return fmt.Sprintf("wheel %g,%g %s", e.Delta.X, e.Delta.Y, e.Modifiers)
	case pointer.Moved:
		m := e.Movement
		s := "moved"
		if m.HasAbsolute {
			s += fmt.Sprintf(" to %d,%d", m.Absolute.X, m.Absolute.Y)
		}
		if m.HasRelative {
			s += fmt.Sprintf(" by %d,%d", m.Relative.X, m.Relative.Y)
		}
		return s
	case controller.ButtonChanged:
		return fmt.Sprintf("pad %d %s", e.Button, e.State)
	case controller.AxisChanged:
		return fmt.Sprintf("axis %d %g", e.Axis, e.Value)
	default:
		return fmt.Sprintf("%T", e)
	}
}

func describeWindow(e event.WindowEvent) string {
	switch e := e.(type) {
	case system.Closed:
		return "closed " + e.State.String()
	case system.Activated:
		return "activated"
	case system.Deactivated:
		return "deactivated"
	case system.Moved:
		return fmt.Sprintf("moved %d,%d", e.X, e.Y)
	case system.Resized:
		return fmt.Sprintf("resized %dx%d", e.Width, e.Height)
	default:
		return fmt.Sprintf("%T", e)
	}
}
