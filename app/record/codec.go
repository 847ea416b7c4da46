// SPDX-License-Identifier: Unlicense OR MIT

package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gaudium.org/io/controller"
	"gaudium.org/io/device"
	"gaudium.org/io/event"
	"gaudium.org/io/key"
	"gaudium.org/io/pointer"
	"gaudium.org/io/system"
)

// envelope is the stored form of an event.
type envelope struct {
	Kind    string          `json:"kind"`
	Device  uintptr         `json:"device,omitempty"`
	Window  uintptr         `json:"window,omitempty"`
	Type    string          `json:"type,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

const (
	kindApplication = "application"
	kindInput       = "input"
	kindWindow      = "window"
)

var inputDecoders = map[string]func(json.RawMessage) (event.InputEvent, error){}

var windowDecoders = map[string]func(json.RawMessage) (event.WindowEvent, error){}

func init() {
	registerInput[device.Connected]()
	registerInput[device.Disconnected]()
	registerInput[controller.ButtonChanged]()
	inputDecoders[typeName(controller.AxisChanged{})] = func(raw json.RawMessage) (event.InputEvent, error) {
		var a axisChanged
		err := json.Unmarshal(raw, &a)
		return controller.AxisChanged{Axis: a.Axis, Value: float64(a.Value)}, err
	}
	registerInput[key.Changed]()
	registerInput[pointer.ButtonChanged]()
	registerInput[pointer.WheelRotated]()
	registerInput[pointer.Moved]()

	registerWindow[system.Closed]()
	registerWindow[system.Activated]()
	registerWindow[system.Deactivated]()
	registerWindow[system.Moved]()
	registerWindow[system.Resized]()
}

// axisChanged is the stored form of controller.AxisChanged. NaN and
// infinite values are stored as strings.
type axisChanged struct {
	Axis  controller.Axis
	Value axisValue
}

type axisValue float64

func (v axisValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return json.Marshal(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return json.Marshal(f)
}

func (v *axisValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*v = axisValue(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = axisValue(f)
	return nil
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

func registerInput[T event.InputEvent]() {
	var zero T
	inputDecoders[typeName(zero)] = func(raw json.RawMessage) (event.InputEvent, error) {
		var v T
		err := json.Unmarshal(raw, &v)
		return v, err
	}
}

func registerWindow[T event.WindowEvent]() {
	var zero T
	windowDecoders[typeName(zero)] = func(raw json.RawMessage) (event.WindowEvent, error) {
		var v T
		err := json.Unmarshal(raw, &v)
		return v, err
	}
}

func encode(e event.Event) ([]byte, error) {
	var env envelope
	var payload any
	switch e := e.(type) {
	case event.Application:
		env.Kind = kindApplication
		payload = e.Event
	case event.Input:
		env = envelope{Kind: kindInput, Device: e.Device.Raw(), Window: e.Window.Raw(), Type: typeName(e.Event)}
		payload = e.Event
		if a, ok := e.Event.(controller.AxisChanged); ok {
			payload = axisChanged{Axis: a.Axis, Value: axisValue(a.Value)}
		}
	case event.Window:
		env = envelope{Kind: kindWindow, Window: e.Window.Raw(), Type: typeName(e.Event)}
		payload = e.Event
	default:
		return nil, fmt.Errorf("record: unknown event %T", e)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	env.Payload = raw
	return json.Marshal(env)
}

func decode(data []byte) (event.Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case kindApplication:
		var a event.ApplicationEvent
		if err := json.Unmarshal(env.Payload, &a); err != nil {
			return nil, err
		}
		return event.Application{Event: a}, nil
	case kindInput:
		dec, ok := inputDecoders[env.Type]
		if !ok {
			return nil, fmt.Errorf("record: unknown input event %q", env.Type)
		}
		in, err := dec(env.Payload)
		if err != nil {
			return nil, err
		}
		return event.Input{
			Device: device.FromRaw(env.Device),
			Window: system.WindowFromRaw(env.Window),
			Event:  in,
		}, nil
	case kindWindow:
		dec, ok := windowDecoders[env.Type]
		if !ok {
			return nil, fmt.Errorf("record: unknown window event %q", env.Type)
		}
		we, err := dec(env.Payload)
		if err != nil {
			return nil, err
		}
		return event.Window{Window: system.WindowFromRaw(env.Window), Event: we}, nil
	default:
		return nil, fmt.Errorf("record: unknown event kind %q", env.Kind)
	}
}
