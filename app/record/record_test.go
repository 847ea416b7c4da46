// SPDX-License-Identifier: Unlicense OR MIT

package record_test

import (
	"image"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaudium.org/app"
	"gaudium.org/app/headless"
	"gaudium.org/app/record"
	"gaudium.org/io/controller"
	"gaudium.org/io/device"
	"gaudium.org/io/event"
	"gaudium.org/io/key"
	"gaudium.org/io/pointer"
	"gaudium.org/io/system"
)

func openStore(t *testing.T) *record.Store {
	t.Helper()
	s, err := record.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sample() []event.Event {
	kbd := device.FromRaw(7)
	w := system.WindowFromRaw(3)
	return []event.Event{
		event.Input{Device: kbd, Event: device.Connected{Usage: device.UsageKeyboard}},
		event.Input{Device: kbd, Window: w, Event: key.Changed{ScanCode: 30, Code: 'a', State: event.Pressed, Modifiers: key.ModShift}},
		event.Input{Device: kbd, Window: w, Event: pointer.Moved{Movement: pointer.Movement{
			Absolute: image.Pt(10, 20), HasAbsolute: true,
		}}},
		event.Input{Device: kbd, Window: w, Event: pointer.WheelRotated{Delta: pointer.WheelDelta{Kind: pointer.Positional, Y: 2.5}}},
		event.Input{Device: kbd, Event: controller.AxisChanged{Axis: 1, Value: -0.5}},
		event.Window{Window: w, Event: system.Resized{Width: 800, Height: 600}},
		event.Window{Window: w, Event: system.Moved{X: -4, Y: 9}},
		event.Window{Window: w, Event: system.Closed{State: system.CloseCommitted}},
		event.Application{Event: event.TimeoutExpired},
		event.Input{Device: kbd, Event: device.Disconnected{}},
	}
}

func events(entries []record.Entry) []event.Event {
	var es []event.Event
	for _, e := range entries {
		es = append(es, e.Event)
	}
	return es
}

func TestRecordAndLoad(t *testing.T) {
	s := openStore(t)
	sess, err := s.NewSession()
	require.NoError(t, err)
	defer sess.Close()
	for _, e := range sample() {
		require.NoError(t, sess.Record(e))
	}

	entries, err := s.Load(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sample(), events(entries))
	for i, e := range entries {
		assert.Equal(t, int64(i), e.Seq)
	}

	infos, err := s.Sessions()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, sess.ID, infos[0].ID)
	assert.Equal(t, len(sample()), infos[0].Events)
}

func TestRecordNonFiniteAxis(t *testing.T) {
	s := openStore(t)
	sess, err := s.NewSession()
	require.NoError(t, err)
	defer sess.Close()

	values := []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0.25}
	for i, v := range values {
		e := event.Input{Device: device.FromRaw(2), Event: controller.AxisChanged{Axis: controller.Axis(i), Value: v}}
		require.NoError(t, sess.Record(e))
	}

	entries, err := s.Load(sess.ID)
	require.NoError(t, err)
	require.Len(t, entries, len(values))
	for i, e := range entries {
		in, ok := e.Event.(event.Input)
		require.True(t, ok)
		a, ok := in.Event.(controller.AxisChanged)
		require.True(t, ok)
		assert.Equal(t, controller.Axis(i), a.Axis)
		if math.IsNaN(values[i]) {
			assert.True(t, math.IsNaN(a.Value))
		} else {
			assert.Equal(t, values[i], a.Value)
		}
	}
}

func TestLoadUnknownSession(t *testing.T) {
	s := openStore(t)
	_, err := s.Load(uuid.New())
	assert.ErrorIs(t, err, record.ErrNoSession)
}

func TestWrap(t *testing.T) {
	s := openStore(t)
	sess, err := s.NewSession()
	require.NoError(t, err)
	defer sess.Close()

	p := headless.New()
	p.Send(sample()[:3]...)
	p.SendBatch(sample()[3:]...)
	p.Quit(0)
	var seen int
	err = app.RunAndJoin(p, func(ctx *app.Context) (app.Reactor, error) {
		return record.Wrap(app.ReactorFunc(func(ctx *app.Context, e event.Event) app.Reaction {
			seen++
			return app.Continue(app.Wait)
		}), sess), nil
	})
	require.NoError(t, err)
	assert.Equal(t, len(sample()), seen)

	entries, err := s.Load(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sample(), events(entries))
}

func TestWrapAbortsOnFailure(t *testing.T) {
	s, err := record.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	sess, err := s.NewSession()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	p := headless.New()
	p.Send(sample()[0])
	p.Quit(3)
	called := false
	err = app.RunAndJoin(p, func(ctx *app.Context) (app.Reactor, error) {
		return record.Wrap(app.ReactorFunc(func(ctx *app.Context, e event.Event) app.Reaction {
			called = true
			return app.Continue(app.Wait)
		}), sess), nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}
