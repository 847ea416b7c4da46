// SPDX-License-Identifier: Unlicense OR MIT

// Package term implements a platform on top of a terminal.
//
// A terminal is a single window. Its keyboard and mouse are reported as
// two devices, connected when the event thread starts. Terminals report
// key presses but no releases, so every key press is delivered as a
// batch of a Pressed and a Released key.Changed event. Ctrl-C requests
// the window to close.
package term

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"gaudium.org/app"
	"gaudium.org/internal/log"
	"gaudium.org/io/device"
	"gaudium.org/io/event"
	"gaudium.org/io/input"
	"gaudium.org/io/key"
	"gaudium.org/io/pointer"
	"gaudium.org/io/system"
)

// ErrWindowExists is returned when a second window is created on a
// terminal.
var ErrWindowExists = errors.New("term: terminal window already exists")

// ErrNotOpen is returned by Quit before the platform is open.
var ErrNotOpen = errors.New("term: platform not open")

// Handles of the terminal devices and window.
var (
	Keyboard = device.FromRaw(1)
	Mouse    = device.FromRaw(2)
	Window   = system.WindowFromRaw(1)
)

// specialKeys is the first key.Code of non-character keys. Character keys
// use their rune as code.
const specialKeys = 0x110000

// Platform is a terminal platform.
type Platform struct {
	log    *logrus.Entry
	newScr func() (tcell.Screen, error)

	mu     sync.Mutex
	screen tcell.Screen
}

type quitSignal struct {
	code int
}

type closeSignal struct{}

type loop struct {
	p      *Platform
	screen tcell.Screen
	events chan tcell.Event
	stop   chan struct{}
	code   int

	started bool
	window  *window
	// buttons are the mouse buttons pressed in the last mouse event.
	buttons input.Set[pointer.Button]
	pos     image.Point
	hasPos  bool
}

type window struct {
	l      *loop
	closed bool
}

// New returns a platform for the terminal of the process.
func New() *Platform {
	return &Platform{
		log:    log.New("term"),
		newScr: tcell.NewScreen,
	}
}

// NewWithScreen returns a platform for screen. Open initializes screen.
func NewWithScreen(screen tcell.Screen) *Platform {
	return &Platform{
		log: log.New("term"),
		newScr: func() (tcell.Screen, error) {
			return screen, nil
		},
	}
}

// Open implements app.Platform.
func (p *Platform) Open(ctx *app.Context) (app.Loop, error) {
	scr, err := p.newScr()
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("term: init: %w", err)
	}
	scr.EnableMouse()
	scr.EnableFocus()
	scr.HideCursor()
	p.mu.Lock()
	p.screen = scr
	p.mu.Unlock()
	l := &loop{
		p:      p,
		screen: scr,
		events: make(chan tcell.Event, 16),
		stop:   make(chan struct{}),
	}
	go scr.ChannelEvents(l.events, l.stop)
	return l, nil
}

// Quit makes the event thread stop with the exit code. It is safe to call
// from any goroutine once the platform is open.
func (p *Platform) Quit(code int) error {
	return p.post(quitSignal{code: code})
}

// Screen returns the screen of the platform, or nil before it is open.
func (p *Platform) Screen() tcell.Screen {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screen
}

func (p *Platform) post(data any) error {
	p.mu.Lock()
	scr := p.screen
	p.mu.Unlock()
	if scr == nil {
		return ErrNotOpen
	}
	return scr.PostEvent(tcell.NewEventInterrupt(data))
}

func (l *loop) Peek() app.Wake {
	if !l.started {
		l.started = true
		app.Protect(l.connect)
		return app.WakeDispatched
	}
	select {
	case ev, ok := <-l.events:
		return l.dispatch(ev, ok)
	default:
		return app.WakeNone
	}
}

func (l *loop) Wait(deadline time.Time) app.Wake {
	if w := l.Peek(); w != app.WakeNone {
		return w
	}
	var timeout <-chan time.Time
	if !deadline.IsZero() {
		t := time.NewTimer(time.Until(deadline))
		defer t.Stop()
		timeout = t.C
	}
	select {
	case ev, ok := <-l.events:
		return l.dispatch(ev, ok)
	case <-timeout:
		return app.WakeTimeout
	}
}

func (l *loop) ExitCode() int {
	return l.code
}

func (l *loop) Close() error {
	close(l.stop)
	l.screen.Fini()
	return nil
}

// NewWindow implements app.WindowFactory. The window is the terminal.
func (l *loop) NewWindow(cfg app.Config) (app.NativeWindow, error) {
	if l.window != nil {
		return nil, ErrWindowExists
	}
	if cfg.Title != "" {
		l.screen.SetTitle(cfg.Title)
	}
	l.window = &window{l: l}
	return l.window, nil
}

func (w *window) Handle() system.WindowHandle {
	return Window
}

// Close commits the closing of the terminal window. The terminal itself
// stays usable until the event thread stops.
func (w *window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.l.p.post(closeSignal{})
}

// connect reports the terminal devices and its initial size.
func (l *loop) connect() {
	width, height := l.screen.Size()
	err := app.Enqueue(
		event.Input{Device: Keyboard, Event: device.Connected{Usage: device.UsageKeyboard}},
		event.Input{Device: Mouse, Event: device.Connected{Usage: device.UsageMouse}},
		event.Window{Window: Window, Event: system.Resized{Width: uint32(width), Height: uint32(height)}},
	)
	if err != nil {
		l.p.log.WithError(err).Warn("dropped connect events")
	}
}

func (l *loop) dispatch(ev tcell.Event, ok bool) app.Wake {
	if !ok {
		// The screen stopped.
		return app.WakeQuit
	}
	if ev, ok := ev.(*tcell.EventInterrupt); ok {
		switch d := ev.Data().(type) {
		case quitSignal:
			l.code = d.code
			return app.WakeQuit
		case closeSignal:
			app.Protect(func() {
				l.send(event.Window{Window: Window, Event: system.Closed{State: system.CloseCommitted}})
			})
			return app.WakeDispatched
		}
	}
	app.Protect(func() {
		l.translate(ev)
	})
	return app.WakeDispatched
}

func (l *loop) translate(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isInterrupt(ev) {
			l.send(event.Window{Window: Window, Event: system.Closed{State: system.CloseRequested}})
			return
		}
		l.enqueue(keyEvents(ev)...)
	case *tcell.EventMouse:
		l.enqueue(l.mouseEvents(ev)...)
	case *tcell.EventResize:
		width, height := ev.Size()
		l.send(event.Window{Window: Window, Event: system.Resized{Width: uint32(width), Height: uint32(height)}})
	case *tcell.EventFocus:
		if ev.Focused {
			l.send(event.Window{Window: Window, Event: system.Activated{}})
		} else {
			l.send(event.Window{Window: Window, Event: system.Deactivated{}})
		}
	}
}

func (l *loop) send(e event.Event) {
	if _, err := app.React(e); err != nil {
		l.p.log.WithError(err).Warn("dropped event")
	}
}

func (l *loop) enqueue(events ...event.Event) {
	if len(events) == 0 {
		return
	}
	if err := app.Enqueue(events...); err != nil {
		l.p.log.WithError(err).Warn("dropped events")
	}
}

func isInterrupt(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	r := ev.Rune()
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 && (r == 'c' || r == 'C')
}

// keyEvents returns the press and release of ev.
func keyEvents(ev *tcell.EventKey) []event.Event {
	c := key.Changed{
		Code:      keyCode(ev),
		State:     event.Pressed,
		Modifiers: modifiers(ev.Modifiers()),
	}
	press := event.Input{Device: Keyboard, Window: Window, Event: c}
	c.State = event.Released
	release := event.Input{Device: Keyboard, Window: Window, Event: c}
	return []event.Event{press, release}
}

func keyCode(ev *tcell.EventKey) key.Code {
	if ev.Key() == tcell.KeyRune {
		return key.Code(ev.Rune())
	}
	return key.Code(specialKeys + uint32(ev.Key()))
}

func modifiers(m tcell.ModMask) key.Modifiers {
	var mods key.Modifiers
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModSuper
	}
	return mods
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button pointer.Button
}{
	{tcell.Button1, pointer.ButtonLeft},
	{tcell.Button2, pointer.ButtonRight},
	{tcell.Button3, pointer.ButtonCenter},
	{tcell.Button4, pointer.OtherButton(4)},
	{tcell.Button5, pointer.OtherButton(5)},
	{tcell.Button6, pointer.OtherButton(6)},
	{tcell.Button7, pointer.OtherButton(7)},
	{tcell.Button8, pointer.OtherButton(8)},
}

var wheels = []struct {
	mask tcell.ButtonMask
	x, y float64
}{
	{tcell.WheelUp, 0, 1},
	{tcell.WheelDown, 0, -1},
	{tcell.WheelLeft, -1, 0},
	{tcell.WheelRight, 1, 0},
}

// mouseEvents decodes ev into movement, wheel and button events, in that
// order. Buttons are diffed against the previous mouse event.
func (l *loop) mouseEvents(ev *tcell.EventMouse) []event.Event {
	var events []event.Event
	in := func(e event.InputEvent) {
		events = append(events, event.Input{Device: Mouse, Window: Window, Event: e})
	}
	mods := modifiers(ev.Modifiers())
	x, y := ev.Position()
	pos := image.Pt(x, y)
	if !l.hasPos || pos != l.pos {
		m := pointer.Movement{Absolute: pos, HasAbsolute: true}
		if l.hasPos {
			m.Relative = pos.Sub(l.pos)
			m.HasRelative = true
		}
		in(pointer.Moved{Movement: m, Modifiers: mods})
		l.pos, l.hasPos = pos, true
	}
	mask := ev.Buttons()
	for _, w := range wheels {
		if mask&w.mask != 0 {
			in(pointer.WheelRotated{
				Delta:     pointer.WheelDelta{Kind: pointer.Rotational, X: w.x, Y: w.y},
				Modifiers: mods,
			})
		}
	}
	var pressed input.Set[pointer.Button]
	for _, b := range mouseButtons {
		if mask&b.mask != 0 {
			pressed.Apply(b.button, event.Pressed)
		}
	}
	for _, c := range input.Difference(pressed, l.buttons) {
		in(pointer.ButtonChanged{Button: c.Element, State: c.State, Modifiers: mods})
	}
	l.buttons = pressed
	return events
}
