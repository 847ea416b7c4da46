// SPDX-License-Identifier: Unlicense OR MIT

// Package headless implements an in-memory platform for running event
// threads without an operating system message queue.
//
// Events are posted from any goroutine and dispatched in posting order
// on the event thread. Each call to Send and SendBatch is one native
// message: Send delivers its events one by one through app.React while
// SendBatch decodes into a single batch delivered through app.Enqueue.
package headless

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"gaudium.org/app"
	"gaudium.org/internal/log"
	"gaudium.org/io/device"
	"gaudium.org/io/event"
	"gaudium.org/io/system"
)

// Platform is a headless platform. Its methods are safe for concurrent
// use.
type Platform struct {
	log *logrus.Entry

	mu   sync.Mutex
	msgs []message
	// wakeups wakes up a loop blocked in Wait.
	wakeups chan struct{}

	handles atomic.Uintptr
}

type message struct {
	f    func()
	quit bool
	code int
}

type loop struct {
	p    *Platform
	code int
}

type window struct {
	p      *Platform
	handle system.WindowHandle
	closed atomic.Bool
}

// New returns a headless platform.
func New() *Platform {
	return &Platform{
		log:     log.New("headless"),
		wakeups: make(chan struct{}, 1),
	}
}

// Open implements app.Platform.
func (p *Platform) Open(ctx *app.Context) (app.Loop, error) {
	return &loop{p: p}, nil
}

// Send posts one native message per event. Each is delivered to the
// reactor directly.
func (p *Platform) Send(events ...event.Event) {
	for _, e := range events {
		p.post(message{f: func() {
			if _, err := app.React(e); err != nil {
				p.log.WithError(err).Warn("dropped event")
			}
		}})
	}
}

// SendBatch posts one native message that decodes into events. The
// event thread delivers the batch in order before the next message.
func (p *Platform) SendBatch(events ...event.Event) {
	p.post(message{f: func() {
		if err := app.Enqueue(events...); err != nil {
			p.log.WithError(err).Warn("dropped batch")
		}
	}})
}

// Do posts f to run on the event thread.
func (p *Platform) Do(f func()) {
	p.post(message{f: f})
}

// Quit asks the event thread to stop with the exit code. Messages posted
// before Quit are dispatched first.
func (p *Platform) Quit(code int) {
	p.post(message{quit: true, code: code})
}

// Connect allocates a device and posts its Connected event.
func (p *Platform) Connect(usage device.Usage) device.Handle {
	h := device.FromRaw(p.handles.Add(1))
	p.Send(event.Input{Device: h, Event: device.Connected{Usage: usage}})
	return h
}

// Disconnect posts the Disconnected event of h.
func (p *Platform) Disconnect(h device.Handle) {
	p.Send(event.Input{Device: h, Event: device.Disconnected{}})
}

// RequestClose posts a close request for w, as if the user clicked its
// close button.
func (p *Platform) RequestClose(w system.WindowHandle) {
	p.Send(event.Window{Window: w, Event: system.Closed{State: system.CloseRequested}})
}

func (p *Platform) post(m message) {
	p.mu.Lock()
	p.msgs = append(p.msgs, m)
	p.mu.Unlock()
	select {
	case p.wakeups <- struct{}{}:
	default:
	}
}

func (p *Platform) next() (message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.msgs) == 0 {
		return message{}, false
	}
	m := p.msgs[0]
	p.msgs[0] = message{}
	p.msgs = p.msgs[1:]
	return m, true
}

func (l *loop) Peek() app.Wake {
	m, ok := l.p.next()
	if !ok {
		return app.WakeNone
	}
	if m.quit {
		l.code = m.code
		return app.WakeQuit
	}
	app.Protect(m.f)
	return app.WakeDispatched
}

func (l *loop) Wait(deadline time.Time) app.Wake {
	var timeout <-chan time.Time
	if !deadline.IsZero() {
		t := time.NewTimer(time.Until(deadline))
		defer t.Stop()
		timeout = t.C
	}
	for {
		if w := l.Peek(); w != app.WakeNone {
			return w
		}
		select {
		case <-l.p.wakeups:
		case <-timeout:
			return app.WakeTimeout
		}
	}
}

func (l *loop) ExitCode() int {
	return l.code
}

func (l *loop) Close() error {
	return nil
}

// NewWindow implements app.WindowFactory.
func (l *loop) NewWindow(cfg app.Config) (app.NativeWindow, error) {
	w := &window{
		p:      l.p,
		handle: system.WindowFromRaw(l.p.handles.Add(1)),
	}
	l.p.log.WithField("title", cfg.Title).Debugf("window %d created", w.handle.Raw())
	return w, nil
}

func (w *window) Handle() system.WindowHandle {
	return w.handle
}

// Close posts the CloseCommitted event of w. Closing twice is a no-op.
func (w *window) Close() error {
	if w.closed.Swap(true) {
		return nil
	}
	w.p.Send(event.Window{Window: w.handle, Event: system.Closed{State: system.CloseCommitted}})
	return nil
}
