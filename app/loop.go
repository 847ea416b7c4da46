// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"time"

	"github.com/sirupsen/logrus"

	"gaudium.org/io/event"
)

// eventThread is the state of a running event thread.
type eventThread struct {
	ctx     *Context
	loop    Loop
	reactor Reactor
	poller  Poller
	log     *logrus.Entry

	// poll is the Poll of the latest Continue returned by React.
	poll    Poll
	aborted bool
	quit    bool
	// busy is set while the reactor runs. Events that arrive while busy
	// are queued.
	busy  bool
	queue []event.Event
}

func newEventThread(ctx *Context, loop Loop, r Reactor, log *logrus.Entry) *eventThread {
	t := &eventThread{
		ctx:     ctx,
		loop:    loop,
		reactor: r,
		log:     log,
	}
	t.poller, _ = r.(Poller)
	return t
}

// run runs the loop until the reactor aborts or the platform quits.
func (t *eventThread) run() {
	for {
		t.flush()
		if t.done() {
			break
		}
		p, ok := t.pollPhase()
		if !ok {
			break
		}
		t.resume(p)
		if t.done() {
			break
		}
	}
	if n := len(t.queue); n > 0 {
		t.log.Debugf("dropping %d queued events", n)
		t.queue = nil
	}
}

func (t *eventThread) done() bool {
	return t.aborted || t.quit
}

// flush drains the queue, then dispatches native messages until none is
// pending, draining the queue after each.
func (t *eventThread) flush() {
	t.drain()
	for !t.done() {
		switch w := t.loop.Peek(); w {
		case WakeNone:
			return
		case WakeQuit:
			t.quit = true
			t.log.Info("platform quit")
		default:
			t.drain()
		}
	}
}

func (t *eventThread) pollPhase() (Poll, bool) {
	if t.poller == nil {
		return t.poll, true
	}
	p, ok := t.poller.Poll(t.ctx).Poll()
	if !ok {
		t.abort()
		return Poll{}, false
	}
	return p, true
}

func (t *eventThread) resume(p Poll) {
	t.log.Debugf("resume %v", p)
	now := time.Now()
	deadline, timed := p.deadlineFrom(now)
	switch {
	case len(t.queue) > 0:
		// Events queued while polling are delivered by the next flush.
	case p.mode == pollReady:
		t.push(event.Application{Event: event.QueueExhausted})
	case !timed:
		t.wake(t.loop.Wait(time.Time{}))
	case !deadline.After(now):
		t.push(event.Application{Event: event.TimeoutExpired})
	default:
		t.wake(t.loop.Wait(deadline))
	}
}

func (t *eventThread) wake(w Wake) {
	switch w {
	case WakeDispatched:
		t.drain()
	case WakeTimeout:
		t.push(event.Application{Event: event.TimeoutExpired})
	case WakeQuit:
		t.quit = true
		t.log.Info("platform quit")
	}
}

// dispatch delivers e to the reactor after the events already queued, or
// queues it if the reactor is already running.
func (t *eventThread) dispatch(e event.Event) Reaction {
	if t.busy {
		t.push(e)
		return t.reaction()
	}
	t.drain()
	t.busy = true
	r := t.react(e)
	t.busy = false
	t.drain()
	return r
}

// drain delivers queued events oldest first until the queue is empty,
// including events queued while draining.
func (t *eventThread) drain() {
	if t.busy {
		return
	}
	t.busy = true
	defer func() {
		t.busy = false
	}()
	for len(t.queue) > 0 {
		e := t.queue[0]
		copy(t.queue, t.queue[1:])
		t.queue[len(t.queue)-1] = nil
		t.queue = t.queue[:len(t.queue)-1]
		t.react(e)
	}
}

func (t *eventThread) push(events ...event.Event) {
	t.queue = append(t.queue, events...)
}

func (t *eventThread) react(e event.Event) Reaction {
	r := t.reactor.React(t.ctx, e)
	if p, ok := r.Poll(); ok {
		t.poll = p
	} else {
		t.abort()
	}
	return r
}

// abort marks the event thread aborted. Abort is sticky.
func (t *eventThread) abort() {
	if !t.aborted {
		t.aborted = true
		t.log.Info("reactor aborted")
	}
}

// reaction is the current decision of the event thread.
func (t *eventThread) reaction() Reaction {
	if t.aborted {
		return Abort
	}
	return Continue(t.poll)
}
