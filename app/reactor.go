// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"time"

	"gaudium.org/io/event"
)

// Poll describes how the event thread waits for the next event. The zero
// Poll is Wait.
type Poll struct {
	mode     pollMode
	deadline time.Time
	timeout  time.Duration
}

// Reaction is the answer of a reactor to an event: continue with a Poll,
// or abort the event thread. The zero Reaction is Continue(Wait).
type Reaction struct {
	abort bool
	poll  Poll
}

// Reactor handles the events of an event thread.
type Reactor interface {
	// React handles e and returns the reaction of the reactor.
	React(ctx *Context, e event.Event) Reaction
}

// Poller is implemented by reactors that choose the Poll of the event
// thread independently of events. Reactors that don't implement Poller
// are polled with the Poll of their latest Continue, initially Wait.
type Poller interface {
	Poll(ctx *Context) Reaction
}

// Aborter is implemented by reactors that release resources when the
// event thread stops. Abort is called exactly once, after the last event.
type Aborter interface {
	Abort()
}

// ReactorFunc adapts a function to the Reactor interface.
type ReactorFunc func(ctx *Context, e event.Event) Reaction

// Stateful is a Reactor that threads State through F.
type Stateful[T any] struct {
	State T
	F     func(ctx *Context, state *T, e event.Event) Reaction
}

type pollMode uint8

const (
	pollWait pollMode = iota
	pollReady
	pollWaitUntil
	pollTimeout
)

var (
	// Wait blocks until a native event arrives.
	Wait = Poll{}
	// Ready doesn't block. The event thread synthesizes QueueExhausted
	// once the native queue is empty.
	Ready = Poll{mode: pollReady}
)

// Abort stops the event thread.
var Abort = Reaction{abort: true}

// WaitUntil blocks until a native event arrives or t passes. If t passes
// first, the event thread synthesizes TimeoutExpired.
func WaitUntil(t time.Time) Poll {
	return Poll{mode: pollWaitUntil, deadline: t}
}

// Timeout is like WaitUntil with a deadline of d from the start of the
// wait.
func Timeout(d time.Duration) Poll {
	return Poll{mode: pollTimeout, timeout: d}
}

// Continue keeps the event thread running with poll p.
func Continue(p Poll) Reaction {
	return Reaction{poll: p}
}

// FromError returns Abort if err is not nil, r otherwise. Reactors use it
// to fold failures into their reaction:
//
//	return app.FromError(r, ch.Send(e))
func FromError(r Reaction, err error) Reaction {
	if err != nil {
		return Abort
	}
	return r
}

// FromOK returns r if ok, Abort otherwise.
func FromOK(r Reaction, ok bool) Reaction {
	if !ok {
		return Abort
	}
	return r
}

// Reaction returns Continue(p).
func (p Poll) Reaction() Reaction {
	return Continue(p)
}

// deadlineFrom returns the deadline of p for a wait starting at now, or
// false if p has none.
func (p Poll) deadlineFrom(now time.Time) (time.Time, bool) {
	switch p.mode {
	case pollWaitUntil:
		return p.deadline, true
	case pollTimeout:
		return now.Add(p.timeout), true
	default:
		return time.Time{}, false
	}
}

func (p Poll) String() string {
	switch p.mode {
	case pollWait:
		return "Wait"
	case pollReady:
		return "Ready"
	case pollWaitUntil:
		return fmt.Sprintf("WaitUntil(%s)", p.deadline.Format(time.RFC3339Nano))
	case pollTimeout:
		return fmt.Sprintf("Timeout(%s)", p.timeout)
	default:
		panic("invalid Poll")
	}
}

// Aborted reports whether r is Abort.
func (r Reaction) Aborted() bool {
	return r.abort
}

// Poll returns the Poll of a Continue reaction, or false for Abort.
func (r Reaction) Poll() (Poll, bool) {
	if r.abort {
		return Poll{}, false
	}
	return r.poll, true
}

// Map replaces the Poll of a Continue reaction with f(poll). Abort is
// returned unchanged.
func (r Reaction) Map(f func(Poll) Poll) Reaction {
	if r.abort {
		return r
	}
	return Continue(f(r.poll))
}

func (r Reaction) String() string {
	if r.abort {
		return "Abort"
	}
	return "Continue(" + r.poll.String() + ")"
}

func (f ReactorFunc) React(ctx *Context, e event.Event) Reaction {
	return f(ctx, e)
}

func (s *Stateful[T]) React(ctx *Context, e event.Event) Reaction {
	return s.F(ctx, &s.State, e)
}
