// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"iter"
	"runtime/debug"
	"sync"
	"weak"

	"gaudium.org/app/internal/thread"
	"gaudium.org/io/event"
)

// ErrNoEventThread is returned by the hooks when the calling thread runs
// no event thread.
var ErrNoEventThread = errors.New("app: no event thread on this thread")

// threads maps operating system threads to their event thread.
var threads = struct {
	sync.Mutex
	m map[thread.ID]weak.Pointer[eventThread]
}{
	m: make(map[thread.ID]weak.Pointer[eventThread]),
}

func register(t *eventThread) {
	threads.Lock()
	defer threads.Unlock()
	threads.m[t.ctx.thread] = weak.Make(t)
}

func unregister(t *eventThread) {
	threads.Lock()
	defer threads.Unlock()
	if threads.m[t.ctx.thread] == weak.Make(t) {
		delete(threads.m, t.ctx.thread)
	}
}

func current() (*eventThread, error) {
	threads.Lock()
	p, ok := threads.m[thread.Current()]
	threads.Unlock()
	var t *eventThread
	if ok {
		t = p.Value()
	}
	if t == nil {
		logger.Warn("event dropped: no event thread on this thread")
		return nil, ErrNoEventThread
	}
	return t, nil
}

// React delivers e to the reactor of the calling thread's event thread
// and returns its reaction. If the reactor is already running, e is
// queued behind the event being handled and the current reaction of the
// event thread is returned.
func React(e event.Event) (Reaction, error) {
	t, err := current()
	if err != nil {
		return Reaction{}, err
	}
	return t.dispatch(e), nil
}

// Enqueue queues events for delivery in order. The event thread delivers
// the whole batch before it dispatches the next native message.
func Enqueue(events ...event.Event) error {
	t, err := current()
	if err != nil {
		return err
	}
	t.push(events...)
	return nil
}

// EnqueueSeq is like Enqueue for a sequence of events.
func EnqueueSeq(events iter.Seq[event.Event]) error {
	t, err := current()
	if err != nil {
		return err
	}
	for e := range events {
		t.push(e)
	}
	return nil
}

// Protect runs f, the body of a native callback. A panic in f is logged
// and terminates the process with status 1.
func Protect(f func()) {
	defer func() {
		if err := recover(); err != nil {
			logger.WithField("panic", err).Errorf("panic in native callback\n%s", debug.Stack())
			exit(1)
		}
	}()
	f()
}
