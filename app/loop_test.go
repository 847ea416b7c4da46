// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaudium.org/io/event"
	"gaudium.org/io/system"
)

// fakeLoop dispatches scripted native messages. A Wait without deadline
// and without messages quits.
type fakeLoop struct {
	msgs   []func()
	waits  int
	code   int
	closed bool
}

type fakePlatform struct {
	loop Loop
	err  error
}

type recorder struct {
	events    []event.Event
	reactions []Reaction
	aborts    int
}

type pollRecorder struct {
	recorder
	polls []Reaction
}

func (l *fakeLoop) Peek() Wake {
	if len(l.msgs) == 0 {
		return WakeNone
	}
	m := l.msgs[0]
	l.msgs = l.msgs[1:]
	m()
	return WakeDispatched
}

func (l *fakeLoop) Wait(deadline time.Time) Wake {
	l.waits++
	if w := l.Peek(); w != WakeNone {
		return w
	}
	if deadline.IsZero() {
		return WakeQuit
	}
	return WakeTimeout
}

func (l *fakeLoop) ExitCode() int { return l.code }

func (l *fakeLoop) Close() error {
	l.closed = true
	return nil
}

func (p fakePlatform) Open(ctx *Context) (Loop, error) {
	return p.loop, p.err
}

func (r *recorder) React(ctx *Context, e event.Event) Reaction {
	r.events = append(r.events, e)
	if len(r.reactions) == 0 {
		return Continue(Wait)
	}
	x := r.reactions[0]
	r.reactions = r.reactions[1:]
	return x
}

func (r *recorder) Abort() {
	r.aborts++
}

func (r *pollRecorder) Poll(ctx *Context) Reaction {
	if len(r.polls) == 0 {
		return Continue(Wait)
	}
	x := r.polls[0]
	r.polls = r.polls[1:]
	return x
}

func moved(n int32) event.Event {
	return event.Window{Window: system.WindowFromRaw(1), Event: system.Moved{X: n}}
}

func enqueue(t *testing.T, events ...event.Event) func() {
	return func() {
		assert.NoError(t, Enqueue(events...))
	}
}

func runWith(t *testing.T, l *fakeLoop, r Reactor) {
	t.Helper()
	err := RunAndJoin(fakePlatform{loop: l}, func(ctx *Context) (Reactor, error) {
		return r, nil
	})
	require.NoError(t, err)
	assert.True(t, l.closed)
}

func TestAbortSticky(t *testing.T) {
	l := &fakeLoop{msgs: []func(){
		enqueue(t, moved(1), moved(2), moved(3)),
		enqueue(t, moved(4)),
	}}
	r := &recorder{reactions: []Reaction{Continue(Wait), Abort, Continue(Ready)}}
	runWith(t, l, r)

	assert.Equal(t, []event.Event{moved(1), moved(2), moved(3)}, r.events)
	assert.Equal(t, 1, r.aborts)
	assert.Len(t, l.msgs, 1, "no native message is dispatched after abort")
	assert.Zero(t, l.waits)
}

func TestQueueOrder(t *testing.T) {
	l := &fakeLoop{msgs: []func(){
		enqueue(t, moved(1), moved(2), moved(3)),
		func() {
			_, err := React(moved(4))
			assert.NoError(t, err)
		},
	}}
	r := new(recorder)
	runWith(t, l, r)

	assert.Equal(t, []event.Event{moved(1), moved(2), moved(3), moved(4)}, r.events)
	assert.Equal(t, 1, r.aborts)
}

func TestReactAfterQueuedEvents(t *testing.T) {
	l := &fakeLoop{msgs: []func(){
		func() {
			assert.NoError(t, Enqueue(moved(1), moved(2)))
			_, err := React(moved(3))
			assert.NoError(t, err)
		},
	}}
	r := new(recorder)
	runWith(t, l, r)
	assert.Equal(t, []event.Event{moved(1), moved(2), moved(3)}, r.events)
}

// enqueuePoller queues an event from its first Poll.
type enqueuePoller struct {
	recorder
	polls int
}

func (r *enqueuePoller) Poll(ctx *Context) Reaction {
	r.polls++
	if r.polls == 1 {
		if err := Enqueue(moved(1)); err != nil {
			return Abort
		}
	}
	return Continue(Wait)
}

func TestEventsQueuedWhilePolling(t *testing.T) {
	l := new(fakeLoop)
	r := new(enqueuePoller)
	runWith(t, l, r)
	assert.Equal(t, []event.Event{moved(1)}, r.events)
	assert.Equal(t, 2, r.polls)
	assert.Equal(t, 1, l.waits)
}

func TestEnqueueSeq(t *testing.T) {
	l := &fakeLoop{msgs: []func(){
		func() {
			err := EnqueueSeq(func(yield func(event.Event) bool) {
				for i := int32(1); i <= 3; i++ {
					if !yield(moved(i)) {
						return
					}
				}
			})
			assert.NoError(t, err)
		},
	}}
	r := new(recorder)
	runWith(t, l, r)
	assert.Equal(t, []event.Event{moved(1), moved(2), moved(3)}, r.events)
}

func TestNestedReactIsQueued(t *testing.T) {
	l := &fakeLoop{msgs: []func(){
		func() {
			_, err := React(moved(1))
			assert.NoError(t, err)
		},
	}}
	r := &Stateful[[]event.Event]{
		F: func(ctx *Context, seen *[]event.Event, e event.Event) Reaction {
			*seen = append(*seen, e)
			if e == moved(1) {
				rc, err := React(moved(2))
				assert.NoError(t, err)
				assert.Equal(t, Continue(Wait), rc)
				assert.Equal(t, []event.Event{moved(1)}, *seen, "nested event must not re-enter")
			}
			return Continue(Wait)
		},
	}
	runWith(t, l, r)
	assert.Equal(t, []event.Event{moved(1), moved(2)}, r.State)
}

func TestReadySynthesizesQueueExhausted(t *testing.T) {
	l := &fakeLoop{msgs: []func(){enqueue(t, moved(1))}}
	r := &recorder{reactions: []Reaction{Continue(Ready), Abort}}
	runWith(t, l, r)

	assert.Equal(t, []event.Event{
		moved(1),
		event.Application{Event: event.QueueExhausted},
	}, r.events)
	assert.Zero(t, l.waits)
}

func TestTimeoutExpires(t *testing.T) {
	l := new(fakeLoop)
	r := &pollRecorder{
		recorder: recorder{reactions: []Reaction{Abort}},
		polls:    []Reaction{Continue(Timeout(time.Millisecond))},
	}
	runWith(t, l, r)

	assert.Equal(t, []event.Event{event.Application{Event: event.TimeoutExpired}}, r.events)
	assert.Equal(t, 1, l.waits)
}

func TestPastDeadlineExpiresImmediately(t *testing.T) {
	l := new(fakeLoop)
	r := &pollRecorder{
		recorder: recorder{reactions: []Reaction{Abort}},
		polls:    []Reaction{Continue(WaitUntil(time.Now().Add(-time.Hour)))},
	}
	runWith(t, l, r)

	assert.Equal(t, []event.Event{event.Application{Event: event.TimeoutExpired}}, r.events)
	assert.Zero(t, l.waits)
}

func TestPollerAbort(t *testing.T) {
	l := new(fakeLoop)
	r := &pollRecorder{polls: []Reaction{Abort}}
	runWith(t, l, r)
	assert.Empty(t, r.events)
	assert.Equal(t, 1, r.aborts)
}

func TestHooksWithoutEventThread(t *testing.T) {
	_, err := React(moved(1))
	assert.ErrorIs(t, err, ErrNoEventThread)
	assert.ErrorIs(t, Enqueue(moved(1)), ErrNoEventThread)

	runWith(t, new(fakeLoop), new(recorder))
	assert.ErrorIs(t, Enqueue(moved(1)), ErrNoEventThread, "hooks must be cleared when the loop ends")
}

func TestPanicClearsHooks(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	l := &fakeLoop{msgs: []func(){enqueue(t, moved(1))}}
	assert.Panics(t, func() {
		RunAndJoin(fakePlatform{loop: l}, func(ctx *Context) (Reactor, error) {
			return ReactorFunc(func(ctx *Context, e event.Event) Reaction {
				panic("reactor failed")
			}), nil
		})
	})
	assert.True(t, l.closed)
	assert.ErrorIs(t, Enqueue(moved(1)), ErrNoEventThread)
}

func TestOpenError(t *testing.T) {
	errOpen := errors.New("open failed")
	err := RunAndJoin(fakePlatform{err: errOpen}, func(ctx *Context) (Reactor, error) {
		assert.Fail(t, "build called")
		return nil, nil
	})
	assert.ErrorIs(t, err, errOpen)
}

func TestBuildError(t *testing.T) {
	errBuild := errors.New("build failed")
	l := new(fakeLoop)
	err := RunAndJoin(fakePlatform{loop: l}, func(ctx *Context) (Reactor, error) {
		assert.NoError(t, ctx.Check())
		assert.Equal(t, Loop(l), ctx.Loop())
		return nil, errBuild
	})
	assert.ErrorIs(t, err, errBuild)
	assert.True(t, l.closed)
}

func stubExit(t *testing.T) *int {
	code := -1
	old := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = old })
	return &code
}

func TestRunAndAbortExitCode(t *testing.T) {
	code := stubExit(t)
	RunAndAbort(fakePlatform{loop: &fakeLoop{code: 3}}, func(ctx *Context) (Reactor, error) {
		return new(recorder), nil
	})
	assert.Equal(t, 3, *code)

	l := &fakeLoop{code: 3, msgs: []func(){enqueue(t, moved(1))}}
	RunAndAbort(fakePlatform{loop: l}, func(ctx *Context) (Reactor, error) {
		return &recorder{reactions: []Reaction{Abort}}, nil
	})
	assert.Equal(t, 0, *code)
}

func TestProtectPanic(t *testing.T) {
	code := stubExit(t)
	Protect(func() {
		panic("boom")
	})
	assert.Equal(t, 1, *code)

	*code = -1
	ran := false
	Protect(func() { ran = true })
	assert.True(t, ran)
	assert.Equal(t, -1, *code)
}
