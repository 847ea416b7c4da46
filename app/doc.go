// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app runs an event thread: a loop that dispatches the events of a
native platform to a Reactor.

# Reactors

A Reactor receives every event through React and answers with a
Reaction: either Continue with a Poll that tells the event thread how to
wait for the next event, or Abort, which stops the loop. Abort is
sticky; a later Continue does not revive the loop.

	err := app.RunAndJoin(headless.New(), func(ctx *app.Context) (app.Reactor, error) {
		return app.ReactorFunc(func(ctx *app.Context, e event.Event) app.Reaction {
			if e, ok := e.(event.Window); ok && e.Event == (system.Closed{State: system.CloseRequested}) {
				return app.Abort
			}
			return app.Continue(app.Wait)
		}), nil
	})

# Phases

Each iteration of the event thread has three phases. The flush phase
drains the queue of pending events and dispatches every native message
that is ready, draining the queue after each. The poll phase asks the
reactor for the next Poll. The resume phase waits according to the Poll:
Ready synthesizes QueueExhausted, Wait blocks until a native message is
dispatched, WaitUntil and Timeout block until their deadline and then
synthesize TimeoutExpired.

# Threads

The event thread is locked to the operating system thread that calls
RunAndJoin or RunAndAbort. The Context passed to the reactor belongs to
that thread, and operations that require the event thread check it.
Native bindings deliver events through the React and Enqueue hooks, which
find the event thread of the calling operating system thread.
*/
package app
