// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"

	"gaudium.org/app/internal/thread"
)

// ErrWrongThread is returned by operations that must run on the event
// thread when called from another thread.
var ErrWrongThread = errors.New("app: not on the event thread")

// Context is the proof that code runs on an event thread. It is created
// by RunAndJoin and RunAndAbort and must not be used after they return or
// from another thread.
type Context struct {
	thread thread.ID
	loop   Loop
}

// Check returns ErrWrongThread if the caller does not run on the event
// thread of c. Thread identity is only available on Linux and Windows;
// elsewhere every thread reports the same identity and Check always
// succeeds, so code on other threads must not call the hooks.
func (c *Context) Check() error {
	if thread.Current() != c.thread {
		return ErrWrongThread
	}
	return nil
}

// Loop returns the native loop of the event thread, or nil while the
// platform is being opened.
func (c *Context) Loop() Loop {
	return c.loop
}
