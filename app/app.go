// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"

	"gaudium.org/app/internal/thread"
	"gaudium.org/internal/log"
)

var logger = log.New("app")

// exit terminates the process. Tests replace it.
var exit = os.Exit

// RunOption configures RunAndJoin and RunAndAbort.
type RunOption func(cfg *runConfig)

type runConfig struct {
	log *logrus.Entry
}

// WithLogger sets the logger of the event thread.
func WithLogger(l *logrus.Entry) RunOption {
	return func(cfg *runConfig) {
		cfg.log = l
	}
}

// RunAndJoin runs an event thread on the calling goroutine, locked to
// its operating system thread. It opens p, builds the reactor and runs
// the loop until the reactor aborts or the platform quits. The reactor's
// Abort method, if any, is called exactly once before the loop is closed.
func RunAndJoin(p Platform, build func(ctx *Context) (Reactor, error), options ...RunOption) error {
	_, err := run(p, build, options)
	return err
}

// RunAndAbort is like RunAndJoin but terminates the process when the
// event thread stops. The exit code is the code the platform quit with,
// 0 if the reactor aborted, or 1 if the event thread failed to start.
func RunAndAbort(p Platform, build func(ctx *Context) (Reactor, error), options ...RunOption) {
	code, err := run(p, build, options)
	if err != nil {
		logger.WithError(err).Error("event thread failed")
		code = 1
	}
	exit(code)
}

func run(p Platform, build func(ctx *Context) (Reactor, error), options []RunOption) (code int, err error) {
	cfg := runConfig{log: logger}
	for _, o := range options {
		o(&cfg)
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctx := &Context{thread: thread.Current()}
	loop, err := p.Open(ctx)
	if err != nil {
		return 0, fmt.Errorf("app: open platform: %w", err)
	}
	defer func() {
		if cerr := loop.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("app: close platform: %w", cerr)
		}
	}()
	ctx.loop = loop
	r, err := build(ctx)
	if err != nil {
		return 0, err
	}

	t := newEventThread(ctx, loop, r, cfg.log)
	register(t)
	defer unregister(t)
	t.run()
	unregister(t)
	if a, ok := r.(Aborter); ok {
		a.Abort()
	}
	if t.quit {
		code = loop.ExitCode()
	}
	return code, nil
}
