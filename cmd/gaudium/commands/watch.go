// SPDX-License-Identifier: Unlicense OR MIT

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"gaudium.org/app"
	"gaudium.org/app/record"
	"gaudium.org/app/term"
	"gaudium.org/internal/log"
	"gaudium.org/io/event"
	"gaudium.org/io/system"
)

// history is the number of events shown by watch.
const history = 200

type watchFlags struct {
	poll     string
	interval time.Duration
	record   string
	logFile  string
}

// watcher shows the events of a terminal and the state of its devices.
type watcher struct {
	tracker
	screen tcell.Screen
	window *app.Window
	poll   app.Poll
	lines  []string
}

func newWatchCmd() *cobra.Command {
	var f watchFlags
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the input events of the terminal",
		Long: `Show the input events of the terminal and the changes of the
keyboard and mouse between ticks. A tick is every event with --poll wait,
every drained queue with --poll ready and every expired --interval with
--poll timeout. Press Ctrl-C to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return watch(cmd.OutOrStdout(), f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.poll, "poll", "wait", "poll mode: wait, ready or timeout")
	flags.DurationVar(&f.interval, "interval", 100*time.Millisecond, "tick interval of --poll timeout")
	flags.StringVar(&f.record, "record", "", "record the session into this database")
	flags.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	return cmd
}

func parsePoll(mode string, interval time.Duration) (app.Poll, error) {
	switch mode {
	case "wait":
		return app.Wait, nil
	case "ready":
		return app.Ready, nil
	case "timeout":
		if interval <= 0 {
			return app.Poll{}, fmt.Errorf("invalid interval %s", interval)
		}
		return app.Timeout(interval), nil
	default:
		return app.Poll{}, fmt.Errorf("invalid poll mode %q", mode)
	}
}

func watch(out io.Writer, f watchFlags) error {
	if !xterm.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("watch: stdin is not a terminal")
	}
	poll, err := parsePoll(f.poll, f.interval)
	if err != nil {
		return err
	}
	// The screen belongs to the event thread; logs go elsewhere.
	log.SetOutput(io.Discard)
	if f.logFile != "" {
		lf, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer lf.Close()
		log.SetOutput(lf)
	}
	var session *record.Session
	if f.record != "" {
		store, err := record.Open(f.record)
		if err != nil {
			return err
		}
		defer store.Close()
		if session, err = store.NewSession(); err != nil {
			return err
		}
		defer session.Close()
	}

	p := term.New()
	err = app.RunAndJoin(p, func(ctx *app.Context) (app.Reactor, error) {
		win, err := app.NewWindow(ctx, app.Title("gaudium watch"))
		if err != nil {
			return nil, err
		}
		w := &watcher{screen: p.Screen(), window: win, poll: poll}
		if session != nil {
			return record.Wrap(w, session), nil
		}
		return w, nil
	})
	if err != nil {
		return err
	}
	if session != nil {
		fmt.Fprintf(out, "recorded session %s\n", session.ID)
	}
	return nil
}

func (w *watcher) React(ctx *app.Context, e event.Event) app.Reaction {
	w.tracker.React(e)
	w.push(describe(e))
	switch e := e.(type) {
	case event.Window:
		switch e.Event {
		case system.Closed{State: system.CloseRequested}:
			if err := w.window.Close(); err != nil {
				return app.Abort
			}
		case system.Closed{State: system.CloseCommitted}:
			return app.Abort
		}
	case event.Application:
		w.tick()
		return app.Continue(w.poll)
	}
	if w.poll == app.Wait {
		w.tick()
	}
	return app.Continue(w.poll)
}

func (w *watcher) tick() {
	for _, l := range w.tracker.tick() {
		w.push("  " + l)
	}
	w.draw()
}

func (w *watcher) push(line string) {
	w.lines = append(w.lines, line)
	if len(w.lines) > history {
		w.lines = w.lines[len(w.lines)-history:]
	}
}

func (w *watcher) draw() {
	w.screen.Clear()
	_, height := w.screen.Size()
	put := func(y int, s string, style tcell.Style) {
		for x, r := range []rune(s) {
			w.screen.SetContent(x, y, r, nil, style)
		}
	}
	put(0, w.status(), tcell.StyleDefault.Reverse(true))
	lines := w.lines
	if n := height - 1; n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for i, l := range lines {
		put(i+1, l, tcell.StyleDefault)
	}
	w.screen.Show()
}
