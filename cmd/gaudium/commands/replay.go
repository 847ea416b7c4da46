// SPDX-License-Identifier: Unlicense OR MIT

package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gaudium.org/app"
	"gaudium.org/app/headless"
	"gaudium.org/app/record"
	"gaudium.org/io/event"
)

type replayFlags struct {
	db       string
	session  string
	realtime bool
}

// replayer prints the events of a replayed session and the changes of
// the devices after each event.
type replayer struct {
	tracker
	out io.Writer
	n   int
	err error
}

func newReplayCmd() *cobra.Command {
	var f replayFlags
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a recorded session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return replay(cmd.OutOrStdout(), f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.db, "db", "", "database of recorded sessions")
	flags.StringVar(&f.session, "session", "", "id of the session to replay")
	flags.BoolVar(&f.realtime, "realtime", false, "replay with the recorded timing")
	cmd.MarkFlagRequired("db")      //nolint:errcheck
	cmd.MarkFlagRequired("session") //nolint:errcheck
	return cmd
}

func replay(out io.Writer, f replayFlags) error {
	id, err := uuid.Parse(f.session)
	if err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}
	store, err := record.Open(f.db)
	if err != nil {
		return err
	}
	defer store.Close()
	entries, err := store.Load(id)
	if err != nil {
		return err
	}

	p := headless.New()
	go feed(p, entries, f.realtime)
	r := &replayer{out: out}
	err = app.RunAndJoin(p, func(ctx *app.Context) (app.Reactor, error) {
		return r, nil
	})
	if err != nil {
		return err
	}
	return r.err
}

// feed posts entries to p and quits.
func feed(p *headless.Platform, entries []record.Entry, realtime bool) {
	for i, ent := range entries {
		if realtime && i > 0 {
			time.Sleep(ent.At.Sub(entries[i-1].At))
		}
		p.Send(ent.Event)
	}
	p.Quit(0)
}

func (r *replayer) React(ctx *app.Context, e event.Event) app.Reaction {
	r.tracker.React(e)
	if _, err := fmt.Fprintf(r.out, "%4d %s\n", r.n, describe(e)); err != nil {
		r.err = err
		return app.Abort
	}
	r.n++
	for _, l := range r.tick() {
		if _, err := fmt.Fprintf(r.out, "     %s\n", l); err != nil {
			r.err = err
			return app.Abort
		}
	}
	return app.Continue(app.Wait)
}
