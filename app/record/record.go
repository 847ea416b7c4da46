// SPDX-License-Identifier: Unlicense OR MIT

// Package record stores the event streams of event threads in a SQLite
// database, for inspection and replay.
package record

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"gaudium.org/app"
	"gaudium.org/internal/log"
	"gaudium.org/io/event"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id      TEXT PRIMARY KEY,
	started INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
	session TEXT NOT NULL REFERENCES sessions(id),
	seq     INTEGER NOT NULL,
	at      INTEGER NOT NULL,
	data    TEXT NOT NULL,
	PRIMARY KEY (session, seq)
);
`

// ErrNoSession is returned by Load for unknown sessions.
var ErrNoSession = errors.New("record: no such session")

// Store is a database of recorded sessions.
type Store struct {
	db  *sql.DB
	log *logrus.Entry
}

// Session records the events of one event thread. It is not safe for
// concurrent use.
type Session struct {
	ID uuid.UUID

	store  *Store
	insert *sql.Stmt
	seq    int64
}

// Entry is a recorded event.
type Entry struct {
	Seq   int64
	At    time.Time
	Event event.Event
}

// Info describes a recorded session.
type Info struct {
	ID      uuid.UUID
	Started time.Time
	Events  int
}

type recorder struct {
	app.Reactor
	session *Session
	poll    app.Poll
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("record: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("record: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("record: create schema: %w", err)
	}
	return &Store{db: db, log: log.New("record")}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewSession starts a session.
func (s *Store) NewSession() (*Session, error) {
	id := uuid.New()
	if _, err := s.db.Exec("INSERT INTO sessions (id, started) VALUES (?, ?)", id.String(), time.Now().UnixNano()); err != nil {
		return nil, fmt.Errorf("record: new session: %w", err)
	}
	stmt, err := s.db.Prepare("INSERT INTO events (session, seq, at, data) VALUES (?, ?, ?, ?)")
	if err != nil {
		return nil, fmt.Errorf("record: new session: %w", err)
	}
	s.log.WithField("session", id).Debug("session started")
	return &Session{ID: id, store: s, insert: stmt}, nil
}

// Record appends e to the session.
func (s *Session) Record(e event.Event) error {
	data, err := encode(e)
	if err != nil {
		return err
	}
	if _, err := s.insert.Exec(s.ID.String(), s.seq, time.Now().UnixNano(), string(data)); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	s.seq++
	return nil
}

// Close releases the resources of the session.
func (s *Session) Close() error {
	return s.insert.Close()
}

// Load returns the events of a session in recording order.
func (s *Store) Load(id uuid.UUID) ([]Entry, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions WHERE id = ?", id.String()).Scan(&n); err != nil {
		return nil, fmt.Errorf("record: load: %w", err)
	}
	if n == 0 {
		return nil, ErrNoSession
	}
	rows, err := s.db.Query("SELECT seq, at, data FROM events WHERE session = ? ORDER BY seq", id.String())
	if err != nil {
		return nil, fmt.Errorf("record: load: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var (
			ent  Entry
			at   int64
			data string
		)
		if err := rows.Scan(&ent.Seq, &at, &data); err != nil {
			return nil, fmt.Errorf("record: load: %w", err)
		}
		ent.At = time.Unix(0, at)
		if ent.Event, err = decode([]byte(data)); err != nil {
			return nil, fmt.Errorf("record: load event %d: %w", ent.Seq, err)
		}
		entries = append(entries, ent)
	}
	return entries, rows.Err()
}

// Sessions lists the recorded sessions, oldest first.
func (s *Store) Sessions() ([]Info, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.started, COUNT(e.seq)
		FROM sessions s LEFT JOIN events e ON e.session = s.id
		GROUP BY s.id
		ORDER BY s.started`)
	if err != nil {
		return nil, fmt.Errorf("record: sessions: %w", err)
	}
	defer rows.Close()
	var infos []Info
	for rows.Next() {
		var (
			info    Info
			id      string
			started int64
		)
		if err := rows.Scan(&id, &started, &info.Events); err != nil {
			return nil, fmt.Errorf("record: sessions: %w", err)
		}
		if info.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("record: sessions: %w", err)
		}
		info.Started = time.Unix(0, started)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Wrap returns a reactor that records every event in s before passing
// it to r. A failure to record aborts the event thread.
func Wrap(r app.Reactor, s *Session) app.Reactor {
	return &recorder{Reactor: r, session: s}
}

func (r *recorder) React(ctx *app.Context, e event.Event) app.Reaction {
	if err := r.session.Record(e); err != nil {
		r.session.store.log.WithError(err).Error("recording failed")
		return app.Abort
	}
	rc := r.Reactor.React(ctx, e)
	if p, ok := rc.Poll(); ok {
		r.poll = p
	}
	return rc
}

func (r *recorder) Poll(ctx *app.Context) app.Reaction {
	if p, ok := r.Reactor.(app.Poller); ok {
		return p.Poll(ctx)
	}
	return app.Continue(r.poll)
}

func (r *recorder) Abort() {
	if a, ok := r.Reactor.(app.Aborter); ok {
		a.Abort()
	}
}
