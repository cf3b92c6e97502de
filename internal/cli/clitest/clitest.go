// Package clitest builds command contexts for the CLI packages' tests.
package clitest

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/storage/sqlite"
)

// Sender records notifications instead of delivering them.
type Sender struct {
	mu   sync.Mutex
	Err  error // returned by Available
	Sent []string
}

func (s *Sender) Available() error { return s.Err }

func (s *Sender) Notify(title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, title+": "+body)
	return nil
}

// Env is a command context over a fresh SQLite journal.
type Env struct {
	Ctx    *cli.Context
	Store  *sqlite.Store
	Sender *Sender
	Out    *bytes.Buffer
	Now    time.Time
}

// Output returns everything the commands printed so far.
func (e *Env) Output() string { return e.Out.String() }

// Input feeds answers to interactive prompts.
func (e *Env) Input(lines ...string) {
	e.Ctx.In = strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// New returns an initialized environment whose clock is pinned to now
// (local time, e.g. "2024-03-05T10:00:00").
func New(t *testing.T, now string) *Env {
	t.Helper()

	ts, err := time.ParseInLocation("2006-01-02T15:04:05", now, time.Local)
	if err != nil {
		t.Fatalf("bad test time %q: %v", now, err)
	}

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "daylog.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	sender := &Sender{}
	ctx := cli.NewContext(store, sender, func() time.Time { return ts })
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader("")

	t.Cleanup(func() {
		ctx.Scheduler.CancelAll()
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	return &Env{Ctx: ctx, Store: store, Sender: sender, Out: out, Now: ts}
}
