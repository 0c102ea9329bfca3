package app

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/BanTheRewind/learn-by-ai/internal/domain"
)

// manualScheduler queues callbacks until the test runs them.
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
}

func (m *manualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// RunNext fires the oldest queued callback.
func (m *manualScheduler) RunNext() bool {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return false
	}
	f := m.pending[0]
	m.pending = m.pending[1:]
	m.mu.Unlock()
	f()
	return true
}

// RunAll fires callbacks, including ones queued while running, until none
// remain or limit is reached.
func (m *manualScheduler) RunAll(limit int) int {
	n := 0
	for n < limit && m.RunNext() {
		n++
	}
	return n
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *recorder) last(kind EventKind) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func seededRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed+1)) }

func newTestSession(seed uint64) (*Session, *manualScheduler, *recorder) {
	sched := &manualScheduler{}
	sess := NewSession(Options{
		ID:        "test",
		Rand:      seededRand(seed),
		Scheduler: sched,
		Logger:    zerolog.Nop(),
	})
	rec := &recorder{}
	sess.Subscribe(rec.observe)
	return sess, sched, rec
}

// startWithFirst starts a match whose first seat is first, trying seeds
// until the random draw lands there.
func startWithFirst(t *testing.T, humans int, first domain.Seat) (*Session, *manualScheduler, *recorder) {
	t.Helper()
	for seed := uint64(1); seed < 500; seed++ {
		sess, sched, rec := newTestSession(seed)
		snap, err := sess.Start(humans)
		require.NoError(t, err)
		if snap.Match.Turn == first {
			return sess, sched, rec
		}
	}
	t.Fatalf("no seed starts with seat %d", first)
	return nil, nil, nil
}

// emptyExcept returns the lowest empty position not in skip.
func emptyExcept(t *testing.T, b domain.Board, skip ...int) int {
	t.Helper()
	for _, p := range b.Empties() {
		excluded := false
		for _, s := range skip {
			if s == p {
				excluded = true
				break
			}
		}
		if !excluded {
			return p
		}
	}
	t.Fatalf("no empty cell left")
	return -1
}
