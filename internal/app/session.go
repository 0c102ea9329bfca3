package app

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BanTheRewind/learn-by-ai/internal/ai"
	"github.com/BanTheRewind/learn-by-ai/internal/domain"
)

// DefaultThinkDelay is the pause before a computer seat moves.
const DefaultThinkDelay = 500 * time.Millisecond

// Errors returned by session operations. Turn ownership errors wrap
// domain.ErrInvalidMove.
var (
	ErrNotStarted   = errors.New("match not started")
	ErrNotYourTurn  = fmt.Errorf("%w: not your turn", domain.ErrInvalidMove)
	ErrNotHumanSeat = fmt.Errorf("%w: seat is computer-controlled", domain.ErrInvalidMove)
)

// Options configures a Session. Zero values select defaults.
type Options struct {
	ID         string
	ThinkDelay time.Duration
	Rand       *rand.Rand
	Scheduler  Scheduler
	Logger     zerolog.Logger
}

type observerEntry struct {
	fn Observer
}

// Session drives one match at a time: it owns the board and turn state,
// schedules computer moves and notifies observers.
type Session struct {
	mu        sync.Mutex
	id        string
	match     domain.Match
	started   bool
	gen       uint64
	rng       *rand.Rand
	policy    *ai.Policy
	delay     time.Duration
	sched     Scheduler
	log       zerolog.Logger
	observers []*observerEntry
}

// NewSession returns an idle session; call Start to begin a match.
func NewSession(opts Options) *Session {
	if opts.ThinkDelay <= 0 {
		opts.ThinkDelay = DefaultThinkDelay
	}
	if opts.Rand == nil {
		opts.Rand = newRand()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timerScheduler{}
	}
	return &Session{
		id:     opts.ID,
		rng:    opts.Rand,
		policy: ai.NewPolicy(opts.Rand),
		delay:  opts.ThinkDelay,
		sched:  opts.Scheduler,
		log:    opts.Logger,
	}
}

func newRand() *rand.Rand { return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) }

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Subscribe registers an observer and returns a func that removes it.
func (s *Session) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &observerEntry{fn: fn}
	s.observers = append(s.observers, e)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o == e {
					s.observers = append(s.observers[:i], s.observers[i+1:]...)
					break
				}
			}
		})
	}
}

// Start begins a new match with humans human seats and a random first seat.
func (s *Session) Start(humans int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(humans)
}

// Reset discards the current match and starts a fresh one with the same
// number of human seats.
func (s *Session) Reset() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return Snapshot{}, ErrNotStarted
	}
	s.log.Info().Int("moves", s.match.Moves).Msg("match reset")
	return s.startLocked(s.match.Humans)
}

// RequestMove applies a human move for seat at pos.
func (s *Session) RequestMove(seat domain.Seat, pos int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMoveLocked(seat); err != nil {
		s.log.Debug().Err(err).Int("seat", int(seat)).Int("position", pos).Msg("move rejected")
		return s.snapshotLocked(), err
	}
	if err := s.applyLocked(pos); err != nil {
		s.log.Debug().Err(err).Int("seat", int(seat)).Int("position", pos).Msg("move rejected")
		return s.snapshotLocked(), err
	}
	return s.snapshotLocked(), nil
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) checkMoveLocked(seat domain.Seat) error {
	switch {
	case !s.started:
		return ErrNotStarted
	case s.match.Over():
		return domain.ErrGameOver
	case !seat.Valid():
		return domain.ErrInvalidSeat
	case seat != s.match.Turn:
		return ErrNotYourTurn
	case !s.match.IsHuman(seat):
		return ErrNotHumanSeat
	}
	return nil
}

func (s *Session) startLocked(humans int) (Snapshot, error) {
	first := domain.Seat(s.rng.IntN(domain.Seats))
	m, err := domain.NewMatch(humans, first)
	if err != nil {
		return Snapshot{}, err
	}
	s.match = m
	s.started = true
	s.gen++

	s.log.Info().
		Int("humans", humans).
		Int("computers", domain.Seats-humans).
		Str("first", first.String()).
		Msg("match started")
	s.emitLocked(Event{Kind: EventMatchStarted, Seat: first})
	s.promptLocked()
	return s.snapshotLocked(), nil
}

// applyLocked plays pos for the active seat and fires the resulting events.
func (s *Session) applyLocked(pos int) error {
	seat := s.match.Turn
	if err := s.match.Play(pos); err != nil {
		return err
	}
	s.log.Info().
		Str("player", seat.String()).
		Str("symbol", seat.Symbol()).
		Int("position", pos).
		Msg("move applied")
	s.emitLocked(Event{Kind: EventMoveApplied, Seat: seat, Position: pos})

	switch s.match.Status {
	case domain.Won:
		s.log.Info().
			Str("player", s.match.Winner.String()).
			Ints("line", s.match.WinLine[:]).
			Str("board", s.match.Board.String()).
			Msg("match won")
		s.emitLocked(Event{Kind: EventMatchWon, Seat: s.match.Winner, Line: s.match.WinLine})
	case domain.Tied:
		s.log.Info().Str("board", s.match.Board.String()).Msg("match tied")
		s.emitLocked(Event{Kind: EventMatchTied})
	default:
		s.emitLocked(Event{Kind: EventTurnAdvanced, Seat: s.match.Turn})
		s.promptLocked()
	}
	return nil
}

// promptLocked schedules the computer move when the active seat is not human.
func (s *Session) promptLocked() {
	if s.match.Over() || s.match.IsHuman(s.match.Turn) {
		return
	}
	gen, seat := s.gen, s.match.Turn
	s.log.Debug().Str("player", seat.String()).Msg("computer thinking")
	s.emitLocked(Event{Kind: EventAIThinking, Seat: seat})
	s.sched.AfterFunc(s.delay, func() { s.playComputer(gen, seat) })
}

// playComputer runs when the think delay elapses. The move is dropped if the
// match was reset or the turn moved on in the meantime.
func (s *Session) playComputer(gen uint64, seat domain.Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.match.Over() || s.match.Turn != seat {
		s.log.Debug().Str("player", seat.String()).Msg("stale computer move dropped")
		return
	}

	mv, err := s.policy.ChooseMove(s.match.Board, seat)
	if err != nil {
		s.log.Error().Err(err).Str("player", seat.String()).Msg("computer seat active without a legal move")
		return
	}
	ev := s.log.Info().Str("player", seat.String()).Str("reason", mv.Reason.String()).Int("position", mv.Position)
	if mv.Reason == ai.Block {
		ev = ev.Str("blocking", mv.Against.String())
	}
	ev.Msg("computer move chosen")

	if mv.Reason == ai.Block {
		s.emitLocked(Event{Kind: EventBlockDetected, Seat: mv.Against, Position: mv.Position})
	}
	if err := s.applyLocked(mv.Position); err != nil {
		s.log.Error().Err(err).Int("position", mv.Position).Msg("computer move rejected")
	}
}

func (s *Session) emitLocked(e Event) {
	e.State = s.snapshotLocked()
	for _, o := range s.observers {
		o.fn(e)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{ID: s.id, Started: s.started, Match: s.match}
}
