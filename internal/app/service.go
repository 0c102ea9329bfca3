package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BanTheRewind/learn-by-ai/internal/domain"
)

// ErrNotFound is returned for an unknown game ID.
var ErrNotFound = errors.New("game not found")

// subscriberBuffer bounds how far a subscriber may fall behind before it is
// dropped. A single move can emit up to five events.
const subscriberBuffer = 32

// ServiceOptions configures every session the service creates.
type ServiceOptions struct {
	ThinkDelay time.Duration
	Scheduler  Scheduler
	Logger     zerolog.Logger
	// NewRand supplies each session's random source. Nil uses a fresh PCG.
	NewRand func() *rand.Rand
}

type subscriber struct {
	ch        chan Event
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages sessions and their subscribers.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	subs     map[string]map[*subscriber]struct{}
	opts     ServiceOptions
	log      zerolog.Logger
}

// NewService creates an empty service.
func NewService(opts ServiceOptions) *Service {
	if opts.NewRand == nil {
		opts.NewRand = newRand
	}
	return &Service{
		sessions: make(map[string]*Session),
		subs:     make(map[string]map[*subscriber]struct{}),
		opts:     opts,
		log:      opts.Logger,
	}
}

// CreateGame registers a new session and starts its first match.
func (s *Service) CreateGame(humans int) (Snapshot, error) {
	if humans < 0 || humans > domain.Seats {
		return Snapshot{}, domain.ErrInvalidHumans
	}
	id := uuid.NewString()
	sess := NewSession(Options{
		ID:         id,
		ThinkDelay: s.opts.ThinkDelay,
		Rand:       s.opts.NewRand(),
		Scheduler:  s.opts.Scheduler,
		Logger:     s.log.With().Str("gameID", id).Logger(),
	})
	sess.Subscribe(func(e Event) { s.broadcast(id, e) })

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.log.Info().Str("gameID", id).Int("humans", humans).Msg("game created")
	return sess.Start(humans)
}

// Get returns a snapshot of the game if present.
func (s *Service) Get(id string) (Snapshot, bool) {
	sess, ok := s.session(id)
	if !ok {
		return Snapshot{}, false
	}
	return sess.Snapshot(), true
}

// Play applies a human move. On a rejected move the current snapshot is
// returned with the error.
func (s *Service) Play(id string, seat domain.Seat, pos int) (Snapshot, error) {
	sess, ok := s.session(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return sess.RequestMove(seat, pos)
}

// Reset restarts the game with the same seats.
func (s *Service) Reset(id string) (Snapshot, error) {
	sess, ok := s.session(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return sess.Reset()
}

// Subscribe registers a subscriber for a game. The channel is closed when ctx
// ends, when unsubscribe is called, or when the subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan Event, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}
	set[sub] = struct{}{}

	done := make(chan struct{})
	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			close(done)
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			unsub()
		case <-done:
		}
	}()
	return sub.ch, unsub, nil
}

func (s *Service) session(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// broadcast runs under the session lock; it must never block on a subscriber.
func (s *Service) broadcast(id string, e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs[id] {
		select {
		case sub.ch <- e:
		default:
			s.log.Warn().Str("gameID", id).Msg("dropping slow subscriber")
			delete(s.subs[id], sub)
			sub.close()
		}
	}
}
