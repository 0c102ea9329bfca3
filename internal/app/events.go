package app

import "github.com/BanTheRewind/learn-by-ai/internal/domain"

// EventKind names a session state transition.
type EventKind string

const (
	EventMatchStarted  EventKind = "match_started"
	EventMoveApplied   EventKind = "move_applied"
	EventTurnAdvanced  EventKind = "turn_advanced"
	EventAIThinking    EventKind = "ai_thinking"
	EventBlockDetected EventKind = "block_detected"
	EventMatchWon      EventKind = "match_won"
	EventMatchTied     EventKind = "match_tied"
)

// Event is delivered to observers on every transition. Seat and Position
// depend on Kind:
//
//	match_started   Seat = first to move
//	move_applied    Seat placed at Position
//	turn_advanced   Seat = new active seat
//	ai_thinking     Seat = computer seat about to move
//	block_detected  Seat = threatening seat, Position = blocked cell
//	match_won       Seat = winner, Line = winning pattern
//	match_tied      -
//
// State is the session snapshot taken right after the transition.
type Event struct {
	Kind     EventKind
	Seat     domain.Seat
	Position int
	Line     domain.Line
	State    Snapshot
}

// Observer receives events synchronously while the session is locked. It must
// not call back into the session.
type Observer func(Event)

// Snapshot is a copy of a session's state.
type Snapshot struct {
	ID      string
	Started bool
	Match   domain.Match
}
