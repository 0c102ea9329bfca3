// Package ai picks moves for computer-controlled seats.
package ai

import (
	"errors"
	"math/rand/v2"

	"github.com/BanTheRewind/learn-by-ai/internal/domain"
)

// ErrNoMovesAvailable means the policy was asked to move on a full board.
var ErrNoMovesAvailable = errors.New("no moves available")

// Reason records which rule produced a move.
type Reason uint8

const (
	Block Reason = iota
	Win
	Random
)

func (r Reason) String() string {
	switch r {
	case Block:
		return "block"
	case Win:
		return "win"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// Move is the policy's decision. Against is the seat being blocked and is
// only meaningful when Reason is Block.
type Move struct {
	Position int
	Reason   Reason
	Against  domain.Seat
}

// Policy blocks first, then wins, then plays a random empty cell.
// It is not safe for concurrent use; the random source is not locked.
type Policy struct {
	rng *rand.Rand
}

// NewPolicy returns a policy drawing random moves from rng.
func NewPolicy(rng *rand.Rand) *Policy {
	return &Policy{rng: rng}
}

// ChooseMove picks a cell for seat. Opponents are checked for a completing
// move in seat order and the first found is blocked, even when seat could win
// outright.
func (p *Policy) ChooseMove(b domain.Board, seat domain.Seat) (Move, error) {
	empties := b.Empties()
	if len(empties) == 0 {
		return Move{}, ErrNoMovesAvailable
	}

	for opp := domain.Seat(0); opp < domain.Seats; opp++ {
		if opp == seat {
			continue
		}
		if pos, ok := domain.FindCompletingMove(b, opp); ok {
			return Move{Position: pos, Reason: Block, Against: opp}, nil
		}
	}

	if pos, ok := domain.FindCompletingMove(b, seat); ok {
		return Move{Position: pos, Reason: Win}, nil
	}

	return Move{Position: empties[p.rng.IntN(len(empties))], Reason: Random}, nil
}
