package domain

import "errors"

// Status is the turn controller state.
type Status uint8

const (
	AwaitingMove Status = iota
	Won
	Tied
)

func (s Status) String() string {
	switch s {
	case AwaitingMove:
		return "awaiting_move"
	case Won:
		return "won"
	case Tied:
		return "tied"
	default:
		return "unknown"
	}
}

// ErrInvalidHumans is returned for a human seat count outside 0..Seats.
var ErrInvalidHumans = errors.New("human count must be between 0 and 4")

// Match holds the current state of a four-seat match. Seats below Humans are
// human-controlled, the rest are played by the computer.
type Match struct {
	Board   Board
	Turn    Seat
	Humans  int
	Status  Status
	Winner  Seat
	WinLine Line
	Moves   int
}

// NewMatch returns an empty match with first to move.
func NewMatch(humans int, first Seat) (Match, error) {
	if humans < 0 || humans > Seats {
		return Match{}, ErrInvalidHumans
	}
	if !first.Valid() {
		return Match{}, ErrInvalidSeat
	}
	return Match{Turn: first, Humans: humans}, nil
}

// IsHuman reports whether s is human-controlled.
func (m Match) IsHuman(s Seat) bool { return int(s) < m.Humans }

// Over reports a terminal state.
func (m Match) Over() bool { return m.Status != AwaitingMove }

// Play places the active seat's mark at pos, then settles the outcome. A win
// is checked before a tie; only a non-terminal move advances the turn.
func (m *Match) Play(pos int) error {
	if m.Over() {
		return ErrGameOver
	}
	if err := m.Board.PlaceAt(pos, m.Turn); err != nil {
		return err
	}
	m.Moves++

	if s, ln, ok := HasWinner(m.Board); ok {
		m.Status = Won
		m.Winner = s
		m.WinLine = ln
		return nil
	}
	if m.Board.IsFull() {
		m.Status = Tied
		return nil
	}
	m.Turn = m.Turn.Next()
	return nil
}
