package web

import (
	"errors"
	"fmt"

	"github.com/BanTheRewind/learn-by-ai/internal/app"
	"github.com/BanTheRewind/learn-by-ai/internal/domain"
)

// stateView is the JSON form of a session snapshot. Empty cells are -1.
type stateView struct {
	ID      string `json:"id"`
	Board   []int  `json:"board"`
	Turn    int    `json:"turn"`
	Humans  int    `json:"humans"`
	Status  string `json:"status"`
	Winner  *int   `json:"winner,omitempty"`
	WinLine []int  `json:"winLine,omitempty"`
	Moves   int    `json:"moves"`
}

func newStateView(s app.Snapshot) stateView {
	m := s.Match
	v := stateView{
		ID:     s.ID,
		Board:  make([]int, domain.Cells),
		Turn:   int(m.Turn),
		Humans: m.Humans,
		Status: m.Status.String(),
		Moves:  m.Moves,
	}
	for i, c := range m.Board {
		v.Board[i] = -1
		if seat, ok := c.Seat(); ok {
			v.Board[i] = int(seat)
		}
	}
	if m.Status == domain.Won {
		w := int(m.Winner)
		v.Winner = &w
		v.WinLine = m.WinLine[:]
	}
	return v
}

type eventView struct {
	Kind     app.EventKind `json:"kind"`
	Seat     int           `json:"seat"`
	Position int           `json:"position"`
	Line     []int         `json:"line,omitempty"`
	State    stateView     `json:"state"`
}

func newEventView(e app.Event) eventView {
	v := eventView{
		Kind:     e.Kind,
		Seat:     int(e.Seat),
		Position: e.Position,
		State:    newStateView(e.State),
	}
	if e.Kind == app.EventMatchWon {
		v.Line = e.Line[:]
	}
	return v
}

type cellView struct {
	Pos     int
	Symbol  string
	Winning bool
}

// boardView feeds the board template.
type boardView struct {
	ID     string
	Turn   int
	Status string
	Error  string
	Over   bool
	Rows   [][]cellView
}

func newBoardView(s app.Snapshot, errMsg string) boardView {
	m := s.Match
	v := boardView{
		ID:     s.ID,
		Turn:   int(m.Turn),
		Status: statusText(m),
		Error:  errMsg,
		Over:   m.Over(),
		Rows:   make([][]cellView, domain.Size),
	}
	for r := 0; r < domain.Size; r++ {
		row := make([]cellView, domain.Size)
		for c := 0; c < domain.Size; c++ {
			pos := domain.Position(r, c)
			cv := cellView{Pos: pos}
			if seat, ok := m.Board[pos].Seat(); ok {
				cv.Symbol = seat.Symbol()
			}
			cv.Winning = m.Status == domain.Won && m.WinLine.Contains(pos)
			row[c] = cv
		}
		v.Rows[r] = row
	}
	return v
}

func statusText(m domain.Match) string {
	switch m.Status {
	case domain.Won:
		return fmt.Sprintf("🎉 %s (%s) WINS! 🎉", m.Winner, m.Winner.Symbol())
	case domain.Tied:
		return "It's a TIE!"
	}
	who := "human"
	if !m.IsHuman(m.Turn) {
		who = "computer"
	}
	return fmt.Sprintf("%s (%s) to move, %s", m.Turn, m.Turn.Symbol(), who)
}

// moveErrorMessage turns a rejected move into text for the player.
func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrNotHumanSeat):
		return "Not your turn! Computer is playing."
	case errors.Is(err, app.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, domain.ErrOccupied):
		return "Tile already filled"
	case errors.Is(err, domain.ErrOutOfBounds):
		return "Out of bounds"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over"
	case errors.Is(err, domain.ErrInvalidSeat):
		return "No such player"
	default:
		return "Invalid move"
	}
}
