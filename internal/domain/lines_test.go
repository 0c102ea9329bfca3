package domain

import "testing"

// Pattern list in the order the evaluator must scan it.
var wantLines = []Line{
	// rows
	{0, 1, 2}, {1, 2, 3}, {2, 3, 4},
	{5, 6, 7}, {6, 7, 8}, {7, 8, 9},
	{10, 11, 12}, {11, 12, 13}, {12, 13, 14},
	{15, 16, 17}, {16, 17, 18}, {17, 18, 19},
	{20, 21, 22}, {21, 22, 23}, {22, 23, 24},
	// columns
	{0, 5, 10}, {1, 6, 11}, {2, 7, 12}, {3, 8, 13}, {4, 9, 14},
	{5, 10, 15}, {6, 11, 16}, {7, 12, 17}, {8, 13, 18}, {9, 14, 19},
	{10, 15, 20}, {11, 16, 21}, {12, 17, 22}, {13, 18, 23}, {14, 19, 24},
	// down-right
	{0, 6, 12}, {1, 7, 13}, {2, 8, 14},
	{5, 11, 17}, {6, 12, 18}, {7, 13, 19},
	{10, 16, 22}, {11, 17, 23}, {12, 18, 24},
	// down-left
	{2, 6, 10}, {3, 7, 11}, {4, 8, 12},
	{7, 11, 15}, {8, 12, 16}, {9, 13, 17},
	{12, 16, 20}, {13, 17, 21}, {14, 18, 22},
}

// tieBoard is a full board, 7 cells for seat 0 and 6 for each other seat,
// with no three in a row.
var tieBoard = [Cells]Seat{
	1, 0, 2, 3, 0,
	2, 3, 2, 1, 2,
	2, 0, 3, 0, 1,
	1, 3, 3, 2, 0,
	1, 3, 0, 1, 0,
}

func boardFrom(seats [Cells]Seat) Board {
	var b Board
	for i, s := range seats {
		b[i] = CellOf(s)
	}
	return b
}

func TestLinesGeneratedInScanOrder(t *testing.T) {
	got := Lines()
	if len(got) != 48 {
		t.Fatalf("expected 48 lines, got %d", len(got))
	}
	for i := range wantLines {
		if got[i] != wantLines[i] {
			t.Fatalf("line %d: got %v, want %v", i, got[i], wantLines[i])
		}
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	a := Lines()
	a[0] = Line{24, 24, 24}
	if Lines()[0] != (Line{0, 1, 2}) {
		t.Fatalf("Lines must not expose the shared pattern table")
	}
}

func TestLinesThroughPosition(t *testing.T) {
	centre := linesThrough(12)
	for _, ln := range centre {
		if !ln.Contains(12) {
			t.Fatalf("line %v does not contain 12", ln)
		}
	}
	// 3 per direction through the centre.
	if len(centre) != 12 {
		t.Fatalf("expected 12 lines through the centre, got %d", len(centre))
	}
	// A corner sits on one row, one column and one diagonal run.
	if n := len(linesThrough(0)); n != 3 {
		t.Fatalf("expected 3 lines through corner, got %d", n)
	}
}

func TestHasWinnerEveryLineEverySeat(t *testing.T) {
	for _, ln := range wantLines {
		for s := Seat(0); s < Seats; s++ {
			var b Board
			for _, p := range ln {
				b[p] = CellOf(s)
			}
			got, gotLine, ok := HasWinner(b)
			if !ok || got != s || gotLine != ln {
				t.Fatalf("line %v seat %d: got seat=%d line=%v ok=%v", ln, s, got, gotLine, ok)
			}
		}
	}
}

func TestHasWinnerIgnoresMixedAndPartialLines(t *testing.T) {
	for _, ln := range wantLines {
		var partial Board
		partial[ln[0]] = CellOf(2)
		partial[ln[1]] = CellOf(2)
		if _, _, ok := HasWinner(partial); ok {
			t.Fatalf("two cells of %v reported as a win", ln)
		}

		var mixed Board
		mixed[ln[0]] = CellOf(0)
		mixed[ln[1]] = CellOf(0)
		mixed[ln[2]] = CellOf(1)
		if _, _, ok := HasWinner(mixed); ok {
			t.Fatalf("mixed seats on %v reported as a win", ln)
		}
	}
}

func TestIsTie(t *testing.T) {
	var empty Board
	if IsTie(empty) {
		t.Fatalf("empty board is not a tie")
	}

	b := boardFrom(tieBoard)
	if _, ln, ok := HasWinner(b); ok {
		t.Fatalf("tie fixture has a line at %v", ln)
	}
	if !IsTie(b) {
		t.Fatalf("expected full board without a line to be a tie")
	}
}

func TestFullBoardWithLineIsNotTie(t *testing.T) {
	b := boardFrom(tieBoard)
	// Complete the top row for seat 0 without emptying anything.
	b[0], b[2], b[3] = CellOf(0), CellOf(0), CellOf(0)
	if !b.IsFull() {
		t.Fatalf("fixture must stay full")
	}
	if IsTie(b) {
		t.Fatalf("full board with a line must not be a tie")
	}
	if s, _, ok := HasWinner(b); !ok || s != 0 {
		t.Fatalf("expected seat 0 to win, got %d ok=%v", s, ok)
	}
}

func TestFindCompletingMoveColumnScenario(t *testing.T) {
	var b Board
	_ = b.PlaceAt(0, 0)
	_ = b.PlaceAt(1, 1)
	_ = b.PlaceAt(5, 0)
	_ = b.PlaceAt(10, 0)
	pos, ok := FindCompletingMove(b, 0)
	if !ok || pos != 15 {
		t.Fatalf("expected completing move 15, got %d ok=%v", pos, ok)
	}
}

func TestFindCompletingMoveEveryLineAndGap(t *testing.T) {
	for _, ln := range wantLines {
		for gap := 0; gap < RunLength; gap++ {
			var b Board
			for k, p := range ln {
				if k != gap {
					b[p] = CellOf(3)
				}
			}
			pos, ok := FindCompletingMove(b, 3)
			if !ok {
				t.Fatalf("line %v gap %d: no completing move", ln, gap)
			}
			if !b.IsEmpty(pos) {
				t.Fatalf("line %v gap %d: %d is not empty", ln, gap, pos)
			}
			_ = b.PlaceAt(pos, 3)
			if s, _, won := HasWinner(b); !won || s != 3 {
				t.Fatalf("line %v gap %d: playing %d does not win", ln, gap, pos)
			}
			if _, ok := FindCompletingMove(b, 0); ok {
				t.Fatalf("seat 0 has no cells but got a completing move")
			}
		}
	}
}

func TestFindCompletingMoveFirstMatchWins(t *testing.T) {
	var b Board
	// Two threats for seat 2: row 20,21,_ and column 4,9,_.
	for _, p := range []int{20, 21, 4, 9} {
		_ = b.PlaceAt(p, 2)
	}
	pos, ok := FindCompletingMove(b, 2)
	if !ok || pos != 22 {
		t.Fatalf("rows scan before columns, expected 22, got %d ok=%v", pos, ok)
	}
}

func TestFindCompletingMoveBlockedLine(t *testing.T) {
	var b Board
	_ = b.PlaceAt(0, 1)
	_ = b.PlaceAt(1, 1)
	_ = b.PlaceAt(2, 0)
	if pos, ok := FindCompletingMove(b, 1); ok {
		t.Fatalf("blocked row must not complete, got %d", pos)
	}
}
