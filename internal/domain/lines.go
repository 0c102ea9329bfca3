package domain

// Line is a run of RunLength positions in a straight line.
type Line [RunLength]int

// Direction vectors in scan order: right, down, down-right, down-left.
var directions = [...][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

var lines = generateLines()

// generateLines walks every direction and every start cell, keeping the runs
// that stay on the board. Scan order is direction first, then start position.
func generateLines() []Line {
	var out []Line
	for _, d := range directions {
		for start := 0; start < Cells; start++ {
			r, c := RowCol(start)
			er, ec := r+d[0]*(RunLength-1), c+d[1]*(RunLength-1)
			if er < 0 || er >= Size || ec < 0 || ec >= Size {
				continue
			}
			var ln Line
			for k := 0; k < RunLength; k++ {
				ln[k] = Position(r+d[0]*k, c+d[1]*k)
			}
			out = append(out, ln)
		}
	}
	return out
}

// Lines returns a copy of every line pattern in scan order.
func Lines() []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// linesThrough returns the patterns that contain pos, in scan order.
func linesThrough(pos int) []Line {
	var out []Line
	for _, ln := range lines {
		for _, p := range ln {
			if p == pos {
				out = append(out, ln)
				break
			}
		}
	}
	return out
}

// Contains reports whether pos is part of the line.
func (ln Line) Contains(pos int) bool {
	for _, p := range ln {
		if p == pos {
			return true
		}
	}
	return false
}

// HasWinner returns the first seat, in scan order, that holds every cell of a
// line, together with that line.
func HasWinner(b Board) (Seat, Line, bool) {
	for _, ln := range lines {
		first := b[ln[0]]
		if first == Empty {
			continue
		}
		won := true
		for _, p := range ln[1:] {
			if b[p] != first {
				won = false
				break
			}
		}
		if won {
			s, _ := first.Seat()
			return s, ln, true
		}
	}
	return 0, Line{}, false
}

// IsTie reports a full board with no completed line.
func IsTie(b Board) bool {
	if !b.IsFull() {
		return false
	}
	_, _, won := HasWinner(b)
	return !won
}

// FindCompletingMove returns the empty cell of the first line where s holds
// every other cell. Called with another seat it yields the cell to block.
func FindCompletingMove(b Board, s Seat) (int, bool) {
	mine := CellOf(s)
	for _, ln := range lines {
		own, empty, gap := 0, 0, -1
		for _, p := range ln {
			switch b[p] {
			case mine:
				own++
			case Empty:
				empty++
				gap = p
			}
		}
		if own == RunLength-1 && empty == 1 {
			return gap, true
		}
	}
	return 0, false
}
