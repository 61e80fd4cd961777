package puz

import "fmt"

// Position addresses a grid cell by column (Across) and row (Down).
type Position struct {
	Across int
	Down   int
}

func (p Position) String() string {
	return fmt.Sprintf("[%d x %d]", p.Across, p.Down)
}

// Word is a run of cells starting at a clue-numbered cell. It is derived from the
// grid and never stored.
type Word struct {
	Start  Position
	Across bool
	Length int
}

// At returns the position of the i-th letter of the word.
func (w Word) At(i int) Position {
	if w.Across {
		return Position{Across: w.Start.Across + i, Down: w.Start.Down}
	}
	return Position{Across: w.Start.Across, Down: w.Start.Down + i}
}

// Positions lists every cell of the word in order.
func (w Word) Positions() []Position {
	out := make([]Position, w.Length)
	for i := range out {
		out[i] = w.At(i)
	}
	return out
}

// CheckInWord reports whether the cell (across, down) lies inside the word.
func (w Word) CheckInWord(across, down int) bool {
	ranging, start := down, w.Start.Down
	onLine := across == w.Start.Across
	if w.Across {
		ranging, start = across, w.Start.Across
		onLine = down == w.Start.Down
	}
	return onLine && start <= ranging && ranging < start+w.Length
}
