package puz

// Blank is the response of a cell nobody has filled.
const Blank = ' '

// Box is a single playable cell. Absent cells (black squares) are nil *Box values
// in the grid.
type Box struct {
	Solution  rune
	Response  rune
	Responder string
	Cheated   bool
	Circled   bool

	// ClueNumber is set on cells that start a word in either direction.
	ClueNumber   int
	StartsAcross bool
	StartsDown   bool
	PartOfAcross bool
	PartOfDown   bool

	// Offsets inside the across/down word, -1 when the cell is not part of one.
	AcrossPosition int
	DownPosition   int
}

func NewBox(solution rune) *Box {
	return &Box{
		Solution:       solution,
		Response:       Blank,
		AcrossPosition: -1,
		DownPosition:   -1,
	}
}

func (b *Box) IsBlank() bool { return b.Response == Blank || b.Response == 0 }

func (b *Box) SetBlank() { b.Response = Blank }

// IsCorrect reports whether the response matches the solution.
func (b *Box) IsCorrect() bool { return b.Response == b.Solution }

// StartsWord reports whether the box starts a word in the given direction.
func (b *Box) StartsWord(across bool) bool {
	if across {
		return b.StartsAcross
	}
	return b.StartsDown
}

// PartOf reports whether the box belongs to a word in the given direction.
func (b *Box) PartOf(across bool) bool {
	if across {
		return b.PartOfAcross
	}
	return b.PartOfDown
}

// WordPosition returns the offset of the box inside its word in the given direction.
func (b *Box) WordPosition(across bool) int {
	if across {
		return b.AcrossPosition
	}
	return b.DownPosition
}
