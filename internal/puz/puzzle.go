package puz

import "slices"

// Puzzle holds the grid, clues, solve state and per-clue notes of one crossword.
type Puzzle struct {
	Meta

	Copyright string
	Notepad   string

	boxes   [][]*Box // [row][col]
	across  *ClueList
	down    *ClueList
	notes   map[ClueID]*Note
	history []ClueID
}

// New builds a puzzle from a row-major grid. The grid is numbered in place and
// clues are matched to word starts by number.
func New(boxes [][]*Box, across, down []Clue) *Puzzle {
	Number(boxes)
	for i := range across {
		across[i].Across = true
	}
	for i := range down {
		down[i].Across = false
	}
	return &Puzzle{
		Meta:   Meta{Across: true},
		boxes:  boxes,
		across: NewClueList(across),
		down:   NewClueList(down),
		notes:  make(map[ClueID]*Note),
	}
}

// Boxes returns the grid indexed [row][col].
func (p *Puzzle) Boxes() [][]*Box { return p.boxes }

func (p *Puzzle) Height() int { return len(p.boxes) }

func (p *Puzzle) Width() int {
	if len(p.boxes) == 0 {
		return 0
	}
	return len(p.boxes[0])
}

// BoxAt returns the cell at pos, nil when absent or out of range.
func (p *Puzzle) BoxAt(pos Position) *Box {
	if pos.Down < 0 || pos.Down >= len(p.boxes) {
		return nil
	}
	row := p.boxes[pos.Down]
	if pos.Across < 0 || pos.Across >= len(row) {
		return nil
	}
	return row[pos.Across]
}

func (p *Puzzle) Clues(across bool) *ClueList {
	if across {
		return p.across
	}
	return p.down
}

func (p *Puzzle) Note(number int, across bool) *Note {
	return p.notes[ClueID{Number: number, Across: across}]
}

func (p *Puzzle) SetNote(number int, across bool, n *Note) {
	id := ClueID{Number: number, Across: across}
	if n == nil {
		delete(p.notes, id)
		return
	}
	p.notes[id] = n
}

// Notes returns a snapshot of all notes.
func (p *Puzzle) Notes() map[ClueID]*Note {
	out := make(map[ClueID]*Note, len(p.notes))
	for k, v := range p.notes {
		out[k] = v
	}
	return out
}

// UpdateHistory moves the clue to the front of the recently visited list.
func (p *Puzzle) UpdateHistory(number int, across bool) {
	id := ClueID{Number: number, Across: across}
	if len(p.history) > 0 && p.history[0] == id {
		return
	}
	p.history = slices.DeleteFunc(p.history, func(h ClueID) bool { return h == id })
	p.history = slices.Insert(p.history, 0, id)
}

func (p *Puzzle) History() []ClueID { return slices.Clone(p.history) }

func (p *Puzzle) SetHistory(h []ClueID) { p.history = slices.Clone(h) }

// UpdatePercentages recomputes PercentFilled and PercentComplete from the grid.
func (p *Puzzle) UpdatePercentages() {
	p.PercentFilled, p.PercentComplete = p.Percentages()
}

// Percentages computes the integer percent of filled and of correct cells
// without storing them.
func (p *Puzzle) Percentages() (filled, complete int) {
	var total, nFilled, nCorrect int
	p.eachBox(func(b *Box) {
		total++
		if b.IsBlank() {
			return
		}
		nFilled++
		if b.IsCorrect() {
			nCorrect++
		}
	})
	if total == 0 {
		return 0, 0
	}
	return nFilled * 100 / total, nCorrect * 100 / total
}

// IsSolved reports whether every cell holds its solution.
func (p *Puzzle) IsSolved() bool {
	solved := true
	p.eachBox(func(b *Box) {
		if !b.IsCorrect() {
			solved = false
		}
	})
	return solved
}

func (p *Puzzle) eachBox(fn func(*Box)) {
	for _, row := range p.boxes {
		for _, b := range row {
			if b != nil {
				fn(b)
			}
		}
	}
}
