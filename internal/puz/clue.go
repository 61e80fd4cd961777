package puz

// Clue is one numbered clue in a direction.
type Clue struct {
	Number int
	Across bool
	Text   string
}

// ClueID identifies a clue by number and direction.
type ClueID struct {
	Number int
	Across bool
}

// ClueList is an ordered clue sequence for one direction.
type ClueList struct {
	clues []Clue
	index map[int]int
}

func NewClueList(clues []Clue) *ClueList {
	l := &ClueList{clues: append([]Clue(nil), clues...), index: make(map[int]int, len(clues))}
	for i, c := range l.clues {
		l.index[c.Number] = i
	}
	return l
}

func (l *ClueList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.clues)
}

// At returns the clue at position i of the sequence.
func (l *ClueList) At(i int) (Clue, bool) {
	if l == nil || i < 0 || i >= len(l.clues) {
		return Clue{}, false
	}
	return l.clues[i], true
}

// Get looks a clue up by number.
func (l *ClueList) Get(number int) (Clue, bool) {
	i := l.Index(number)
	if i < 0 {
		return Clue{}, false
	}
	return l.clues[i], true
}

// Index returns the sequence position of the clue numbered number, or -1.
func (l *ClueList) Index(number int) int {
	if l == nil {
		return -1
	}
	i, ok := l.index[number]
	if !ok {
		return -1
	}
	return i
}

// All returns a copy of the sequence.
func (l *ClueList) All() []Clue {
	if l == nil {
		return nil
	}
	return append([]Clue(nil), l.clues...)
}
