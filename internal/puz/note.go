package puz

import "strings"

// Note is a per-clue scratch pad. Scratch holds one slot per letter of the clue's
// word; zero means the slot is empty.
type Note struct {
	Text    string
	Scratch []rune
}

func NewNote(length int) *Note {
	return &Note{Scratch: make([]rune, length)}
}

func (n *Note) SetScratchLetter(pos int, letter rune) {
	if pos < 0 || pos >= len(n.Scratch) {
		return
	}
	n.Scratch[pos] = letter
}

func (n *Note) DeleteScratchLetterAt(pos int) {
	n.SetScratchLetter(pos, 0)
}

func (n *Note) ScratchLetter(pos int) rune {
	if pos < 0 || pos >= len(n.Scratch) {
		return 0
	}
	return n.Scratch[pos]
}

// ScratchString renders the scratch slots with a space for empty ones.
func (n *Note) ScratchString() string {
	var sb strings.Builder
	for _, r := range n.Scratch {
		if r == 0 {
			r = Blank
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ParseScratch is the inverse of ScratchString.
func ParseScratch(s string) []rune {
	out := []rune(s)
	for i, r := range out {
		if r == Blank {
			out[i] = 0
		}
	}
	return out
}

func (n *Note) IsEmpty() bool {
	if strings.TrimSpace(n.Text) != "" {
		return false
	}
	for _, r := range n.Scratch {
		if r != 0 {
			return false
		}
	}
	return true
}
