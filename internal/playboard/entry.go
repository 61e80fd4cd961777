package playboard

import (
	"github.com/jask/puzboard/internal/puz"
)

// PlayLetter writes letter into the highlighted cell and advances. It returns
// false when the highlight is on an absent cell. A correct letter is left alone
// while errors are shown and correct letters are preserved.
func (b *Playboard) PlayLetter(letter rune) (puz.Word, bool) {
	box := b.CurrentBox()
	if box == nil {
		return puz.Word{}, false
	}
	if b.preserveCorrect && box.IsCorrect() && b.IsShowErrors() {
		return b.CurrentWord(), true
	}

	b.pushNotificationDisabled()
	box.Response = letter
	box.Responder = b.responder
	w := b.NextLetter()
	b.popNotificationDisabled()
	b.notifyChange(false)
	return w, true
}

// DeleteLetter clears the highlighted cell. On a blank or protected cell it steps
// back first and clears that one instead, unless it is protected too.
func (b *Playboard) DeleteLetter() puz.Word {
	box := b.CurrentBox()
	w := b.CurrentWord()
	if box == nil {
		return w
	}

	b.pushNotificationDisabled()
	if box.IsBlank() || b.isDontDeleteCurrent() {
		w = b.PreviousLetter()
		box = b.CurrentBox()
	}
	if box != nil && !b.isDontDeleteCurrent() {
		box.SetBlank()
	}
	b.popNotificationDisabled()
	b.notifyChange(false)
	return w
}

// isDontDeleteCurrent reports whether the highlighted letter is protected from
// deletion: it is correct while errors are shown, or a filled crossing neighbour
// depends on it.
func (b *Playboard) isDontDeleteCurrent() bool {
	box := b.CurrentBox()
	if box == nil {
		return false
	}
	if b.preserveCorrect && box.IsCorrect() && b.IsShowErrors() {
		return true
	}
	if b.dontDeleteCrossing {
		left, right := b.AdjacentBoxLeft(), b.AdjacentBoxRight()
		if (left != nil && !left.IsBlank()) || (right != nil && !right.IsBlank()) {
			return true
		}
	}
	return false
}

// PlayScratchLetter writes letter into the current clue's scratch note, creating
// the note on first use, and advances.
func (b *Playboard) PlayScratchLetter(letter rune) puz.Word {
	box := b.CurrentBox()
	w := b.CurrentWord()
	if box == nil {
		return w
	}

	b.pushNotificationDisabled()
	note := b.Note()
	if note == nil {
		if clue, ok := b.Clue(); ok {
			note = puz.NewNote(w.Length)
			b.puzzle.SetNote(clue.Number, b.across, note)
		}
	}
	if note != nil {
		note.SetScratchLetter(box.WordPosition(b.across), letter)
	}
	w = b.NextLetter()
	b.popNotificationDisabled()
	b.notifyChange(false)
	return w
}

// DeleteScratchLetter clears the scratch slot under a blank highlighted cell and
// steps back.
func (b *Playboard) DeleteScratchLetter() puz.Word {
	box := b.CurrentBox()
	w := b.CurrentWord()
	if box == nil {
		return w
	}

	b.pushNotificationDisabled()
	if box.IsBlank() {
		if note := b.Note(); note != nil {
			note.DeleteScratchLetterAt(box.WordPosition(b.across))
		}
	}
	w = b.PreviousLetter()
	b.popNotificationDisabled()
	b.notifyChange(false)
	return w
}

// SetCurrentWord writes response into the current word, one letter per cell.
func (b *Playboard) SetCurrentWord(response string) {
	letters := []rune(response)
	w := b.CurrentWord()
	for i := 0; i < w.Length && i < len(letters); i++ {
		if box := b.boxAt(w.At(i)); box != nil {
			box.Response = letters[i]
			box.Responder = b.responder
		}
	}
	b.notifyChange(false)
}

// RevealLetter fills the highlighted cell with its solution. It returns false
// when the cell is absent or already correct.
func (b *Playboard) RevealLetter() (puz.Position, bool) {
	box := b.CurrentBox()
	if box == nil || box.IsCorrect() {
		return puz.Position{}, false
	}
	reveal(box)
	b.notifyChange(false)
	return b.highlight, true
}

// RevealWord fills every wrong cell of the current word. The highlight stays
// where it was.
func (b *Playboard) RevealWord() []puz.Position {
	var changes []puz.Position
	for _, p := range b.CurrentWord().Positions() {
		if box := b.boxAt(p); box != nil && !box.IsCorrect() {
			reveal(box)
			changes = append(changes, p)
		}
	}
	b.notifyChange(true)
	return changes
}

// RevealErrors fills cells that were revealed before or hold a wrong letter.
// Blank cells are left alone.
func (b *Playboard) RevealErrors() []puz.Position {
	changes := b.revealWhere(func(box *puz.Box) bool {
		return box.Cheated || (!box.IsBlank() && !box.IsCorrect())
	})
	b.notifyChange(true)
	return changes
}

// RevealPuzzle fills every wrong or blank cell.
func (b *Playboard) RevealPuzzle() []puz.Position {
	changes := b.revealWhere(func(box *puz.Box) bool { return !box.IsCorrect() })
	b.notifyChange(true)
	return changes
}

func (b *Playboard) revealWhere(match func(*puz.Box) bool) []puz.Position {
	var changes []puz.Position
	for a, col := range b.boxes {
		for d, box := range col {
			if box != nil && match(box) {
				reveal(box)
				changes = append(changes, puz.Position{Across: a, Down: d})
			}
		}
	}
	return changes
}

func reveal(box *puz.Box) {
	box.Cheated = true
	box.Response = box.Solution
}
