package playboard

import (
	"fmt"
	"strings"

	"github.com/jask/puzboard/internal/puz"
)

// MovementStrategy decides where the highlight goes after a letter is played or
// deleted.
type MovementStrategy int

const (
	// MoveNextOnAxis walks letter by letter and continues into the next clue of
	// the same direction at the end of a word.
	MoveNextOnAxis MovementStrategy = iota
	// MoveNextClue jumps straight to the start of the next clue.
	MoveNextClue
)

func (s MovementStrategy) String() string {
	switch s {
	case MoveNextClue:
		return "clue"
	default:
		return "axis"
	}
}

func ParseMovementStrategy(name string) (MovementStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "axis":
		return MoveNextOnAxis, nil
	case "clue":
		return MoveNextClue, nil
	default:
		return 0, fmt.Errorf("unknown movement strategy %q", name)
	}
}

// Move advances the highlight and returns the word it started in.
func (s MovementStrategy) Move(b *Playboard, skipCompleted bool) puz.Word {
	switch s {
	case MoveNextClue:
		w := b.CurrentWord()
		b.stepClue(1, false, false)
		return w
	default:
		return b.moveOnAxis(skipCompleted)
	}
}

// Back moves the highlight one step backwards and returns the word it started in.
func (s MovementStrategy) Back(b *Playboard) puz.Word {
	switch s {
	case MoveNextClue:
		w := b.CurrentWord()
		b.stepClue(-1, false, false)
		return w
	default:
		return b.backOnAxis()
	}
}

func (b *Playboard) moveOnAxis(skip bool) puz.Word {
	w := b.CurrentWord()
	for i := b.offsetInWord(w) + 1; i < w.Length; i++ {
		p := w.At(i)
		if box := b.boxAt(p); box != nil && !b.skipBox(box, skip) {
			b.setHighlight(p)
			return w
		}
	}
	b.stepClue(1, skip, false)
	return w
}

func (b *Playboard) backOnAxis() puz.Word {
	w := b.CurrentWord()
	if off := b.offsetInWord(w); off > 0 {
		b.setHighlight(w.At(off - 1))
		return w
	}
	b.stepClue(-1, false, true)
	return w
}

// stepClue moves to another clue of the current direction, wrapping around the
// clue list. With skip it lands on the first letter that should not be skipped
// and passes over finished words; toEnd lands on the last letter instead of the
// first. The highlight is unchanged when no clue qualifies.
func (b *Playboard) stepClue(delta int, skip, toEnd bool) bool {
	clues := b.puzzle.Clues(b.across)
	n := clues.Len()
	if n == 0 {
		return false
	}
	base := b.CurrentClueIndex()
	if base < 0 {
		if delta > 0 {
			base = -1
		} else {
			base = n
		}
	}
	for step := 1; step <= n; step++ {
		i := ((base+delta*step)%n + n) % n
		c, _ := clues.At(i)
		start, ok := b.starts(b.across)[c.Number]
		if !ok {
			continue
		}
		w := puz.Word{Start: start, Across: b.across, Length: b.WordRange(start, b.across)}
		if toEnd {
			b.setHighlight(w.At(w.Length - 1))
			return true
		}
		if !skip {
			b.setHighlight(start)
			return true
		}
		for j := 0; j < w.Length; j++ {
			if box := b.boxAt(w.At(j)); box != nil && !b.skipBox(box, true) {
				b.setHighlight(w.At(j))
				return true
			}
		}
	}
	return false
}

func (b *Playboard) offsetInWord(w puz.Word) int {
	if w.Across {
		return b.highlight.Across - w.Start.Across
	}
	return b.highlight.Down - w.Start.Down
}

// skipBox reports whether movement should pass over a finished cell.
func (b *Playboard) skipBox(box *puz.Box, skipCompleted bool) bool {
	return skipCompleted && !box.IsBlank() && (!b.IsShowErrors() || box.IsCorrect())
}
