// Package playboard is the interactive solving state machine over a puzzle: the
// highlighted cell, the current direction, letter entry and reveal, and change
// notification.
package playboard

import (
	"github.com/jask/puzboard/internal/puz"
)

// Playboard wraps a puzzle with a cursor. It is not safe for concurrent use.
type Playboard struct {
	puzzle *puz.Puzzle

	boxes        [][]*puz.Box // [across][down]
	acrossStarts map[int]puz.Position
	downStarts   map[int]puz.Position

	highlight puz.Position
	across    bool

	movement           MovementStrategy
	responder          string
	showErrorsGrid     bool
	showErrorsCursor   bool
	skipCompleted      bool
	preserveCorrect    bool
	dontDeleteCrossing bool

	listeners     []subscriber
	nextSub       Subscription
	suppressDepth int
	previousWord  *puz.Word
}

type Option func(*Playboard)

func WithMovementStrategy(s MovementStrategy) Option {
	return func(b *Playboard) { b.movement = s }
}

func WithResponder(name string) Option {
	return func(b *Playboard) { b.responder = name }
}

func WithSkipCompletedLetters(v bool) Option {
	return func(b *Playboard) { b.skipCompleted = v }
}

func WithPreserveCorrectLetters(v bool) Option {
	return func(b *Playboard) { b.preserveCorrect = v }
}

func WithDontDeleteCrossing(v bool) Option {
	return func(b *Playboard) { b.dontDeleteCrossing = v }
}

func WithShowErrorsGrid(v bool) Option {
	return func(b *Playboard) { b.showErrorsGrid = v }
}

func WithShowErrorsCursor(v bool) Option {
	return func(b *Playboard) { b.showErrorsCursor = v }
}

// New builds a playboard positioned where the puzzle was last left. If that cell
// is absent the highlight moves right to the first present cell.
func New(p *puz.Puzzle, opts ...Option) *Playboard {
	b := &Playboard{
		puzzle:       p,
		acrossStarts: make(map[int]puz.Position),
		downStarts:   make(map[int]puz.Position),
		highlight:    p.Position,
		across:       p.Across,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.boxes = make([][]*puz.Box, p.Width())
	for a := range b.boxes {
		b.boxes[a] = make([]*puz.Box, p.Height())
		for d := range b.boxes[a] {
			pos := puz.Position{Across: a, Down: d}
			box := p.BoxAt(pos)
			b.boxes[a][d] = box
			if box == nil {
				continue
			}
			if box.StartsAcross {
				b.acrossStarts[box.ClueNumber] = pos
			}
			if box.StartsDown {
				b.downStarts[box.ClueNumber] = pos
			}
		}
	}

	b.pushNotificationDisabled()
	if b.CurrentBox() == nil {
		b.MoveRight(false)
	}
	if b.CurrentBox() == nil {
		b.moveToFirstBox()
	}
	if box := b.CurrentBox(); box != nil && !box.PartOf(b.across) && box.PartOf(!b.across) {
		b.setAcross(!b.across)
	}
	b.popNotificationDisabled()
	b.updateHistory()
	return b
}

func (b *Playboard) moveToFirstBox() {
	for d := 0; d < b.puzzle.Height(); d++ {
		for a := 0; a < b.puzzle.Width(); a++ {
			if pos := (puz.Position{Across: a, Down: d}); b.boxAt(pos) != nil {
				b.setHighlight(pos)
				return
			}
		}
	}
}

func (b *Playboard) Puzzle() *puz.Puzzle { return b.puzzle }

// Boxes returns the grid indexed [across][down].
func (b *Playboard) Boxes() [][]*puz.Box { return b.boxes }

func (b *Playboard) HighlightLetter() puz.Position { return b.highlight }

func (b *Playboard) IsAcross() bool { return b.across }

func (b *Playboard) MovementStrategy() MovementStrategy { return b.movement }

func (b *Playboard) SetMovementStrategy(s MovementStrategy) { b.movement = s }

func (b *Playboard) SetResponder(name string) { b.responder = name }

func (b *Playboard) SetSkipCompletedLetters(v bool) { b.skipCompleted = v }

func (b *Playboard) SetPreserveCorrectLettersInShowErrors(v bool) { b.preserveCorrect = v }

func (b *Playboard) SetDontDeleteCrossing(v bool) { b.dontDeleteCrossing = v }

func (b *Playboard) boxAt(p puz.Position) *puz.Box {
	if p.Across < 0 || p.Across >= len(b.boxes) {
		return nil
	}
	col := b.boxes[p.Across]
	if p.Down < 0 || p.Down >= len(col) {
		return nil
	}
	return col[p.Down]
}

func (b *Playboard) inBounds(p puz.Position) bool {
	return p.Across >= 0 && p.Across < len(b.boxes) && p.Down >= 0 && p.Down < b.puzzle.Height()
}

func (b *Playboard) starts(across bool) map[int]puz.Position {
	if across {
		return b.acrossStarts
	}
	return b.downStarts
}

// setHighlight moves the cursor and records it on the puzzle without notifying.
func (b *Playboard) setHighlight(p puz.Position) {
	b.highlight = p
	b.puzzle.Position = p
}

func (b *Playboard) setAcross(across bool) bool {
	if b.across == across {
		return false
	}
	b.across = across
	b.puzzle.Across = across
	return true
}

// CurrentBox returns the highlighted cell, nil if it is absent.
func (b *Playboard) CurrentBox() *puz.Box { return b.boxAt(b.highlight) }

// CurrentWordStart scans backwards from the highlight for the cell that starts
// the word in the current direction. The highlight itself is returned when no
// start is found.
func (b *Playboard) CurrentWordStart() puz.Position {
	p := b.highlight
	for b.inBounds(p) {
		box := b.boxAt(p)
		if box == nil {
			break
		}
		if box.StartsWord(b.across) {
			return p
		}
		if b.across {
			p.Across--
		} else {
			p.Down--
		}
	}
	return b.highlight
}

// WordRange counts the cells from start to the next absent cell or edge.
func (b *Playboard) WordRange(start puz.Position, across bool) int {
	n := 1
	p := start
	for {
		if across {
			p.Across++
		} else {
			p.Down++
		}
		if b.boxAt(p) == nil {
			return n
		}
		n++
	}
}

func (b *Playboard) CurrentWord() puz.Word {
	start := b.CurrentWordStart()
	return puz.Word{Start: start, Across: b.across, Length: b.WordRange(start, b.across)}
}

func (b *Playboard) CurrentWordBoxes() []*puz.Box {
	w := b.CurrentWord()
	out := make([]*puz.Box, w.Length)
	for i := range out {
		out[i] = b.boxAt(w.At(i))
	}
	return out
}

func (b *Playboard) CurrentWordPositions() []puz.Position {
	return b.CurrentWord().Positions()
}

// CurrentWordResponse returns the responses of the current word.
func (b *Playboard) CurrentWordResponse() string {
	boxes := b.CurrentWordBoxes()
	out := make([]rune, 0, len(boxes))
	for _, box := range boxes {
		if box == nil {
			out = append(out, puz.Blank)
			continue
		}
		r := box.Response
		if r == 0 {
			r = puz.Blank
		}
		out = append(out, r)
	}
	return string(out)
}

// WordBoxes returns the cells of the clue number in a direction, or nil when no
// such word exists.
func (b *Playboard) WordBoxes(number int, across bool) []*puz.Box {
	start, ok := b.starts(across)[number]
	if !ok {
		return nil
	}
	w := puz.Word{Start: start, Across: across, Length: b.WordRange(start, across)}
	out := make([]*puz.Box, w.Length)
	for i := range out {
		out[i] = b.boxAt(w.At(i))
	}
	return out
}

// IsFilledClueNum reports whether every cell of the word is non-blank.
func (b *Playboard) IsFilledClueNum(number int, across bool) bool {
	boxes := b.WordBoxes(number, across)
	if boxes == nil {
		return false
	}
	for _, box := range boxes {
		if box == nil || box.IsBlank() {
			return false
		}
	}
	return true
}

// ClueNumber returns the number of the current word, -1 when the highlight is not
// inside a word in the current direction.
func (b *Playboard) ClueNumber() int {
	box := b.boxAt(b.CurrentWordStart())
	if box == nil || !box.StartsWord(b.across) {
		return -1
	}
	return box.ClueNumber
}

// Clue returns the clue of the current word.
func (b *Playboard) Clue() (puz.Clue, bool) {
	number := b.ClueNumber()
	if number < 0 {
		return puz.Clue{}, false
	}
	return b.puzzle.Clues(b.across).Get(number)
}

func (b *Playboard) CurrentClueIndex() int {
	number := b.ClueNumber()
	if number < 0 {
		return -1
	}
	return b.puzzle.Clues(b.across).Index(number)
}

// Note returns the note of the current clue, nil if there is none yet.
func (b *Playboard) Note() *puz.Note {
	number := b.ClueNumber()
	if number < 0 {
		return nil
	}
	return b.puzzle.Note(number, b.across)
}

// IsInWord reports whether pos lies in the current word.
func (b *Playboard) IsInWord(pos puz.Position) bool {
	return b.CurrentWord().CheckInWord(pos.Across, pos.Down)
}

// AdjacentBoxLeft returns the crossing-side neighbour above (across) or to the
// right (down) of the highlight.
func (b *Playboard) AdjacentBoxLeft() *puz.Box {
	if b.across {
		return b.offsetBox(0, -1)
	}
	return b.offsetBox(1, 0)
}

// AdjacentBoxRight returns the crossing-side neighbour below (across) or to the
// left (down) of the highlight.
func (b *Playboard) AdjacentBoxRight() *puz.Box {
	if b.across {
		return b.offsetBox(0, 1)
	}
	return b.offsetBox(-1, 0)
}

func (b *Playboard) offsetBox(da, dd int) *puz.Box {
	return b.boxAt(puz.Position{Across: b.highlight.Across + da, Down: b.highlight.Down + dd})
}

// SetHighlightLetter moves the highlight to pos and returns the previous word.
// Selecting the highlighted cell toggles direction; selecting a cell outside the
// current direction switches direction. Absent cells are ignored.
func (b *Playboard) SetHighlightLetter(pos puz.Position) puz.Word {
	w := b.CurrentWord()
	b.pushNotificationDisabled()
	if pos == b.highlight {
		b.ToggleDirection()
	} else if box := b.boxAt(pos); box != nil {
		b.setHighlight(pos)
		if !box.PartOf(b.across) {
			b.ToggleDirection()
		}
	}
	b.popNotificationDisabled()
	b.notifyChange(false)
	return w
}

// ToggleDirection flips the direction when the current cell belongs to a word in
// the other direction.
func (b *Playboard) ToggleDirection() puz.Word {
	w := b.CurrentWord()
	if box := b.CurrentBox(); box != nil && box.PartOf(!b.across) {
		b.SetAcross(!b.across)
	}
	return w
}

// SetAcross sets the direction and notifies when it changed.
func (b *Playboard) SetAcross(across bool) {
	if b.setAcross(across) {
		b.notifyChange(false)
	}
}

// JumpToClue moves to the start of the clue and takes its direction. Unknown
// clues are ignored.
func (b *Playboard) JumpToClue(number int, across bool) {
	pos, ok := b.starts(across)[number]
	if !ok {
		return
	}
	b.pushNotificationDisabled()
	b.SetHighlightLetter(pos)
	b.SetAcross(across)
	b.popNotificationDisabled()
	b.notifyChange(false)
}

func (b *Playboard) MoveUp(skipCompleted bool) puz.Word    { return b.moveBy(0, -1, skipCompleted) }
func (b *Playboard) MoveDown(skipCompleted bool) puz.Word  { return b.moveBy(0, 1, skipCompleted) }
func (b *Playboard) MoveLeft(skipCompleted bool) puz.Word  { return b.moveBy(-1, 0, skipCompleted) }
func (b *Playboard) MoveRight(skipCompleted bool) puz.Word { return b.moveBy(1, 0, skipCompleted) }

func (b *Playboard) moveBy(da, dd int, skip bool) puz.Word {
	w := b.CurrentWord()
	next, ok := b.scan(da, dd, skip)
	if !ok {
		b.notifyChange(false)
		return w
	}
	b.SetHighlightLetter(next)
	return w
}

// scan steps from the highlight past absent and skipped cells. At the grid edge
// it settles on the last in-bounds cell if that one is present.
func (b *Playboard) scan(da, dd int, skip bool) (puz.Position, bool) {
	p := puz.Position{Across: b.highlight.Across + da, Down: b.highlight.Down + dd}
	for b.inBounds(p) {
		box := b.boxAt(p)
		if box != nil && !b.skipBox(box, skip) {
			return p, true
		}
		next := puz.Position{Across: p.Across + da, Down: p.Down + dd}
		if !b.inBounds(next) {
			return p, box != nil
		}
		p = next
	}
	return b.highlight, false
}

// NextLetter advances with the configured movement strategy.
func (b *Playboard) NextLetter() puz.Word {
	return b.nextLetter(b.skipCompleted)
}

func (b *Playboard) nextLetter(skip bool) puz.Word {
	b.pushNotificationDisabled()
	w := b.movement.Move(b, skip)
	b.popNotificationDisabled()
	b.notifyChange(false)
	return w
}

// PreviousLetter steps back with the configured movement strategy.
func (b *Playboard) PreviousLetter() puz.Word {
	b.pushNotificationDisabled()
	w := b.movement.Back(b)
	b.popNotificationDisabled()
	b.notifyChange(false)
	return w
}

// NextWord jumps to the start of the next clue in the current direction.
func (b *Playboard) NextWord() puz.Word {
	b.pushNotificationDisabled()
	w := MoveNextClue.Move(b, false)
	b.popNotificationDisabled()
	b.notifyChange(false)
	return w
}

// PreviousWord jumps to the start of the previous clue in the current direction.
func (b *Playboard) PreviousWord() puz.Word {
	b.pushNotificationDisabled()
	w := MoveNextClue.Back(b)
	b.popNotificationDisabled()
	b.notifyChange(false)
	return w
}

func (b *Playboard) IsShowErrors() bool {
	return b.showErrorsGrid || b.showErrorsCursor
}

func (b *Playboard) IsShowErrorsGrid() bool { return b.showErrorsGrid }

func (b *Playboard) IsShowErrorsCursor() bool { return b.showErrorsCursor }

func (b *Playboard) SetShowErrorsGrid(v bool) {
	if b.showErrorsGrid != v {
		b.showErrorsGrid = v
		b.notifyChange(true)
	}
}

func (b *Playboard) SetShowErrorsCursor(v bool) {
	if b.showErrorsCursor != v {
		b.showErrorsCursor = v
		b.notifyChange(true)
	}
}

func (b *Playboard) ToggleShowErrorsGrid() {
	b.showErrorsGrid = !b.showErrorsGrid
	b.notifyChange(true)
}

func (b *Playboard) ToggleShowErrorsCursor() {
	b.showErrorsCursor = !b.showErrorsCursor
	b.notifyChange(true)
}
