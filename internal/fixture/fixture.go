// Package fixture builds puzzles from ASCII grids for tests and the demo command.
package fixture

import (
	"fmt"

	"github.com/jask/puzboard/internal/puz"
)

// Build returns a puzzle whose solution is given row by row. '#' and '.' mark
// absent cells. Clue texts are generated from the clue number.
func Build(rows ...string) *puz.Puzzle {
	return BuildWithClues(rows, nil, nil)
}

// BuildWithClues is Build with explicit clue texts keyed by number. Missing
// texts fall back to generated ones.
func BuildWithClues(rows []string, across, down map[int]string) *puz.Puzzle {
	boxes := make([][]*puz.Box, len(rows))
	for r, row := range rows {
		for _, ch := range row {
			if ch == '#' || ch == '.' {
				boxes[r] = append(boxes[r], nil)
				continue
			}
			boxes[r] = append(boxes[r], puz.NewBox(ch))
		}
	}

	acrossNums, downNums := puz.Number(boxes)
	return puz.New(boxes, clues(acrossNums, across, "A"), clues(downNums, down, "D"))
}

func clues(numbers []int, texts map[int]string, suffix string) []puz.Clue {
	out := make([]puz.Clue, 0, len(numbers))
	for _, n := range numbers {
		text, ok := texts[n]
		if !ok {
			text = fmt.Sprintf("Clue %d%s", n, suffix)
		}
		out = append(out, puz.Clue{Number: n, Text: text})
	}
	return out
}

// Fill sets responses row by row. '-' and ' ' leave a cell blank; absent cells
// are skipped whatever the character.
func Fill(p *puz.Puzzle, rows ...string) {
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if b := p.BoxAt(puz.Position{Across: c, Down: r}); b != nil {
				if ch == '-' || ch == ' ' {
					b.SetBlank()
				} else {
					b.Response = ch
				}
			}
			c++
		}
	}
}

// Solve fills every cell with its solution.
func Solve(p *puz.Puzzle) {
	for _, row := range p.Boxes() {
		for _, b := range row {
			if b != nil {
				b.Response = b.Solution
			}
		}
	}
}

// Sample is a small themed-less grid used by the demo command.
func Sample() *puz.Puzzle {
	p := BuildWithClues(
		[]string{
			"SLAB#",
			"HONEY",
			"A.T.E",
			"MASON",
			"#T.N#",
		},
		map[int]string{
			1: "Concrete floor piece",
			5: "Bee product",
			7: "Bricklayer",
		},
		map[int]string{
			1: "Fake",
			2: "___ and behold",
			3: "Picnic pests",
			4: "To ___ or not to ___",
			6: "Japanese currency",
			8: "Located in",
			9: "Switched ___",
		},
	)
	p.Title = "Puzboard Sample"
	p.Author = "Puzboard"
	p.Copyright = "Public domain"
	return p
}
