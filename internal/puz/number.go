package puz

// Number assigns clue numbers and word membership to a row-major grid the way
// Across Lite does: a cell starts a word when the previous cell in that direction
// is absent or off-grid and at least one more cell follows. It returns the across
// and down clue numbers in ascending order.
func Number(boxes [][]*Box) (across, down []int) {
	at := func(row, col int) *Box {
		if row < 0 || row >= len(boxes) || col < 0 || col >= len(boxes[row]) {
			return nil
		}
		return boxes[row][col]
	}

	for _, row := range boxes {
		for _, b := range row {
			if b == nil {
				continue
			}
			b.ClueNumber = 0
			b.StartsAcross, b.StartsDown = false, false
			b.PartOfAcross, b.PartOfDown = false, false
			b.AcrossPosition, b.DownPosition = -1, -1
		}
	}

	n := 1
	for r, row := range boxes {
		for c, b := range row {
			if b == nil {
				continue
			}
			startAcross := at(r, c-1) == nil && at(r, c+1) != nil
			startDown := at(r-1, c) == nil && at(r+1, c) != nil
			if !startAcross && !startDown {
				continue
			}
			b.ClueNumber = n
			if startAcross {
				b.StartsAcross = true
				across = append(across, n)
				for i := 0; at(r, c+i) != nil; i++ {
					cell := at(r, c+i)
					cell.PartOfAcross = true
					cell.AcrossPosition = i
				}
			}
			if startDown {
				b.StartsDown = true
				down = append(down, n)
				for i := 0; at(r+i, c) != nil; i++ {
					cell := at(r+i, c)
					cell.PartOfDown = true
					cell.DownPosition = i
				}
			}
			n++
		}
	}
	return across, down
}
