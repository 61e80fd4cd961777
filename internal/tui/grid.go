package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/puzboard/internal/playboard"
	"github.com/jask/puzboard/internal/puz"
)

func renderGrid(b *playboard.Playboard) string {
	p := b.Puzzle()
	cursor := b.HighlightLetter()
	word := b.CurrentWord()

	rows := make([]string, 0, p.Height())
	for d := 0; d < p.Height(); d++ {
		cells := make([]string, 0, p.Width())
		for a := 0; a < p.Width(); a++ {
			pos := puz.Position{Across: a, Down: d}
			box := p.BoxAt(pos)
			if box == nil {
				cells = append(cells, blockStyle.Render("   "))
				continue
			}
			style := cellStyle
			switch {
			case pos == cursor:
				style = cursorStyle
			case word.CheckInWord(a, d):
				style = wordStyle
			}
			wrong := !box.IsBlank() && !box.IsCorrect()
			if wrong && (b.IsShowErrorsGrid() || (b.IsShowErrorsCursor() && pos == cursor)) {
				style = style.Foreground(errorCellStyle.GetForeground()).Bold(true)
			} else if box.Cheated && pos != cursor {
				style = style.Foreground(cheatedStyle.GetForeground())
			}
			cells = append(cells, style.Render(cellText(box)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func cellText(box *puz.Box) string {
	letter := " "
	if !box.IsBlank() {
		letter = string(box.Response)
	}
	if box.Circled {
		return "(" + letter + ")"
	}
	return " " + letter + " "
}

func clueLabel(c puz.Clue) string {
	dir := "D"
	if c.Across {
		dir = "A"
	}
	return fmt.Sprintf("%d%s", c.Number, dir)
}

func renderCluePanel(b *playboard.Playboard, scratch bool, width int) string {
	var lines []string
	if c, ok := b.Clue(); ok {
		lines = append(lines, clueActiveStyle.Render(clueLabel(c))+" "+trimToWidth(c.Text, width-5))
		w := b.CurrentWord()
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d letters", w.Length)))
	} else {
		lines = append(lines, mutedStyle.Render("no clue here"))
	}

	if n := b.Note(); n != nil && !n.IsEmpty() {
		lines = append(lines, "", headerStyle.Render("Scratch"), strings.ReplaceAll(n.ScratchString(), " ", "·"))
		if n.Text != "" {
			lines = append(lines, trimToWidth(n.Text, width))
		}
	} else if scratch {
		lines = append(lines, "", headerStyle.Render("Scratch"), mutedStyle.Render("type to pencil in"))
	}

	history := b.Puzzle().History()
	if len(history) > 1 {
		lines = append(lines, "", headerStyle.Render("Recent"))
		for _, h := range history[1:min(len(history), 6)] {
			c, ok := b.Puzzle().Clues(h.Across).Get(h.Number)
			if !ok {
				continue
			}
			lines = append(lines, trimToWidth(clueLabel(c)+" "+c.Text, width))
		}
	}
	return strings.Join(lines, "\n")
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
