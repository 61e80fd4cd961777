package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/puzboard/internal/database/repository"
)

func pickerRows() []repository.PuzzleSummary {
	return []repository.PuzzleSummary{
		{ID: "aaaa-1111", Title: "Monday", Author: "Ann", PercentFilled: 40, ElapsedMS: 65000},
		{ID: "bbbb-2222", Title: "Tuesday", Author: "Bo"},
	}
}

func TestPickerChoosesSelectedPuzzle(t *testing.T) {
	p := NewPicker(pickerRows())
	p.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	require.Contains(t, p.View(), "Monday · Ann")
	require.Contains(t, p.View(), "Tuesday")

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	id, ok := p.Chosen()
	require.True(t, ok)
	require.Equal(t, "bbbb-2222", id)
	require.Empty(t, p.View())
}

func TestPickerQuitChoosesNothing(t *testing.T) {
	p := NewPicker(pickerRows())
	_, cmd := p.Update(runes("q"))
	require.NotNil(t, cmd)

	_, ok := p.Chosen()
	require.False(t, ok)
}

func TestPickerLine(t *testing.T) {
	line := pickerLine(repository.PuzzleSummary{Title: "", PercentFilled: 7, ElapsedMS: 3000})
	require.Contains(t, line, "Untitled")
	require.Contains(t, line, "  7%")
	require.Contains(t, line, formatElapsed(3_000_000_000))
}
