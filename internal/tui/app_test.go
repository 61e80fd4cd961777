package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/puzboard/internal/config"
	"github.com/jask/puzboard/internal/database"
	"github.com/jask/puzboard/internal/fixture"
	"github.com/jask/puzboard/internal/playboard"
	"github.com/jask/puzboard/internal/puz"
	"github.com/jask/puzboard/internal/service"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) (*App, *playboard.Playboard) {
	t.Helper()
	b := playboard.New(fixture.Sample())
	return New(context.Background(), nil, "", b, nil), b
}

func send(a *App, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = a.Update(m)
	}
	return cmd
}

func TestTypingAndDeleting(t *testing.T) {
	a, b := newTestApp(t)
	p := b.Puzzle()

	send(a, runes("s"), runes("l"))
	require.Equal(t, 'S', p.BoxAt(puz.Position{}).Response)
	require.Equal(t, 'L', p.BoxAt(puz.Position{Across: 1}).Response)
	require.Equal(t, puz.Position{Across: 2}, b.HighlightLetter())
	require.True(t, a.dirty)

	send(a, tea.KeyMsg{Type: tea.KeyBackspace})
	require.True(t, p.BoxAt(puz.Position{Across: 1}).IsBlank())
	require.Equal(t, puz.Position{Across: 1}, b.HighlightLetter())

	send(a, runes("!"))
	require.Equal(t, puz.Position{Across: 1}, b.HighlightLetter())
}

func TestNavigationKeys(t *testing.T) {
	a, b := newTestApp(t)

	send(a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, puz.Position{Down: 1}, b.HighlightLetter())
	send(a, tea.KeyMsg{Type: tea.KeySpace})
	require.False(t, b.IsAcross())
	send(a, tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, b.IsAcross())

	send(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, puz.Position{}, b.HighlightLetter())

	send(a, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, puz.Position{Across: 1, Down: 1}, b.HighlightLetter())
	send(a, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, puz.Position{}, b.HighlightLetter())
}

func TestRevealAndShowErrors(t *testing.T) {
	a, b := newTestApp(t)
	p := b.Puzzle()

	send(a, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.True(t, p.BoxAt(puz.Position{}).Cheated)
	send(a, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, "nothing to reveal", a.status)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlE})
	require.True(t, b.IsShowErrorsCursor())
	send(a, tea.KeyMsg{Type: tea.KeyCtrlE})
	require.True(t, b.IsShowErrorsGrid())
	require.False(t, b.IsShowErrorsCursor())
	send(a, tea.KeyMsg{Type: tea.KeyCtrlE})
	require.False(t, b.IsShowErrors())

	send(a, tea.KeyMsg{Type: tea.KeyCtrlW})
	require.Equal(t, "revealed 3 letters", a.status)
	require.Equal(t, "SLAB", b.CurrentWordResponse())
}

func TestSolvingStopsClock(t *testing.T) {
	a, b := newTestApp(t)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.True(t, b.Puzzle().IsSolved())
	require.True(t, a.solved)
	require.Contains(t, a.status, "Solved")

	before := b.Puzzle().Time
	cmd := send(a, tickMsg(time.Now()))
	require.NotNil(t, cmd)
	require.Equal(t, before, b.Puzzle().Time)
}

func TestClockTicks(t *testing.T) {
	a, b := newTestApp(t)
	send(a, tickMsg(time.Now()), tickMsg(time.Now()))
	require.Equal(t, 2*time.Second, b.Puzzle().Time)
}

func TestScratchMode(t *testing.T) {
	a, b := newTestApp(t)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlN}, runes("x"))
	require.Equal(t, scopeScratch, a.scope)
	note := b.Puzzle().Note(1, true)
	require.NotNil(t, note)
	require.Equal(t, 'X', note.ScratchLetter(0))
	require.True(t, b.Puzzle().BoxAt(puz.Position{}).IsBlank())
	require.Contains(t, a.View(), "Scratch")

	send(a, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, scopeGrid, a.scope)
}

func TestClueSearchJumps(t *testing.T) {
	a, b := newTestApp(t)

	send(a, runes("/"))
	require.Equal(t, scopeSearch, a.scope)

	send(a, runes("b"), runes("e"), runes("e"))
	require.Equal(t, "bee", a.search.Value())
	require.NotEmpty(t, a.matches)
	require.Equal(t, 5, a.matches[0].Clue.Number)
	require.Contains(t, a.View(), "Bee product")

	send(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, scopeGrid, a.scope)
	require.Equal(t, puz.Position{Down: 1}, b.HighlightLetter())
	require.True(t, b.IsAcross())

	send(a, runes("/"), runes("z"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, scopeGrid, a.scope)
	require.Equal(t, puz.Position{Down: 1}, b.HighlightLetter())
}

func TestQuitWithoutLibrary(t *testing.T) {
	a, _ := newTestApp(t)

	cmd := send(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.True(t, a.quitting)
	require.Empty(t, a.View())

	msg := a.saveCmd()()
	require.Equal(t, statusMsg("nothing to save"), msg)
}

func TestViewShowsBoard(t *testing.T) {
	a, _ := newTestApp(t)
	send(a, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := a.View()
	require.Contains(t, view, "Puzboard Sample")
	require.Contains(t, view, "Concrete floor piece")
	require.Contains(t, view, "0% filled")
	require.True(t, strings.Contains(view, "find clue"))
}

func newLibraryApp(t *testing.T) (*App, *service.Library, string) {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(filepath.Join(t.TempDir(), "tui.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrationsWithDB(db, ""))

	lib := service.NewLibrary(db, nil)
	res, err := lib.ImportPuzzle(ctx, fixture.Sample(), "test")
	require.NoError(t, err)
	p, err := lib.Open(ctx, res.ID)
	require.NoError(t, err)

	opts, err := BoardOptions(config.PlayConfig{Responder: "ann", Movement: "axis"})
	require.NoError(t, err)
	return New(ctx, lib, res.ID, playboard.New(p, opts...), nil), lib, res.ID
}

func TestSaveThroughLibrary(t *testing.T) {
	ctx := context.Background()
	a, lib, id := newLibraryApp(t)
	send(a, runes("s"))

	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	send(a, cmd())
	require.False(t, a.dirty)
	require.Equal(t, "saved", a.status)

	stored, err := lib.Open(ctx, id)
	require.NoError(t, err)
	box := stored.BoxAt(puz.Position{})
	require.Equal(t, 'S', box.Response)
	require.Equal(t, "ann", box.Responder)

	a.Close()
	send(a, runes("l"))
	require.False(t, a.dirty)
}

func TestSaveWritesWhileEditingContinues(t *testing.T) {
	ctx := context.Background()
	a, lib, id := newLibraryApp(t)
	send(a, runes("s"))

	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	send(a, tickMsg(time.Now()), runes("l"), runes("a"))
	_ = a.View()
	send(a, <-done)
	require.Equal(t, "saved", a.status)

	stored, err := lib.Open(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 'S', stored.BoxAt(puz.Position{}).Response)
	require.True(t, stored.BoxAt(puz.Position{Across: 1}).IsBlank())
	require.Equal(t, 5, stored.PercentFilled)
}

func TestViewDoesNotStorePercentages(t *testing.T) {
	a, b := newTestApp(t)
	send(a, runes("s"), runes("l"))

	require.Contains(t, a.View(), "10% filled")
	require.Zero(t, b.Puzzle().PercentFilled)
}

func TestBoardOptions(t *testing.T) {
	_, err := BoardOptions(config.PlayConfig{Movement: "diagonal"})
	require.Error(t, err)

	opts, err := BoardOptions(config.PlayConfig{Movement: "clue", ShowErrors: config.ShowErrorsGrid})
	require.NoError(t, err)
	b := playboard.New(fixture.Sample(), opts...)
	require.Equal(t, playboard.MoveNextClue, b.MovementStrategy())
	require.True(t, b.IsShowErrorsGrid())
}
