package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/puzboard/internal/playboard"
	"github.com/jask/puzboard/internal/puz"
	"github.com/jask/puzboard/internal/service"
)

const searchLimit = 6

// App is the solving screen for one puzzle.
type App struct {
	ctx    context.Context
	lib    *service.Library
	id     string
	board  *playboard.Playboard
	sub    playboard.Subscription
	keys   *KeyRegistry
	logger *slog.Logger

	scope       string
	search      textinput.Model
	matches     []service.ClueMatch
	matchCursor int

	status    string
	statusErr bool
	dirty     bool
	solved    bool
	announce  bool
	quitting  bool
	width     int
	height    int
}

// New builds the solving screen. lib may be nil, in which case saving is a no-op.
func New(ctx context.Context, lib *service.Library, id string, board *playboard.Playboard, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	search := textinput.New()
	search.Placeholder = "clue text or 12a"
	search.Prompt = "/ "
	search.CharLimit = 64

	a := &App{
		ctx:    ctx,
		lib:    lib,
		id:     id,
		board:  board,
		keys:   DefaultKeyRegistry(),
		logger: logger,
		scope:  scopeGrid,
		search: search,
		solved: board.Puzzle().IsSolved(),
		width:  80,
	}
	a.sub = board.AddListener(a)
	return a
}

// OnPlayboardChange marks the puzzle dirty and notices when it gets solved.
func (a *App) OnPlayboardChange(wholeBoard bool, current puz.Word, previous *puz.Word) {
	a.dirty = true
	if !a.solved && a.board.Puzzle().IsSolved() {
		a.solved = true
		a.announce = true
		a.logger.Info("puzzle solved", "id", a.id, "elapsed", a.board.Puzzle().Time)
	}
}

// Close detaches the screen from its playboard.
func (a *App) Close() {
	a.board.RemoveListener(a.sub)
}

type (
	tickMsg   time.Time
	savedMsg  struct{}
	statusMsg string
	errMsg    struct{ error }
)

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) Init() tea.Cmd {
	return tick()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tickMsg:
		if !a.solved && !a.quitting {
			a.board.Puzzle().Time += time.Second
		}
		return a, tick()
	case savedMsg:
		a.dirty = false
		a.setStatus("saved")
	case statusMsg:
		a.setStatus(string(m))
	case errMsg:
		a.statusErr = true
		a.status = "error: " + m.Error()
	case tea.KeyMsg:
		var cmd tea.Cmd
		if a.scope == scopeSearch {
			cmd = a.handleSearchKey(m)
		} else {
			cmd = a.handleBoardKey(m)
		}
		if a.announce {
			a.announce = false
			a.setStatus("Solved in " + formatElapsed(a.board.Puzzle().Time))
		}
		return a, cmd
	}
	return a, nil
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) handleBoardKey(m tea.KeyMsg) tea.Cmd {
	b := a.board
	action, ok := a.keys.Action(m, a.scope)
	if !ok {
		if r, ok := letter(m); ok {
			if a.scope == scopeScratch {
				b.PlayScratchLetter(r)
			} else {
				b.PlayLetter(r)
			}
		}
		return nil
	}

	switch action {
	case actionUp:
		b.MoveUp(false)
	case actionDown:
		b.MoveDown(false)
	case actionLeft:
		b.MoveLeft(false)
	case actionRight:
		b.MoveRight(false)
	case actionNextWord:
		b.NextWord()
	case actionPrevWord:
		b.PreviousWord()
	case actionToggle:
		b.ToggleDirection()
	case actionNextLetter:
		b.NextLetter()
	case actionDelete:
		if a.scope == scopeScratch {
			b.DeleteScratchLetter()
		} else {
			b.DeleteLetter()
		}
	case actionShowErrors:
		a.cycleShowErrors()
	case actionRevealLetter:
		if _, ok := b.RevealLetter(); !ok {
			a.setStatus("nothing to reveal")
		}
	case actionRevealWord:
		a.setStatus(fmt.Sprintf("revealed %d letters", len(b.RevealWord())))
	case actionRevealErrors:
		a.setStatus(fmt.Sprintf("fixed %d letters", len(b.RevealErrors())))
	case actionRevealPuzzle:
		a.setStatus(fmt.Sprintf("revealed %d letters", len(b.RevealPuzzle())))
	case actionScratch:
		if a.scope == scopeScratch {
			a.scope = scopeGrid
			a.setStatus("")
		} else {
			a.scope = scopeScratch
			a.setStatus("scratch mode")
		}
	case actionSearch:
		a.scope = scopeSearch
		a.search.SetValue("")
		a.matches = nil
		a.matchCursor = 0
		return a.search.Focus()
	case actionSave:
		return a.saveCmd()
	case actionQuit:
		a.quitting = true
		return tea.Sequence(a.saveCmd(), tea.Quit)
	}
	return nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) tea.Cmd {
	if action, ok := a.keys.Action(m, a.scope); ok {
		switch action {
		case actionSearchCancel:
			a.closeSearch()
			return nil
		case actionSearchJump:
			if a.matchCursor < len(a.matches) {
				c := a.matches[a.matchCursor].Clue
				a.board.JumpToClue(c.Number, c.Across)
			}
			a.closeSearch()
			return nil
		case actionSearchNext:
			if a.matchCursor+1 < len(a.matches) {
				a.matchCursor++
			}
			return nil
		case actionSearchPrevious:
			if a.matchCursor > 0 {
				a.matchCursor--
			}
			return nil
		case actionSave:
			return a.saveCmd()
		}
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.matches = service.FindClues(a.board.Puzzle(), a.search.Value(), searchLimit)
	a.matchCursor = 0
	return cmd
}

func (a *App) closeSearch() {
	a.search.Blur()
	a.scope = scopeGrid
	a.matches = nil
}

// cycleShowErrors steps off → cursor → grid → off.
func (a *App) cycleShowErrors() {
	b := a.board
	switch {
	case b.IsShowErrorsGrid():
		b.SetShowErrorsGrid(false)
		b.SetShowErrorsCursor(false)
		a.setStatus("errors hidden")
	case b.IsShowErrorsCursor():
		b.SetShowErrorsCursor(false)
		b.SetShowErrorsGrid(true)
		a.setStatus("errors shown on grid")
	default:
		b.SetShowErrorsCursor(true)
		a.setStatus("errors shown at cursor")
	}
}

// saveCmd encodes the puzzle now, on the update goroutine, and leaves only the
// database write to the command.
func (a *App) saveCmd() tea.Cmd {
	if a.lib == nil {
		return func() tea.Msg { return statusMsg("nothing to save") }
	}
	snap, err := a.lib.Snapshot(a.id, a.board.Puzzle())
	if err != nil {
		a.logger.Error("encode failed", "id", a.id, "err", err)
		return func() tea.Msg { return errMsg{err} }
	}
	return func() tea.Msg {
		if err := a.lib.Persist(a.ctx, snap); err != nil {
			a.logger.Error("save failed", "id", a.id, "err", err)
			return errMsg{err}
		}
		return savedMsg{}
	}
}

// letter maps a single printable key to an upper-case response.
func letter(m tea.KeyMsg) (rune, bool) {
	if m.Type != tea.KeyRunes || len(m.Runes) != 1 || m.Alt {
		return 0, false
	}
	r := m.Runes[0]
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return 0, false
	}
	return unicode.ToUpper(r), true
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	p := a.board.Puzzle()

	title := p.Title
	if title == "" {
		title = "Untitled"
	}
	header := titleStyle.Render(title)
	if p.Author != "" {
		header += mutedStyle.Render(" · " + p.Author)
	}
	filled, _ := p.Percentages()
	progress := fmt.Sprintf("%d%% filled · %s", filled, formatElapsed(p.Time))
	if a.dirty {
		progress += " · unsaved"
	}
	header += "\n" + mutedStyle.Render(progress)

	grid := renderGrid(a.board)
	panelWidth := max(20, a.width-lipgloss.Width(grid)-6)
	var side string
	if a.scope == scopeSearch {
		side = a.renderSearch(panelWidth)
	} else {
		side = renderCluePanel(a.board, a.scope == scopeScratch, panelWidth)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", panelStyle.Width(panelWidth).Render(side))

	return strings.Join([]string{
		header,
		"",
		body,
		"",
		renderStatusBar(a.status, a.statusErr, a.width),
		renderFooter(a.keys, a.scope, a.width),
	}, "\n")
}

func (a *App) renderSearch(width int) string {
	lines := []string{a.search.View(), ""}
	if len(a.matches) == 0 && a.search.Value() != "" {
		lines = append(lines, mutedStyle.Render("no matches"))
	}
	for i, m := range a.matches {
		line := trimToWidth(clueLabel(m.Clue)+" "+m.Clue.Text, width-2)
		if i == a.matchCursor {
			lines = append(lines, clueActiveStyle.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}
