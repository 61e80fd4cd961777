package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/puzboard/internal/database/repository"
)

type puzzleItem struct {
	summary repository.PuzzleSummary
}

func (p puzzleItem) Title() string       { return p.summary.Title }
func (p puzzleItem) Description() string { return p.summary.Author }
func (p puzzleItem) FilterValue() string { return p.summary.Title + " " + p.summary.Author }

type puzzleItemDelegate struct{}

func (d puzzleItemDelegate) Height() int  { return 1 }
func (d puzzleItemDelegate) Spacing() int { return 0 }
func (d puzzleItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d puzzleItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(puzzleItem)
	if !ok {
		return
	}
	line := pickerLine(entry.summary)
	if index == m.Index() {
		fmt.Fprint(w, clueActiveStyle.Render(padRight("> "+line, m.Width())))
		return
	}
	fmt.Fprint(w, padRight("  "+line, m.Width()))
}

func pickerLine(s repository.PuzzleSummary) string {
	title := s.Title
	if title == "" {
		title = "Untitled"
	}
	if s.Author != "" {
		title += " · " + s.Author
	}
	elapsed := formatElapsed(time.Duration(s.ElapsedMS) * time.Millisecond)
	return fmt.Sprintf("%-40s %3d%% %s", ansi.Truncate(title, 40, "…"), s.PercentFilled, elapsed)
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

type pickerKeyMap struct {
	Choose key.Binding
	Quit   key.Binding
}

func newPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Picker lists stored puzzles and lets the user choose one to play.
type Picker struct {
	list   list.Model
	keys   pickerKeyMap
	chosen string
	done   bool
	width  int
}

func NewPicker(rows []repository.PuzzleSummary) *Picker {
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, puzzleItem{summary: r})
	}
	l := list.New(items, puzzleItemDelegate{}, 60, max(3, len(items)+2))
	l.Title = "Puzzles"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return &Picker{list: l, keys: newPickerKeyMap(), width: 60}
}

// Chosen returns the selected puzzle id, or false when the picker was dismissed.
func (p *Picker) Chosen() (string, bool) {
	return p.chosen, p.chosen != ""
}

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = m.Width
		p.list.SetSize(m.Width, max(3, m.Height-2))
		return p, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(m, p.keys.Quit):
			p.done = true
			return p, tea.Quit
		case key.Matches(m, p.keys.Choose):
			if item, ok := p.list.SelectedItem().(puzzleItem); ok {
				p.chosen = item.summary.ID
			}
			p.done = true
			return p, tea.Quit
		}
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p *Picker) View() string {
	if p.done {
		return ""
	}
	help := []string{}
	for _, b := range []key.Binding{p.keys.Choose, p.keys.Quit} {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	return p.list.View() + "\n" + renderBar(footerStyle, max(1, p.width), mutedStyle.Render(strings.Join(help, "  ")), colorMantle)
}
