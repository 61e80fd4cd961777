package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeGrid    = "grid"
	scopeScratch = "scratch"
	scopeSearch  = "search"
)

const (
	actionUp             = "up"
	actionDown           = "down"
	actionLeft           = "left"
	actionRight          = "right"
	actionNextWord       = "next_word"
	actionPrevWord       = "prev_word"
	actionToggle         = "toggle_direction"
	actionNextLetter     = "next_letter"
	actionDelete         = "delete"
	actionShowErrors     = "show_errors"
	actionRevealLetter   = "reveal_letter"
	actionRevealWord     = "reveal_word"
	actionRevealErrors   = "reveal_errors"
	actionRevealPuzzle   = "reveal_puzzle"
	actionScratch        = "scratch"
	actionSearch         = "search"
	actionSave           = "save"
	actionQuit           = "quit"
	actionSearchJump     = "search_jump"
	actionSearchCancel   = "search_cancel"
	actionSearchNext     = "search_next"
	actionSearchPrevious = "search_prev"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func DefaultKeyRegistry() *KeyRegistry {
	board := []string{scopeGrid, scopeScratch}
	return NewKeyRegistry([]KeyBinding{
		{Keys: []string{"up"}, Action: actionUp, Description: "up", Scopes: board},
		{Keys: []string{"down"}, Action: actionDown, Description: "down", Scopes: board},
		{Keys: []string{"left"}, Action: actionLeft, Description: "left", Scopes: board},
		{Keys: []string{"right"}, Action: actionRight, Description: "right", Scopes: board},
		{Keys: []string{"tab"}, Action: actionNextWord, Description: "next word", Scopes: board},
		{Keys: []string{"shift+tab"}, Action: actionPrevWord, Description: "prev word", Scopes: board},
		{Keys: []string{"space"}, Action: actionToggle, Description: "direction", Scopes: board},
		{Keys: []string{"enter"}, Action: actionNextLetter, Description: "skip", Scopes: board},
		{Keys: []string{"backspace", "delete"}, Action: actionDelete, Description: "delete", Scopes: board},
		{Keys: []string{"ctrl+e"}, Action: actionShowErrors, Description: "errors", Scopes: board},
		{Keys: []string{"ctrl+r"}, Action: actionRevealLetter, Description: "reveal", Scopes: board},
		{Keys: []string{"ctrl+w"}, Action: actionRevealWord, Description: "reveal word", Scopes: board},
		{Keys: []string{"ctrl+x"}, Action: actionRevealErrors, Description: "fix errors", Scopes: board},
		{Keys: []string{"ctrl+g"}, Action: actionRevealPuzzle, Description: "give up", Scopes: board},
		{Keys: []string{"ctrl+n"}, Action: actionScratch, Description: "scratch", Scopes: board},
		{Keys: []string{"/", "ctrl+f"}, Action: actionSearch, Description: "find clue", Scopes: board},
		{Keys: []string{"ctrl+s"}, Action: actionSave, Description: "save", Scopes: []string{"*"}},
		{Keys: []string{"esc", "ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: board},
		{Keys: []string{"enter"}, Action: actionSearchJump, Description: "jump", Scopes: []string{scopeSearch}},
		{Keys: []string{"down", "ctrl+n"}, Action: actionSearchNext, Description: "next", Scopes: []string{scopeSearch}},
		{Keys: []string{"up", "ctrl+p"}, Action: actionSearchPrevious, Description: "prev", Scopes: []string{scopeSearch}},
		{Keys: []string{"esc", "ctrl+c"}, Action: actionSearchCancel, Description: "cancel", Scopes: []string{scopeSearch}},
	})
}

func (r *KeyRegistry) Register(binding KeyBinding) {
	r.bindings = append(r.bindings, binding)
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	a, ok := r.Action(msg, scope)
	return ok && a == action
}

// Action returns the first action bound to the pressed key in scope.
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) (string, bool) {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action, true
			}
		}
	}
	return "", false
}

func normalizeKey(k string) string {
	if k != "" && strings.TrimSpace(k) == "" {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
