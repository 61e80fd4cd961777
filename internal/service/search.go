package service

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/jask/puzboard/internal/puz"
)

// ClueMatch is a clue found by FindClues. Lower scores are better; 0 is an
// exact number or substring hit.
type ClueMatch struct {
	Clue  puz.Clue
	Score float64
}

const fuzzyThreshold = 0.5

// FindClues searches the clues of p. A query like "12a" or "7d" selects a clue
// by number; otherwise clue texts are matched by substring, then by edit
// distance against each word. At most limit matches are returned when limit > 0.
func FindClues(p *puz.Puzzle, query string, limit int) []ClueMatch {
	q := normalize(query)
	if q == "" {
		return nil
	}
	if m, ok := byNumber(p, q); ok {
		return m
	}

	type ranked struct {
		ClueMatch
		order int
	}
	var found []ranked
	order := 0
	for _, across := range []bool{true, false} {
		for _, c := range p.Clues(across).All() {
			order++
			score, ok := scoreClue(c.Text, q)
			if ok {
				found = append(found, ranked{ClueMatch{Clue: c, Score: score}, order})
			}
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Score != found[j].Score {
			return found[i].Score < found[j].Score
		}
		return found[i].order < found[j].order
	})

	out := make([]ClueMatch, 0, len(found))
	for _, f := range found {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, f.ClueMatch)
	}
	return out
}

func byNumber(p *puz.Puzzle, q string) ([]ClueMatch, bool) {
	last := q[len(q)-1]
	if last != 'a' && last != 'd' {
		return nil, false
	}
	n, err := strconv.Atoi(q[:len(q)-1])
	if err != nil {
		return nil, false
	}
	c, ok := p.Clues(last == 'a').Get(n)
	if !ok {
		return nil, true
	}
	return []ClueMatch{{Clue: c}}, true
}

func scoreClue(text, q string) (float64, bool) {
	t := normalize(text)
	if strings.Contains(t, q) {
		return 0, true
	}
	best := 1.0
	for _, word := range strings.Fields(t) {
		dist := levenshtein.ComputeDistance(word, q)
		maxlen := max(len([]rune(word)), len([]rune(q)))
		if s := float64(dist) / float64(maxlen); s < best {
			best = s
		}
	}
	return best, best <= fuzzyThreshold
}

func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
