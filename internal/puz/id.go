package puz

import (
	"strings"

	"github.com/google/uuid"
)

// ID derives a stable identifier from the grid shape and solution, so the same
// puzzle imported twice maps to one library entry.
func (p *Puzzle) ID() string {
	var sb strings.Builder
	sb.WriteString("puz:")
	for _, row := range p.boxes {
		for _, b := range row {
			if b == nil {
				sb.WriteByte('.')
				continue
			}
			sb.WriteRune(b.Solution)
		}
		sb.WriteByte('/')
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(sb.String())).String()
}
