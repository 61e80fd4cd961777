package puz

import "time"

// Meta is the solve-state header of a puzzle. Time is elapsed solving time.
type Meta struct {
	Title           string
	Author          string
	Source          string
	SourceURL       string
	Date            time.Time
	PercentComplete int
	PercentFilled   int
	Updatable       bool
	Position        Position
	Across          bool
	Time            time.Duration
}
