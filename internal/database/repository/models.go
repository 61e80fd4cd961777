package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx so repos can join a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Puzzle represents a puzzle row. Puz is the Across Lite file, State the
// encoded solve state.
type Puzzle struct {
	ID              string
	Title           string
	Author          string
	Source          string
	Date            *time.Time
	Width           int
	Height          int
	PercentComplete int
	PercentFilled   int
	ElapsedMS       int64
	Puz             []byte
	State           []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PuzzleSummary is a puzzle row without its blobs.
type PuzzleSummary struct {
	ID              string
	Title           string
	Author          string
	Source          string
	Date            *time.Time
	Width           int
	Height          int
	PercentComplete int
	PercentFilled   int
	ElapsedMS       int64
	UpdatedAt       time.Time
}

// Note represents a per-clue note row. Scratch uses a space for empty slots.
type Note struct {
	PuzzleID   string
	ClueNumber int
	Across     bool
	Text       string
	Scratch    string
}

// HistoryEntry is one recently visited clue; Seq 0 is the most recent.
type HistoryEntry struct {
	PuzzleID   string
	Seq        int
	ClueNumber int
	Across     bool
}
