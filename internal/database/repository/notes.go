package repository

import (
	"context"
	"fmt"
)

// NoteRepo handles per-clue notes.
type NoteRepo struct {
	db DBTX
}

func NewNoteRepo(db DBTX) *NoteRepo {
	return &NoteRepo{db: db}
}

// Replace swaps every note of a puzzle for notes.
func (r *NoteRepo) Replace(ctx context.Context, puzzleID string, notes []Note) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE puzzle_id=?`, puzzleID); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}
	for _, n := range notes {
		if _, err := r.db.ExecContext(ctx, `
		INSERT INTO notes(puzzle_id, clue_number, across, text, scratch)
		VALUES (?, ?, ?, ?, ?)`, puzzleID, n.ClueNumber, n.Across, n.Text, n.Scratch); err != nil {
			return fmt.Errorf("insert note %d: %w", n.ClueNumber, err)
		}
	}
	return nil
}

func (r *NoteRepo) List(ctx context.Context, puzzleID string) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT puzzle_id, clue_number, across, text, scratch
	FROM notes WHERE puzzle_id=? ORDER BY across DESC, clue_number`, puzzleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.PuzzleID, &n.ClueNumber, &n.Across, &n.Text, &n.Scratch); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
