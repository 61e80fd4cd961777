package repository

import (
	"context"
	"fmt"
)

// HistoryRepo handles the recently visited clue list.
type HistoryRepo struct {
	db DBTX
}

func NewHistoryRepo(db DBTX) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Replace stores entries in order; their Seq is ignored.
func (r *HistoryRepo) Replace(ctx context.Context, puzzleID string, entries []HistoryEntry) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM clue_history WHERE puzzle_id=?`, puzzleID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	for i, e := range entries {
		if _, err := r.db.ExecContext(ctx, `
		INSERT INTO clue_history(puzzle_id, seq, clue_number, across)
		VALUES (?, ?, ?, ?)`, puzzleID, i, e.ClueNumber, e.Across); err != nil {
			return fmt.Errorf("insert history %d: %w", i, err)
		}
	}
	return nil
}

func (r *HistoryRepo) List(ctx context.Context, puzzleID string) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT puzzle_id, seq, clue_number, across
	FROM clue_history WHERE puzzle_id=? ORDER BY seq`, puzzleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.PuzzleID, &e.Seq, &e.ClueNumber, &e.Across); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
