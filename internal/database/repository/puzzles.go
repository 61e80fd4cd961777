package repository

import (
	"context"
	"database/sql"
	"errors"
)

// PuzzleRepo handles puzzles.
type PuzzleRepo struct {
	db DBTX
}

func NewPuzzleRepo(db DBTX) *PuzzleRepo {
	return &PuzzleRepo{db: db}
}

// Insert stores a new puzzle. It reports false, leaving the row alone, when the
// id already exists.
func (r *PuzzleRepo) Insert(ctx context.Context, p Puzzle) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO puzzles(id, title, author, source, puzzle_date, width, height,
	 percent_complete, percent_filled, elapsed_ms, puz, state, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO NOTHING;
	`, p.ID, p.Title, p.Author, p.Source, p.Date, p.Width, p.Height,
		p.PercentComplete, p.PercentFilled, p.ElapsedMS, p.Puz, p.State)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateState replaces the grid, solve state and listing columns of a puzzle.
func (r *PuzzleRepo) UpdateState(ctx context.Context, p Puzzle) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	UPDATE puzzles SET
	 title=?, author=?, source=?, puzzle_date=?,
	 percent_complete=?, percent_filled=?, elapsed_ms=?,
	 puz=?, state=?, updated_at=CURRENT_TIMESTAMP
	WHERE id=?;
	`, p.Title, p.Author, p.Source, p.Date,
		p.PercentComplete, p.PercentFilled, p.ElapsedMS,
		p.Puz, p.State, p.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PuzzleRepo) Get(ctx context.Context, id string) (*Puzzle, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, title, author, source, puzzle_date, width, height,
	 percent_complete, percent_filled, elapsed_ms, puz, state, created_at, updated_at
	FROM puzzles WHERE id=?`, id)
	var p Puzzle
	var date sql.NullTime
	if err := row.Scan(&p.ID, &p.Title, &p.Author, &p.Source, &date, &p.Width, &p.Height,
		&p.PercentComplete, &p.PercentFilled, &p.ElapsedMS, &p.Puz, &p.State, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if date.Valid {
		p.Date = &date.Time
	}
	return &p, nil
}

// List returns all puzzles, most recently touched first.
func (r *PuzzleRepo) List(ctx context.Context) ([]PuzzleSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, title, author, source, puzzle_date, width, height,
	 percent_complete, percent_filled, elapsed_ms, updated_at
	FROM puzzles ORDER BY updated_at DESC, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PuzzleSummary
	for rows.Next() {
		var s PuzzleSummary
		var date sql.NullTime
		if err := rows.Scan(&s.ID, &s.Title, &s.Author, &s.Source, &date, &s.Width, &s.Height,
			&s.PercentComplete, &s.PercentFilled, &s.ElapsedMS, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if date.Valid {
			s.Date = &date.Time
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindByPrefix returns the ids starting with prefix.
func (r *PuzzleRepo) FindByPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM puzzles WHERE substr(id, 1, ?) = ? ORDER BY id`, len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PuzzleRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM puzzles WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
