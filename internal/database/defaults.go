package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/puzboard/internal/database/repository"
	"github.com/jask/puzboard/internal/fixture"
	"github.com/jask/puzboard/internal/puzio"
)

// SeedDefaults stores the sample puzzle when the library is empty. It is
// idempotent and returns the sample's id when it inserted one.
func SeedDefaults(ctx context.Context, db *sql.DB) (string, error) {
	repo := repository.NewPuzzleRepo(db)
	existing, err := repo.List(ctx)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return "", nil
	}

	p := fixture.Sample()
	data, err := puzio.WriteAcrossLite(p)
	if err != nil {
		return "", fmt.Errorf("encode sample: %w", err)
	}
	state, err := puzio.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode sample state: %w", err)
	}
	id := p.ID()
	if _, err := repo.Insert(ctx, repository.Puzzle{
		ID:     id,
		Title:  p.Title,
		Author: p.Author,
		Source: "sample",
		Width:  p.Width(),
		Height: p.Height(),
		Puz:    data,
		State:  state,
	}); err != nil {
		return "", err
	}
	return id, nil
}
