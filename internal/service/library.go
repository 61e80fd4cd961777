package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jask/puzboard/internal/database"
	"github.com/jask/puzboard/internal/database/repository"
	"github.com/jask/puzboard/internal/puz"
	"github.com/jask/puzboard/internal/puzio"
)

var (
	ErrNotFound  = errors.New("puzzle not found")
	ErrAmbiguous = errors.New("puzzle id prefix is ambiguous")
)

// Library stores imported puzzles with their solve state, notes and history.
type Library struct {
	DB      *sql.DB
	Puzzles *repository.PuzzleRepo
	Notes   *repository.NoteRepo
	History *repository.HistoryRepo
	Logger  *slog.Logger
}

func NewLibrary(db *sql.DB, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		DB:      db,
		Puzzles: repository.NewPuzzleRepo(db),
		Notes:   repository.NewNoteRepo(db),
		History: repository.NewHistoryRepo(db),
		Logger:  logger,
	}
}

// ImportResult reports the outcome of one import.
type ImportResult struct {
	ID      string
	Title   string
	Created bool
}

// Import parses an Across Lite file and adds it to the library. Importing a
// puzzle that is already present keeps its solve state.
func (l *Library) Import(ctx context.Context, data []byte, source string) (ImportResult, error) {
	p, err := puzio.ReadAcrossLite(data)
	if err != nil {
		return ImportResult{}, fmt.Errorf("parse puz: %w", err)
	}
	return l.ImportPuzzle(ctx, p, source)
}

func (l *Library) ImportPuzzle(ctx context.Context, p *puz.Puzzle, source string) (ImportResult, error) {
	if source != "" {
		p.Source = source
	}
	p.UpdatePercentages()
	row, err := toRow(p)
	if err != nil {
		return ImportResult{}, err
	}
	created, err := l.Puzzles.Insert(ctx, row)
	if err != nil {
		return ImportResult{}, fmt.Errorf("insert puzzle: %w", err)
	}
	l.Logger.Info("puzzle imported", "id", row.ID, "title", p.Title, "created", created)
	return ImportResult{ID: row.ID, Title: p.Title, Created: created}, nil
}

// Resolve expands an id prefix to a full puzzle id.
func (l *Library) Resolve(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrNotFound
	}
	ids, err := l.Puzzles.FindByPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d puzzles", ErrAmbiguous, prefix, len(ids))
	}
}

// Open loads a puzzle with its solve state, notes and history.
func (l *Library) Open(ctx context.Context, id string) (*puz.Puzzle, error) {
	row, err := l.Puzzles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p, err := puzio.ReadAcrossLite(row.Puz)
	if err != nil {
		return nil, fmt.Errorf("parse stored puz %s: %w", id, err)
	}
	if len(row.State) > 0 {
		if err := puzio.Unmarshal(row.State, p); err != nil {
			// the grid is still playable without the overlay
			l.Logger.Warn("discarding unreadable solve state", "id", id, "err", err)
		}
	}

	notes, err := l.Notes.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	for _, n := range notes {
		p.SetNote(n.ClueNumber, n.Across, &puz.Note{Text: n.Text, Scratch: puz.ParseScratch(n.Scratch)})
	}

	history, err := l.History.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	ids := make([]puz.ClueID, 0, len(history))
	for _, h := range history {
		ids = append(ids, puz.ClueID{Number: h.ClueNumber, Across: h.Across})
	}
	p.SetHistory(ids)
	return p, nil
}

// Snapshot captures everything Save writes for p. It must run on the goroutine
// that owns p; the result can be persisted from anywhere.
type Snapshot struct {
	row     repository.Puzzle
	notes   []repository.Note
	history []repository.HistoryEntry
}

// Snapshot recomputes the percentages of p and encodes its solve state, notes
// and history under id.
func (l *Library) Snapshot(id string, p *puz.Puzzle) (Snapshot, error) {
	p.UpdatePercentages()
	row, err := toRow(p)
	if err != nil {
		return Snapshot{}, err
	}
	row.ID = id

	s := Snapshot{row: row}
	for cid, n := range p.Notes() {
		if n.IsEmpty() {
			continue
		}
		s.notes = append(s.notes, repository.Note{
			PuzzleID:   id,
			ClueNumber: cid.Number,
			Across:     cid.Across,
			Text:       n.Text,
			Scratch:    n.ScratchString(),
		})
	}
	for i, h := range p.History() {
		s.history = append(s.history, repository.HistoryEntry{PuzzleID: id, Seq: i, ClueNumber: h.Number, Across: h.Across})
	}
	return s, nil
}

// Persist writes a snapshot in one transaction.
func (l *Library) Persist(ctx context.Context, s Snapshot) error {
	id := s.row.ID
	err := database.WithTx(ctx, l.DB, func(tx *sql.Tx) error {
		updated, err := repository.NewPuzzleRepo(tx).UpdateState(ctx, s.row)
		if err != nil {
			return fmt.Errorf("update puzzle: %w", err)
		}
		if !updated {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err := repository.NewNoteRepo(tx).Replace(ctx, id, s.notes); err != nil {
			return err
		}
		return repository.NewHistoryRepo(tx).Replace(ctx, id, s.history)
	})
	if err != nil {
		return err
	}
	l.Logger.Debug("puzzle saved", "id", id, "filled", s.row.PercentFilled, "complete", s.row.PercentComplete)
	return nil
}

// Save persists the solve state of p under id in one transaction.
func (l *Library) Save(ctx context.Context, id string, p *puz.Puzzle) error {
	s, err := l.Snapshot(id, p)
	if err != nil {
		return err
	}
	return l.Persist(ctx, s)
}

func (l *Library) List(ctx context.Context) ([]repository.PuzzleSummary, error) {
	return l.Puzzles.List(ctx)
}

func (l *Library) Delete(ctx context.Context, id string) error {
	deleted, err := l.Puzzles.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	l.Logger.Info("puzzle deleted", "id", id)
	return nil
}

// Export renders a stored puzzle, including its current fill, as Across Lite.
func (l *Library) Export(ctx context.Context, id string) ([]byte, error) {
	p, err := l.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	return puzio.WriteAcrossLite(p)
}

// Info decodes the solve-state header of a stored puzzle.
func (l *Library) Info(ctx context.Context, id string) (puz.Meta, int, error) {
	row, err := l.Puzzles.Get(ctx, id)
	if err != nil {
		return puz.Meta{}, 0, err
	}
	if row == nil {
		return puz.Meta{}, 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	meta, version, err := puzio.ReadMeta(bytes.NewReader(row.State))
	if err != nil {
		return puz.Meta{}, version, err
	}
	meta.Time = time.Duration(row.ElapsedMS) * time.Millisecond
	return meta, version, nil
}

func toRow(p *puz.Puzzle) (repository.Puzzle, error) {
	data, err := puzio.WriteAcrossLite(p)
	if err != nil {
		return repository.Puzzle{}, fmt.Errorf("encode puz: %w", err)
	}
	state, err := puzio.Marshal(p)
	if err != nil {
		return repository.Puzzle{}, fmt.Errorf("encode state: %w", err)
	}
	row := repository.Puzzle{
		ID:              p.ID(),
		Title:           p.Title,
		Author:          p.Author,
		Source:          p.Source,
		Width:           p.Width(),
		Height:          p.Height(),
		PercentComplete: p.PercentComplete,
		PercentFilled:   p.PercentFilled,
		ElapsedMS:       p.Time.Milliseconds(),
		Puz:             data,
		State:           state,
	}
	if !p.Date.IsZero() {
		d := p.Date
		row.Date = &d
	}
	return row, nil
}
