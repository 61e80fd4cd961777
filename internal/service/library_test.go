package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/puzboard/internal/database"
	"github.com/jask/puzboard/internal/fixture"
	"github.com/jask/puzboard/internal/playboard"
	"github.com/jask/puzboard/internal/puz"
	"github.com/jask/puzboard/internal/puzio"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrationsWithDB(db, migrations))
	return db
}

func samplePuz(t *testing.T) []byte {
	t.Helper()
	data, err := puzio.WriteAcrossLite(fixture.Sample())
	require.NoError(t, err)
	return data
}

func TestLibraryImportIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	lib := NewLibrary(newTestDB(t), nil)

	first, err := lib.Import(ctx, samplePuz(t), "unit")
	require.NoError(t, err)
	require.True(t, first.Created)
	require.Equal(t, "Puzboard Sample", first.Title)

	second, err := lib.Import(ctx, samplePuz(t), "unit")
	require.NoError(t, err)
	require.False(t, second.Created)
	require.Equal(t, first.ID, second.ID)

	list, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "unit", list[0].Source)
	require.Equal(t, 5, list[0].Width)
}

func TestLibrarySaveAndReopen(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	lib := NewLibrary(newTestDB(t), nil)

	res, err := lib.Import(ctx, samplePuz(t), "")
	require.NoError(t, err)

	p, err := lib.Open(ctx, res.ID)
	require.NoError(t, err)
	b := playboard.New(p, playboard.WithResponder("ann"))
	for _, r := range "SLAB" {
		b.PlayLetter(r)
	}
	b.JumpToClue(3, false)
	b.PlayScratchLetter('Q')
	b.RevealLetter()
	p.Time = 42 * time.Second
	require.NoError(t, lib.Save(ctx, res.ID, p))

	again, err := lib.Open(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, 'B', again.BoxAt(puz.Position{Across: 3}).Response)
	require.Equal(t, "ann", again.BoxAt(puz.Position{Across: 3}).Responder)
	require.Equal(t, 42*time.Second, again.Time)
	require.Equal(t, p.Position, again.Position)
	require.False(t, again.Across)
	require.Equal(t, p.History(), again.History())
	require.Equal(t, puz.ClueID{Number: 3, Across: false}, again.History()[0])

	note := again.Note(3, false)
	require.NotNil(t, note)
	require.Equal(t, 'Q', note.ScratchLetter(0))

	revealed := again.BoxAt(puz.Position{Across: 2, Down: 1})
	require.True(t, revealed.Cheated)
	require.Equal(t, 'N', revealed.Response)

	// re-importing must not clobber progress
	_, err = lib.Import(ctx, samplePuz(t), "")
	require.NoError(t, err)
	kept, err := lib.Open(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, 'S', kept.BoxAt(puz.Position{}).Response)

	list, err := lib.List(ctx)
	require.NoError(t, err)
	require.Equal(t, p.PercentFilled, list[0].PercentFilled)
	require.Positive(t, list[0].PercentFilled)
	require.Equal(t, int64(42000), list[0].ElapsedMS)
}

func TestLibraryExportAndInfo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lib := NewLibrary(newTestDB(t), nil)
	res, err := lib.Import(ctx, samplePuz(t), "")
	require.NoError(t, err)

	p, err := lib.Open(ctx, res.ID)
	require.NoError(t, err)
	fixture.Fill(p, "SL")
	require.NoError(t, lib.Save(ctx, res.ID, p))

	data, err := lib.Export(ctx, res.ID)
	require.NoError(t, err)
	exported, err := puzio.ReadAcrossLite(data)
	require.NoError(t, err)
	require.Equal(t, 'L', exported.BoxAt(puz.Position{Across: 1}).Response)
	require.Equal(t, res.ID, exported.ID())

	meta, version, err := lib.Info(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, puzio.CurrentVersion, version)
	require.Equal(t, "Puzboard Sample", meta.Title)
	require.Equal(t, 10, meta.PercentFilled)
}

func TestLibraryResolveAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lib := NewLibrary(newTestDB(t), nil)
	res, err := lib.Import(ctx, samplePuz(t), "")
	require.NoError(t, err)

	id, err := lib.Resolve(ctx, res.ID[:8])
	require.NoError(t, err)
	require.Equal(t, res.ID, id)

	_, err = lib.Resolve(ctx, "zzzz")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, lib.Delete(ctx, res.ID))
	require.ErrorIs(t, lib.Delete(ctx, res.ID), ErrNotFound)
	_, err = lib.Open(ctx, res.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, lib.Save(ctx, res.ID, fixture.Sample()), ErrNotFound)
}

func TestLibraryImportRejectsGarbage(t *testing.T) {
	t.Parallel()

	lib := NewLibrary(newTestDB(t), nil)
	_, err := lib.Import(context.Background(), []byte("not a puzzle"), "")
	require.ErrorIs(t, err, puzio.ErrDecode)
}

func TestMaintenanceReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	lib := NewLibrary(db, nil)
	res, err := lib.Import(ctx, samplePuz(t), "")
	require.NoError(t, err)
	p, err := lib.Open(ctx, res.ID)
	require.NoError(t, err)
	p.SetNote(1, true, &puz.Note{Text: "check"})
	require.NoError(t, lib.Save(ctx, res.ID, p))

	svc := &MaintenanceService{DB: db}
	require.NoError(t, svc.Reset(ctx))

	list, err := lib.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	var notes int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes").Scan(&notes))
	require.Zero(t, notes)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
