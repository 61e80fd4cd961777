package puzio

import (
	"bytes"
	"testing"
	"time"

	"github.com/jask/puzboard/internal/fixture"
	"github.com/jask/puzboard/internal/puz"
	"github.com/stretchr/testify/require"
)

func TestWriteLayout(t *testing.T) {
	p := fixture.Build("AB")
	p.Author = "a"
	p.Title = "t"
	p.PercentComplete = 50
	p.PercentFilled = 50
	p.Position = puz.Position{Across: 1}
	p.Across = true
	p.Time = 1500 * time.Millisecond
	p.BoxAt(puz.Position{}).Cheated = true
	p.BoxAt(puz.Position{}).Responder = "x"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))

	want := []byte{
		4,
		'a', 0,
		0,
		't', 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 50,
		0, 0, 0, 50,
		0xFF,
		0,
		0, 0, 0, 1,
		0, 0, 0, 0,
		1,
		1, 'x', 0,
		0, 0,
		0, 0, 0, 0, 0, 0, 0x05, 0xDC,
	}
	require.Equal(t, want, buf.Bytes())
}

func samplePuzzle() *puz.Puzzle {
	p := fixture.Sample()
	p.Source = "Daily Café"
	p.SourceURL = "https://example.com/puz"
	p.Date = time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	p.PercentComplete = 12
	p.PercentFilled = 40
	p.Updatable = true
	p.Position = puz.Position{Across: 2, Down: 3}
	p.Across = false
	p.Time = 93 * time.Second

	fixture.Fill(p, "SL---", "-----", "-----", "-----", "-----")
	first := p.BoxAt(puz.Position{})
	first.Cheated = true
	first.Responder = "ann"
	p.BoxAt(puz.Position{Across: 1}).Responder = "bo"
	return p
}

func TestRoundTripCurrentVersion(t *testing.T) {
	src := samplePuzzle()
	data, err := Marshal(src)
	require.NoError(t, err)

	dst := fixture.Sample()
	require.NoError(t, Unmarshal(data, dst))

	require.Equal(t, src.Meta.Source, dst.Source)
	require.Equal(t, src.SourceURL, dst.SourceURL)
	require.True(t, src.Date.Equal(dst.Date))
	require.Equal(t, 12, dst.PercentComplete)
	require.Equal(t, 40, dst.PercentFilled)
	require.True(t, dst.Updatable)
	require.Equal(t, puz.Position{Across: 2, Down: 3}, dst.Position)
	require.False(t, dst.Across)
	require.Equal(t, 93*time.Second, dst.Time)

	first := dst.BoxAt(puz.Position{})
	require.True(t, first.Cheated)
	require.Equal(t, "ann", first.Responder)
	require.Equal(t, "bo", dst.BoxAt(puz.Position{Across: 1}).Responder)
	require.False(t, dst.BoxAt(puz.Position{Across: 2}).Cheated)
}

func TestOlderVersionsRoundTrip(t *testing.T) {
	for version := 1; version <= CurrentVersion; version++ {
		src := samplePuzzle()
		var buf bytes.Buffer
		require.NoError(t, WriteVersion(&buf, src, version))

		dst := fixture.Sample()
		dst.PercentFilled = 77
		require.NoError(t, Read(bytes.NewReader(buf.Bytes()), dst), "version %d", version)

		require.Equal(t, src.Title, dst.Title)
		require.Equal(t, src.Time, dst.Time)
		require.True(t, dst.BoxAt(puz.Position{}).Cheated)

		if version >= 2 {
			require.Equal(t, "ann", dst.BoxAt(puz.Position{}).Responder)
			require.Equal(t, src.SourceURL, dst.SourceURL)
		} else {
			require.Empty(t, dst.BoxAt(puz.Position{}).Responder)
			require.Empty(t, dst.SourceURL)
		}
		if version >= 3 {
			require.Equal(t, src.Position, dst.Position)
		} else {
			require.Equal(t, puz.Position{}, dst.Position)
		}
		if version >= 4 {
			require.Equal(t, 40, dst.PercentFilled)
		} else {
			require.Equal(t, 77, dst.PercentFilled)
		}
	}
}

func TestReadMeta(t *testing.T) {
	data, err := Marshal(samplePuzzle())
	require.NoError(t, err)

	m, version, err := ReadMeta(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, CurrentVersion, version)
	require.Equal(t, "Puzboard Sample", m.Title)
	require.Equal(t, "Daily Café", m.Source)
	require.Equal(t, 40, m.PercentFilled)
	require.Zero(t, m.Time)
}

func TestReadTruncatedLeavesPuzzleUntouched(t *testing.T) {
	data, err := Marshal(samplePuzzle())
	require.NoError(t, err)

	for _, cut := range []int{0, 1, 10, len(data) - 1} {
		dst := fixture.Sample()
		dst.Title = "untouched"
		err := Unmarshal(data[:cut], dst)
		require.ErrorIs(t, err, ErrDecode, "cut at %d", cut)
		require.Equal(t, "untouched", dst.Title)
		require.False(t, dst.BoxAt(puz.Position{}).Cheated)
	}
}

func TestUnsupportedVersion(t *testing.T) {
	for _, v := range []byte{0, 5, 0xFF} {
		p := fixture.Sample()
		err := Unmarshal([]byte{v, 0, 0, 0}, p)
		require.ErrorIs(t, err, ErrUnsupportedVersion)
		require.ErrorIs(t, err, ErrDecode)
		var verr *VersionError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, int(v), verr.Version)
		require.Equal(t, fixture.Sample().Meta, p.Meta)

		_, rev, err := ReadMeta(bytes.NewReader([]byte{v}))
		require.ErrorIs(t, err, ErrDecode)
		require.ErrorIs(t, err, ErrUnsupportedVersion)
		require.Equal(t, int(v), rev)
	}
	require.ErrorIs(t, WriteVersion(&bytes.Buffer{}, fixture.Sample(), 9), ErrUnsupportedVersion)
}

func TestFlagBytes(t *testing.T) {
	p := fixture.Build("AB")
	data, err := Marshal(p)
	require.NoError(t, err)

	// version, author, source, title, date, two percentages
	updatable := 1 + 1 + 1 + 1 + 8 + 4 + 4
	require.Equal(t, byte(0xFF), data[updatable])

	for b, want := range map[byte]bool{0: false, 1: true, 2: false, 0xFF: false} {
		data[updatable] = b
		m, _, err := ReadMeta(bytes.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, want, m.Updatable, "byte %#x", b)
	}
}

func TestTextIsLatin1(t *testing.T) {
	require.Equal(t, []byte{'C', 'a', 'f', 0xE9}, encodeText("Café"))
	require.Equal(t, "Café", decodeText([]byte{'C', 'a', 'f', 0xE9}))
	require.Len(t, encodeText("a→b"), 3)
	require.Equal(t, []byte("ab"), encodeText("a\x00b"))
}
