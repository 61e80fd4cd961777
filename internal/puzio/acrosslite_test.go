package puzio

import (
	"encoding/binary"
	"testing"

	"github.com/jask/puzboard/internal/fixture"
	"github.com/jask/puzboard/internal/puz"
	"github.com/stretchr/testify/require"
)

func TestChecksumRegion(t *testing.T) {
	require.Equal(t, uint16(0x8002), checksumRegion([]byte{1, 2}, 0))
	require.Equal(t, uint16(0), checksumRegion(nil, 0))
}

func TestClueOrder(t *testing.T) {
	got := clueOrder([]int{1, 5, 7}, []int{1, 2, 3, 4, 6})
	require.Equal(t, []puz.ClueID{
		{Number: 1, Across: true},
		{Number: 1, Across: false},
		{Number: 2, Across: false},
		{Number: 3, Across: false},
		{Number: 4, Across: false},
		{Number: 5, Across: true},
		{Number: 6, Across: false},
		{Number: 7, Across: true},
	}, got)
}

func TestAcrossLiteRoundTrip(t *testing.T) {
	src := fixture.Sample()
	src.Notepad = "Théme notes"
	fixture.Fill(src, "SL---", "---EY", "-----", "-----", "-----")
	src.BoxAt(puz.Position{Across: 2, Down: 1}).Circled = true

	data, err := WriteAcrossLite(src)
	require.NoError(t, err)
	require.Equal(t, puzMagic, string(data[offMagic:offMagic+len(puzMagic)]))
	require.Equal(t, byte(5), data[offWidth])
	require.Equal(t, uint16(10), binary.LittleEndian.Uint16(data[offNumClues:]))

	dst, err := ReadAcrossLite(data)
	require.NoError(t, err)
	require.Equal(t, src.Title, dst.Title)
	require.Equal(t, src.Author, dst.Author)
	require.Equal(t, src.Copyright, dst.Copyright)
	require.Equal(t, "Théme notes", dst.Notepad)
	require.Equal(t, src.Clues(true).All(), dst.Clues(true).All())
	require.Equal(t, src.Clues(false).All(), dst.Clues(false).All())

	require.Nil(t, dst.BoxAt(puz.Position{Across: 4, Down: 0}))
	require.Equal(t, 'S', dst.BoxAt(puz.Position{}).Response)
	require.Equal(t, 'Y', dst.BoxAt(puz.Position{Across: 4, Down: 1}).Response)
	require.True(t, dst.BoxAt(puz.Position{Across: 2, Down: 1}).IsBlank())
	require.True(t, dst.BoxAt(puz.Position{Across: 2, Down: 1}).Circled)
	require.False(t, dst.BoxAt(puz.Position{Across: 1, Down: 1}).Circled)
	require.Equal(t, 'N', dst.BoxAt(puz.Position{Across: 2, Down: 1}).Solution)
}

func TestAcrossLiteChecksumsAreConsistent(t *testing.T) {
	data, err := WriteAcrossLite(fixture.Sample())
	require.NoError(t, err)

	cib := checksumRegion(data[offWidth:offWidth+8], 0)
	require.Equal(t, cib, binary.LittleEndian.Uint16(data[offCIBSum:]))

	n := 25
	solution := data[puzHeaderLen : puzHeaderLen+n]
	require.Equal(t, "SLAB.HONEYA.T.EMASON.T.N.", string(solution))

	mask := "ICHEATED"
	require.Equal(t, mask[0]^byte(cib), data[offMaskedLow])
	require.Equal(t, mask[4]^byte(cib>>8), data[offMaskedHigh])
	require.Equal(t, mask[1]^byte(checksumRegion(solution, 0)), data[offMaskedLow+1])
}

func TestReadAcrossLiteRejectsBadInput(t *testing.T) {
	_, err := ReadAcrossLite([]byte("short"))
	require.ErrorIs(t, err, ErrDecode)

	data, err := WriteAcrossLite(fixture.Sample())
	require.NoError(t, err)

	bad := append([]byte(nil), data...)
	bad[offMagic] = 'X'
	_, err = ReadAcrossLite(bad)
	require.ErrorIs(t, err, ErrDecode)

	_, err = ReadAcrossLite(data[:puzHeaderLen+30])
	require.ErrorIs(t, err, ErrDecode)

	scrambled := append([]byte(nil), data...)
	binary.LittleEndian.PutUint16(scrambled[offScrambled:], 4)
	_, err = ReadAcrossLite(scrambled)
	require.ErrorIs(t, err, ErrScrambled)

	wrongCount := append([]byte(nil), data...)
	binary.LittleEndian.PutUint16(wrongCount[offNumClues:], 3)
	_, err = ReadAcrossLite(wrongCount)
	require.ErrorIs(t, err, ErrDecode)
}
