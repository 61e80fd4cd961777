package puzio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jask/puzboard/internal/puz"
)

// ErrScrambled is returned for .puz files whose solution is locked.
var ErrScrambled = errors.New("puzio: scrambled solution")

const (
	puzMagic     = "ACROSS&DOWN\x00"
	puzHeaderLen = 0x34
	puzVersion   = "1.3\x00"

	offOverallSum  = 0x00
	offMagic       = 0x02
	offCIBSum      = 0x0E
	offMaskedLow   = 0x10
	offMaskedHigh  = 0x14
	offVersion     = 0x18
	offWidth       = 0x2C
	offHeight      = 0x2D
	offNumClues    = 0x2E
	offBitmask     = 0x30
	offScrambled   = 0x32
	puzBlackSquare = '.'
	puzEmptySquare = '-'
	gextCircled    = 0x80
)

// ReadAcrossLite parses an Across Lite .puz file. Checksums are not verified.
func ReadAcrossLite(data []byte) (*puz.Puzzle, error) {
	if len(data) < puzHeaderLen {
		return nil, fmt.Errorf("%w: short header", ErrDecode)
	}
	if string(data[offMagic:offMagic+len(puzMagic)]) != puzMagic {
		return nil, fmt.Errorf("%w: not an Across Lite file", ErrDecode)
	}
	width := int(data[offWidth])
	height := int(data[offHeight])
	numClues := int(binary.LittleEndian.Uint16(data[offNumClues:]))
	if binary.LittleEndian.Uint16(data[offScrambled:]) != 0 {
		return nil, ErrScrambled
	}

	n := width * height
	ofs := puzHeaderLen
	if len(data) < ofs+2*n {
		return nil, fmt.Errorf("%w: grid truncated", ErrDecode)
	}
	solution := data[ofs : ofs+n]
	fill := data[ofs+n : ofs+2*n]
	ofs += 2 * n

	next := func() (string, error) {
		end := bytes.IndexByte(data[ofs:], 0)
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated string", ErrDecode)
		}
		s := decodeText(data[ofs : ofs+end])
		ofs += end + 1
		return s, nil
	}

	title, err := next()
	if err != nil {
		return nil, err
	}
	author, err := next()
	if err != nil {
		return nil, err
	}
	copyright, err := next()
	if err != nil {
		return nil, err
	}
	texts := make([]string, numClues)
	for i := range texts {
		if texts[i], err = next(); err != nil {
			return nil, err
		}
	}
	// the notepad is optional in files older than 1.3
	notepad, _ := next()

	circles := readGEXT(data[ofs:], n)

	boxes := make([][]*puz.Box, height)
	for r := range boxes {
		boxes[r] = make([]*puz.Box, width)
		for c := range boxes[r] {
			i := r*width + c
			if solution[i] == puzBlackSquare {
				continue
			}
			b := puz.NewBox(decodeRune(solution[i]))
			if f := fill[i]; f != puzEmptySquare && f != puzBlackSquare {
				b.Response = decodeRune(f)
			}
			b.Circled = circles != nil && circles[i]&gextCircled != 0
			boxes[r][c] = b
		}
	}

	acrossNums, downNums := puz.Number(boxes)
	if len(acrossNums)+len(downNums) != numClues {
		return nil, fmt.Errorf("%w: grid has %d words but file has %d clues",
			ErrDecode, len(acrossNums)+len(downNums), numClues)
	}
	var across, down []puz.Clue
	for _, id := range clueOrder(acrossNums, downNums) {
		c := puz.Clue{Number: id.Number, Across: id.Across, Text: texts[0]}
		texts = texts[1:]
		if id.Across {
			across = append(across, c)
		} else {
			down = append(down, c)
		}
	}

	p := puz.New(boxes, across, down)
	p.Title = title
	p.Author = author
	p.Copyright = copyright
	p.Notepad = notepad
	return p, nil
}

// readGEXT scans the extra sections for the grid markup table.
func readGEXT(data []byte, n int) []byte {
	for len(data) >= 8 {
		name := string(data[:4])
		size := int(binary.LittleEndian.Uint16(data[4:6]))
		if len(data) < 8+size {
			return nil
		}
		if name == "GEXT" && size == n {
			return data[8 : 8+size]
		}
		data = data[8+size:]
		if len(data) > 0 && data[0] == 0 {
			data = data[1:]
		}
	}
	return nil
}

// clueOrder interleaves clue ids the way .puz stores texts: by number, across
// before down.
func clueOrder(across, down []int) []puz.ClueID {
	out := make([]puz.ClueID, 0, len(across)+len(down))
	i, j := 0, 0
	for i < len(across) || j < len(down) {
		if j >= len(down) || (i < len(across) && across[i] <= down[j]) {
			out = append(out, puz.ClueID{Number: across[i], Across: true})
			i++
			continue
		}
		out = append(out, puz.ClueID{Number: down[j], Across: false})
		j++
	}
	return out
}

// WriteAcrossLite encodes p as an Across Lite 1.3 file with valid checksums.
func WriteAcrossLite(p *puz.Puzzle) ([]byte, error) {
	width, height := p.Width(), p.Height()
	if width > 0xFF || height > 0xFF {
		return nil, fmt.Errorf("puzio: grid %dx%d too large for .puz", width, height)
	}

	n := width * height
	solution := make([]byte, n)
	fill := make([]byte, n)
	gext := make([]byte, n)
	circled := false
	for r, row := range p.Boxes() {
		for c, b := range row {
			i := r*width + c
			if b == nil {
				solution[i], fill[i] = puzBlackSquare, puzBlackSquare
				continue
			}
			solution[i] = encodeRune(b.Solution)
			fill[i] = puzEmptySquare
			if !b.IsBlank() {
				fill[i] = encodeRune(b.Response)
			}
			if b.Circled {
				gext[i] = gextCircled
				circled = true
			}
		}
	}

	acrossNums, downNums := clueNumbers(p)
	var texts []string
	for _, id := range clueOrder(acrossNums, downNums) {
		c, _ := p.Clues(id.Across).Get(id.Number)
		texts = append(texts, c.Text)
	}

	header := make([]byte, puzHeaderLen)
	copy(header[offMagic:], puzMagic)
	copy(header[offVersion:], puzVersion)
	header[offWidth] = byte(width)
	header[offHeight] = byte(height)
	binary.LittleEndian.PutUint16(header[offNumClues:], uint16(len(texts)))
	binary.LittleEndian.PutUint16(header[offBitmask:], 0x0001)

	title := encodeText(p.Title)
	author := encodeText(p.Author)
	copyright := encodeText(p.Copyright)
	notepad := encodeText(p.Notepad)
	encoded := make([][]byte, len(texts))
	for i, t := range texts {
		encoded[i] = encodeText(t)
	}

	cib := checksumRegion(header[offWidth:offWidth+8], 0)
	binary.LittleEndian.PutUint16(header[offCIBSum:], cib)

	sol := checksumRegion(solution, 0)
	grid := checksumRegion(fill, 0)
	part := stringsChecksum(title, author, copyright, encoded, notepad, 0)

	overall := checksumRegion(solution, cib)
	overall = checksumRegion(fill, overall)
	overall = stringsChecksum(title, author, copyright, encoded, notepad, overall)
	binary.LittleEndian.PutUint16(header[offOverallSum:], overall)

	mask := "ICHEATED"
	sums := [4]uint16{cib, sol, grid, part}
	for i := 0; i < 4; i++ {
		header[offMaskedLow+i] = mask[i] ^ byte(sums[i])
		header[offMaskedHigh+i] = mask[i+4] ^ byte(sums[i]>>8)
	}

	var buf bytes.Buffer
	buf.Write(header)
	buf.Write(solution)
	buf.Write(fill)
	for _, s := range [][]byte{title, author, copyright} {
		buf.Write(s)
		buf.WriteByte(0)
	}
	for _, s := range encoded {
		buf.Write(s)
		buf.WriteByte(0)
	}
	buf.Write(notepad)
	buf.WriteByte(0)

	if circled {
		var section [8]byte
		copy(section[:4], "GEXT")
		binary.LittleEndian.PutUint16(section[4:6], uint16(n))
		binary.LittleEndian.PutUint16(section[6:8], checksumRegion(gext, 0))
		buf.Write(section[:])
		buf.Write(gext)
		buf.WriteByte(0)
	}
	return buf.Bytes(), nil
}

// clueNumbers lists the word-start numbers of the grid per direction.
func clueNumbers(p *puz.Puzzle) (across, down []int) {
	for _, row := range p.Boxes() {
		for _, b := range row {
			if b == nil {
				continue
			}
			if b.StartsAcross {
				across = append(across, b.ClueNumber)
			}
			if b.StartsDown {
				down = append(down, b.ClueNumber)
			}
		}
	}
	return across, down
}

func checksumRegion(data []byte, sum uint16) uint16 {
	for _, b := range data {
		if sum&1 != 0 {
			sum = sum>>1 + 0x8000
		} else {
			sum >>= 1
		}
		sum += uint16(b)
	}
	return sum
}

func stringsChecksum(title, author, copyright []byte, clues [][]byte, notepad []byte, sum uint16) uint16 {
	withNUL := func(b []byte) []byte { return append(append([]byte(nil), b...), 0) }
	for _, s := range [][]byte{title, author, copyright} {
		if len(s) > 0 {
			sum = checksumRegion(withNUL(s), sum)
		}
	}
	for _, c := range clues {
		sum = checksumRegion(c, sum)
	}
	if len(notepad) > 0 {
		sum = checksumRegion(withNUL(notepad), sum)
	}
	return sum
}
