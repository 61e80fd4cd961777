// Package puzio reads and writes puzzles: the versioned solve-state codec kept
// beside a puzzle, and the Across Lite .puz format.
package puzio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jask/puzboard/internal/puz"
)

var (
	// ErrDecode marks truncated or malformed input.
	ErrDecode = errors.New("puzio: decode failed")
	// ErrUnsupportedVersion marks a solve-state revision this build cannot read
	// or write. Read failures wrap ErrDecode as well.
	ErrUnsupportedVersion = errors.New("puzio: unsupported version")
)

type VersionError struct {
	Version int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("puzio: unsupported version %d", e.Version)
}

func (e *VersionError) Is(target error) bool { return target == ErrUnsupportedVersion }

// Write encodes the solve state of p at CurrentVersion.
func Write(w io.Writer, p *puz.Puzzle) error {
	return WriteVersion(w, p, CurrentVersion)
}

// WriteVersion encodes the solve state of p in the given revision. Output may be
// partial when an error is returned.
func WriteVersion(w io.Writer, p *puz.Puzzle, version int) error {
	s, err := schemaFor(version)
	if err != nil {
		return err
	}
	e := &encoder{w: w}
	e.byte(byte(version))
	for _, f := range s.header {
		f.write(e, &p.Meta)
	}
	for _, box := range cells(p) {
		c := cellState{cheated: box.Cheated, responder: box.Responder}
		for _, f := range s.cell {
			f.write(e, &c)
		}
	}
	for _, f := range s.trailer {
		f.write(e, &p.Meta)
	}
	if e.err != nil {
		return fmt.Errorf("write solve state: %w", e.err)
	}
	return nil
}

// ReadMeta decodes only the header of a solve-state stream.
func ReadMeta(r io.Reader) (puz.Meta, int, error) {
	d := &decoder{r: r}
	version := int(d.byte())
	if d.err != nil {
		return puz.Meta{}, 0, fmt.Errorf("%w: %v", ErrDecode, d.err)
	}
	s, err := schemaFor(version)
	if err != nil {
		return puz.Meta{}, version, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	var m puz.Meta
	for _, f := range s.header {
		f.read(d, &m)
	}
	if d.err != nil {
		return puz.Meta{}, version, fmt.Errorf("%w: header: %v", ErrDecode, d.err)
	}
	return m, version, nil
}

// Read decodes a solve-state stream onto p. The grid layout must match the one
// the stream was written from. p is left untouched on error. Fields missing from
// older revisions keep their current values.
func Read(r io.Reader, p *puz.Puzzle) error {
	d := &decoder{r: r}
	version := int(d.byte())
	if d.err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, d.err)
	}
	s, err := schemaFor(version)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	meta := p.Meta
	for _, f := range s.header {
		f.read(d, &meta)
	}
	boxes := cells(p)
	states := make([]cellState, len(boxes))
	for i, box := range boxes {
		states[i] = cellState{cheated: box.Cheated, responder: box.Responder}
		for _, f := range s.cell {
			f.read(d, &states[i])
		}
	}
	for _, f := range s.trailer {
		f.read(d, &meta)
	}
	if d.err != nil {
		return fmt.Errorf("%w: version %d: %v", ErrDecode, version, d.err)
	}

	p.Meta = meta
	for i, box := range boxes {
		box.Cheated = states[i].cheated
		box.Responder = states[i].responder
	}
	return nil
}

// Marshal returns the current-version encoding of the solve state of p.
func Marshal(p *puz.Puzzle) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Unmarshal(data []byte, p *puz.Puzzle) error {
	return Read(bytes.NewReader(data), p)
}

// cells lists present boxes in row-major order.
func cells(p *puz.Puzzle) []*puz.Box {
	var out []*puz.Box
	for _, row := range p.Boxes() {
		for _, b := range row {
			if b != nil {
				out = append(out, b)
			}
		}
	}
	return out
}
