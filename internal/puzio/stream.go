package puzio

import (
	"encoding/binary"
	"errors"
	"io"
)

// decoder reads big-endian primitives and keeps the first error.
type decoder struct {
	r   io.Reader
	buf [8]byte
	err error
}

func (d *decoder) read(n int) []byte {
	if d.err != nil {
		return d.buf[:n]
	}
	if _, err := io.ReadFull(d.r, d.buf[:n]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		d.err = err
	}
	return d.buf[:n]
}

func (d *decoder) byte() byte { return d.read(1)[0] }

// bool is true for any non-zero byte.
func (d *decoder) bool() bool { return d.byte() != 0 }

// flag is true only for the byte 1.
func (d *decoder) flag() bool { return d.byte() == 1 }

func (d *decoder) int32() int32 { return int32(binary.BigEndian.Uint32(d.read(4))) }

func (d *decoder) int64() int64 { return int64(binary.BigEndian.Uint64(d.read(8))) }

// string reads a NUL-terminated ISO-8859-1 string.
func (d *decoder) string() string {
	var out []byte
	for {
		b := d.byte()
		if d.err != nil {
			return ""
		}
		if b == 0 {
			return decodeText(out)
		}
		out = append(out, b)
	}
}

type encoder struct {
	w   io.Writer
	buf [8]byte
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) byte(b byte) {
	e.buf[0] = b
	e.write(e.buf[:1])
}

func (e *encoder) bool(v bool) {
	if v {
		e.byte(1)
		return
	}
	e.byte(0)
}

// flag writes 1 for true and 0xFF for false.
func (e *encoder) flag(v bool) {
	if v {
		e.byte(1)
		return
	}
	e.byte(0xFF)
}

func (e *encoder) int32(v int32) {
	binary.BigEndian.PutUint32(e.buf[:4], uint32(v))
	e.write(e.buf[:4])
}

func (e *encoder) int64(v int64) {
	binary.BigEndian.PutUint64(e.buf[:8], uint64(v))
	e.write(e.buf[:8])
}

func (e *encoder) string(s string) {
	e.write(encodeText(s))
	e.byte(0)
}
