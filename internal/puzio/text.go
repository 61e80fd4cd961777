package puzio

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Text fields are stored as ISO-8859-1. Runes outside Latin-1 are replaced.
func encodeText(s string) []byte {
	s = strings.ReplaceAll(s, "\x00", "")
	b, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(strings.Map(func(r rune) rune {
			if r > 0xFF {
				return '?'
			}
			return r
		}, s))
	}
	return b
}

func decodeText(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

func encodeRune(r rune) byte {
	if b := encodeText(string(r)); len(b) == 1 {
		return b[0]
	}
	return '?'
}

func decodeRune(b byte) rune {
	return []rune(decodeText([]byte{b}))[0]
}
