package dataio

// reader.go cleans up raw text before it reaches the CSV parser.
//
// Survey exports arrive from spreadsheet tools and older SPSS setups:
//
//   - a UTF-8 byte order mark (0xEF 0xBB 0xBF) ahead of the header
//   - stray Latin-1 bytes that are not valid UTF-8
//
// newTextReader strips the first and replaces each invalid byte with '?', so the
// header aliases match and every cell is valid UTF-8 text.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// textReader yields BOM-free, valid UTF-8 text.
type textReader struct {
	src *bufio.Reader

	// Encoded bytes of a rune that did not fit the caller's buffer
	pending []byte
}

func newTextReader(r io.Reader) *textReader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return &textReader{src: br}
}

// Read implements io.Reader.
func (t *textReader) Read(p []byte) (int, error) {
	n := copy(p, t.pending)
	t.pending = t.pending[n:]

	var enc [utf8.UTFMax]byte
	for n < len(p) {
		// ASCII passes straight through.
		if b, err := t.src.Peek(1); err == nil && b[0] < utf8.RuneSelf {
			p[n] = b[0]
			n++
			_, _ = t.src.Discard(1)
			continue
		}

		r, size, err := t.src.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		if r == utf8.RuneError && size == 1 {
			r = '?'
		}
		m := utf8.EncodeRune(enc[:], r)
		c := copy(p[n:], enc[:m])
		n += c
		if c < m {
			t.pending = append(t.pending[:0], enc[c:m]...)
		}
	}
	return n, nil
}
