// Package encoding normalises uploaded CSV exports to UTF-8. Quebec grocery
// and bank exports are frequently produced in Windows-1252 or ISO-8859-15,
// which would otherwise break accent-sensitive matching (EPICERIE, Dépôt).
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ToUTF8 wraps r so that reads yield UTF-8.
//
// Order of checks:
//  1. byte order mark (UTF-8 BOM is dropped, UTF-16 is decoded)
//  2. already valid UTF-8, ignoring a rune cut by the sniff window
//  3. chardet guess for the Latin family, or UTF-8
//  4. Windows-1252
func ToUTF8(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(head, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(head, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	sample := head
	if len(head) == sniffSize {
		sample = trimPartialRune(head)
	}

	if utf8.Valid(sample) {
		return br, nil
	}

	enc := guess(sample)
	if enc == nil {
		return br, nil
	}

	return decode(br, enc), nil
}

// trimPartialRune drops a multi-byte rune cut off by the end of b.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		start := len(b) - i
		if !utf8.RuneStart(b[start]) {
			continue
		}

		if !utf8.FullRune(b[start:]) {
			return b[:start]
		}

		return b
	}

	return b
}

// guess picks a decoder for sample. A nil result means the input is UTF-8.
func guess(sample []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "UTF-8":
		return nil
	case "ISO-8859-15":
		return charmap.ISO8859_15
	case "ISO-8859-9":
		return charmap.ISO8859_9
	default:
		return charmap.Windows1252
	}
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}
