// Package encoding normalizes uploaded spreadsheet exports to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

type byteOrderMark struct {
	prefix []byte
	enc    xenc.Encoding // nil means strip and pass through
}

var boms = []byteOrderMark{
	{prefix: []byte{0xEF, 0xBB, 0xBF}},
	{prefix: []byte{0xFF, 0xFE}, enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{prefix: []byte{0xFE, 0xFF}, enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// charsets maps chardet names to decoders for the encodings Japanese
// household-ledger exports use.
var charsets = map[string]xenc.Encoding{
	"Shift_JIS":   japanese.ShiftJIS,
	"EUC-JP":      japanese.EUCJP,
	"ISO-2022-JP": japanese.ISO2022JP,
}

// Excel on Japanese Windows writes CP932.
var fallback xenc.Encoding = japanese.ShiftJIS

// NewUTF8Reader returns a reader that yields r's content as UTF-8. A UTF-8 BOM
// is stripped, UTF-16 is decoded by its BOM, valid UTF-8 passes through and
// anything else is decoded as the charset chardet reports, or Shift_JIS.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	sample, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(sample, bom.prefix) {
			continue
		}

		if bom.enc == nil {
			_, _ = br.Discard(len(bom.prefix))
			return br, nil
		}

		return transform.NewReader(br, bom.enc.NewDecoder()), nil
	}

	enc := Detect(sample, len(sample) == sniffLen)
	if enc == nil {
		return br, nil
	}

	return transform.NewReader(br, enc.NewDecoder()), nil
}

// Detect guesses the encoding of sample. It returns nil for UTF-8. truncated
// reports that sample was cut from a longer input, so a split trailing rune is
// not held against UTF-8.
func Detect(sample []byte, truncated bool) xenc.Encoding {
	if truncated {
		sample = trimPartialRune(sample)
	}

	if utf8.Valid(sample) {
		return nil
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return fallback
	}

	if result.Charset == "UTF-8" {
		return nil
	}

	if enc, ok := charsets[result.Charset]; ok {
		return enc
	}

	return fallback
}

func trimPartialRune(b []byte) []byte {
	// A UTF-8 sequence is at most utf8.UTFMax bytes long.
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}

			break
		}
	}

	return b
}
