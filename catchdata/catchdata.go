// Package catchdata decodes the catchdata.dat log archive: an XOR stream
// cipher over a gzip stream of newline-separated JSON records.
package catchdata

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// DefaultKey is the cipher key used by the production archives.
var DefaultKey = []byte("c88d016d261eb80ce4d6e41a510d4048")

var (
	// ErrEmptyKey is returned when no cipher key is given.
	ErrEmptyKey = errors.New("catchdata: empty cipher key")

	// ErrDecompress is returned for a corrupt compressed payload.
	ErrDecompress = errors.New("catchdata: corrupt compressed payload")

	// ErrMalformedRecord is returned for a single unparsable record. It
	// never aborts the scan; the remaining records stay readable.
	ErrMalformedRecord = errors.New("catchdata: malformed record")
)

// XOR applies the repeating key to data in place and returns data. The
// operation is self-inverse: applying it twice restores the input.
func XOR(data, key []byte) []byte {
	for i := range data {
		data[i] ^= key[i%len(key)]
	}
	return data
}

// Decode decrypts and inflates raw, returning a scanner over the contained
// records. It is a pure function of raw and key; raw is never modified and
// may be decoded again to restart the scan.
func Decode(raw, key []byte) (*Scanner, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	buf := XOR(append([]byte(nil), raw...), key)

	zr, err := gzip.NewReader(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}

	return &Scanner{lines: bytes.Split(plain, []byte{'\n'})}, nil
}

// Scanner iterates the decoded archive record by record, in original line
// order. Decode failures are per record; Next keeps going.
type Scanner struct {
	lines [][]byte
	line  int
	cur   []byte
}

// Next advances to the next record and returns true if one is available.
// Blank lines, including the trailing one, are skipped.
func (s *Scanner) Next() bool {
	for len(s.lines) > 0 {
		// lines after the first carry leading padding
		line := bytes.TrimSpace(s.lines[0])
		s.lines = s.lines[1:]
		s.line++

		if len(line) != 0 {
			s.cur = line
			return true
		}
	}
	return false
}

// Line returns the 1-based line number of the current record.
func (s *Scanner) Line() int { return s.line }

// Bytes returns the raw JSON of the current record.
func (s *Scanner) Bytes() []byte { return s.cur }

// Decode unmarshals the current record into v. A failure is scoped to this
// record and reported as ErrMalformedRecord.
func (s *Scanner) Decode(v any) error {
	if err := json.Unmarshal(s.cur, v); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, s.line, err)
	}
	return nil
}
