package stctable

import (
	"errors"
	"fmt"
	"sort"
)

// JumpEntry anchors every 100th record of a table for random access.
type JumpEntry struct {
	ID     int32  // ordinal of the anchored record
	Offset uint32 // byte offset of the record, relative to the data section
}

// Reader decodes a single .stc table. It parses the header and jump table
// up front and walks the record data on demand. The reader borrows the
// buffer for its lifetime and never copies or mutates it.
type Reader struct {
	buf  []byte
	id   uint16
	lbl  uint16
	rows int
	cols []ColumnType
	jump []JumpEntry
	data int // absolute offset of the data section
}

// NewReader parses the header and jump table of buf.
func NewReader(buf []byte) (*Reader, error) {
	cur := NewCursor(buf)

	id, err := cur.ReadU16()
	if err != nil {
		return nil, headerErr(err)
	}
	lbl, err := cur.ReadU16()
	if err != nil {
		return nil, headerErr(err)
	}
	rows, err := cur.ReadU16()
	if err != nil {
		return nil, headerErr(err)
	}
	ncols, err := cur.ReadU8()
	if err != nil {
		return nil, headerErr(err)
	}
	raw, err := cur.ReadBytes(int(ncols))
	if err != nil {
		return nil, headerErr(err)
	}

	cols := make([]ColumnType, len(raw))
	for i, code := range raw {
		t := ColumnType(code)
		if !t.isValid() {
			return nil, fmt.Errorf("%w: %w: code %d in column %d", ErrMalformedHeader, ErrUnknownColumnType, code, i)
		}
		cols[i] = t
	}

	// The jump table length is not stored, it is derived from the row count.
	// Validate it against the remaining buffer before allocating.
	n := jumpEntryCount(int(rows))
	if need := n * 8; cur.Remaining() < need {
		return nil, fmt.Errorf("%w: jump table needs %d bytes at offset %d, have %d", ErrTruncated, need, cur.Pos(), cur.Remaining())
	}

	jump := make([]JumpEntry, n)
	for i := range jump {
		rid, _ := cur.ReadI32() // bounds checked above
		off, _ := cur.ReadU32()
		jump[i] = JumpEntry{ID: rid, Offset: off}
	}
	if jump[0].ID != 0 {
		return nil, fmt.Errorf("%w: jump table must anchor record 0, got %d", ErrMalformedHeader, jump[0].ID)
	}
	for i := 1; i < len(jump); i++ {
		if jump[i].ID <= jump[i-1].ID || jump[i].Offset <= jump[i-1].Offset {
			return nil, fmt.Errorf("%w: jump table not strictly increasing at entry %d", ErrMalformedHeader, i)
		}
	}

	return &Reader{
		buf:  buf,
		id:   id,
		lbl:  lbl,
		rows: int(rows),
		cols: cols,
		jump: jump,
		data: cur.Pos(),
	}, nil
}

// TableID returns the numeric table id from the header. By convention it
// matches the filename stem, but the format does not enforce that.
func (r *Reader) TableID() uint16 { return r.id }

// LastBlockLen returns the size of the final 64KiB archive chunk as recorded
// in the header. Informational only.
func (r *Reader) LastBlockLen() uint16 { return r.lbl }

// NumRows returns the declared record count.
func (r *Reader) NumRows() int { return r.rows }

// NumColumns returns the number of columns per record.
func (r *Reader) NumColumns() int { return len(r.cols) }

// Columns returns the column types in record order.
func (r *Reader) Columns() []ColumnType {
	return append([]ColumnType(nil), r.cols...)
}

// JumpTable returns the decoded jump entries.
func (r *Reader) JumpTable() []JumpEntry {
	return append([]JumpEntry(nil), r.jump...)
}

// Iter returns an iterator over all records, starting at record 0.
func (r *Reader) Iter() *Iterator {
	it := &Iterator{r: r, cur: NewCursor(r.buf)}
	_ = it.cur.Seek(r.data)
	return it
}

// Seek returns an iterator positioned at record n. It binary-searches the
// jump table for the greatest anchor at or before n, then skips whole
// records without materializing them until n is reached.
func (r *Reader) Seek(n int) (*Iterator, error) {
	if n < 0 || n >= r.rows {
		return nil, fmt.Errorf("stctable: record %d out of range, table has %d", n, r.rows)
	}

	i := sort.Search(len(r.jump), func(i int) bool {
		return int(r.jump[i].ID) > n
	}) - 1
	ent := r.jump[i]

	it := &Iterator{r: r, cur: NewCursor(r.buf), next: int(ent.ID)}
	if err := it.cur.Seek(r.data + int(ent.Offset)); err != nil {
		return nil, err
	}
	for it.next < n {
		if err := it.skip(); err != nil {
			return nil, err
		}
	}
	return it, nil
}

// Row decodes the n-th record via the jump table.
func (r *Reader) Row(n int) (Row, error) {
	it, err := r.Seek(n)
	if err != nil {
		return nil, err
	}
	if !it.Next() {
		return nil, it.Err()
	}
	return it.Row(), nil
}

func headerErr(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformedHeader, err)
}

func jumpEntryCount(rows int) int {
	if n := (rows + jumpInterval - 1) / jumpInterval; n > 1 {
		return n
	}
	return 1
}

// --------------------------------------------------------------------

// Iterator walks the record data one record at a time. It yields exactly
// NumRows records; a buffer that runs out earlier fails with
// ErrRowCountMismatch rather than truncating the sequence.
type Iterator struct {
	r    *Reader
	cur  *Cursor
	next int // ordinal of the record the cursor is positioned at
	row  Row
	err  error
}

// More returns true if records remain and no error has occurred.
func (it *Iterator) More() bool {
	return it.err == nil && it.next < it.r.rows
}

// Next decodes the next record and returns true if successful.
func (it *Iterator) Next() bool {
	if !it.More() {
		return false
	}

	row := make(Row, len(it.r.cols))
	for i, t := range it.r.cols {
		v, err := readValue(it.cur, t)
		if err != nil {
			it.err = it.fail(err)
			return false
		}
		row[i] = v
	}
	it.row = row
	it.next++
	return true
}

// Row returns the record decoded by the last successful Next.
func (it *Iterator) Row() Row { return it.row }

// Pos returns the ordinal of the record returned by the last Next.
func (it *Iterator) Pos() int { return it.next - 1 }

// Err exposes iterator errors, if any.
func (it *Iterator) Err() error { return it.err }

// skip advances past one record without materializing it.
func (it *Iterator) skip() error {
	for _, t := range it.r.cols {
		if err := skipValue(it.cur, t); err != nil {
			return it.fail(err)
		}
	}
	it.next++
	return nil
}

func (it *Iterator) fail(err error) error {
	if errors.Is(err, ErrTruncated) {
		return fmt.Errorf("%w: %d of %d records decoded: %w", ErrRowCountMismatch, it.next, it.r.rows, err)
	}
	return err
}
