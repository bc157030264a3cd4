package stctable

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Cursor is a bounds-checked little-endian reader over an immutable byte
// buffer. Reads advance the position by the width of the value; a read past
// the end of the buffer fails with ErrTruncated and leaves the position
// unchanged. The cursor borrows the buffer and never copies it.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf, positioned at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current absolute offset.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.buf) {
		return fmt.Errorf("%w: seek to offset %d in buffer of %d bytes", ErrTruncated, off, len(c.buf))
	}
	c.pos = off
	return nil
}

func (c *Cursor) take(n int) ([]byte, error) {
	if rem := len(c.buf) - c.pos; rem < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, c.pos, rem)
	}
	p := c.buf[c.pos : c.pos+n]
	c.pos += n
	return p, nil
}

// ReadBytes consumes the next n bytes. The returned slice aliases the
// underlying buffer and stays valid for its lifetime.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	return c.take(n)
}

func (c *Cursor) ReadU8() (uint8, error) {
	p, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

func (c *Cursor) ReadU16() (uint16, error) {
	p, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

func (c *Cursor) ReadU32() (uint32, error) {
	p, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

func (c *Cursor) ReadU64() (uint64, error) {
	p, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

func (c *Cursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}

func (c *Cursor) ReadF32() (float32, error) {
	v, err := c.ReadU32()
	return math.Float32frombits(v), err
}

func (c *Cursor) ReadF64() (float64, error) {
	v, err := c.ReadU64()
	return math.Float64frombits(v), err
}
