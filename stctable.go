package stctable

import (
	"errors"
	"fmt"
)

// Number of records between jump-table anchors.
const jumpInterval = 100

// Decode errors. Wrapped errors carry byte offsets and lengths; match with
// errors.Is.
var (
	// ErrTruncated is returned when the buffer is shorter than a read requires.
	ErrTruncated = errors.New("stctable: truncated buffer")

	// ErrUnknownColumnType is returned for type codes outside 1..11.
	ErrUnknownColumnType = errors.New("stctable: unknown column type")

	// ErrMalformedHeader is returned for structural violations in the header
	// or jump table.
	ErrMalformedHeader = errors.New("stctable: malformed header")

	// ErrRowCountMismatch is returned when fewer records can be decoded than
	// the header declares.
	ErrRowCountMismatch = errors.New("stctable: row count mismatch")

	// ErrInvalidStringEncoding is returned when a string cell holds invalid
	// UTF-8.
	ErrInvalidStringEncoding = errors.New("stctable: invalid string encoding")
)

// --------------------------------------------------------------------

// ColumnType identifies the wire type of a single column.
type ColumnType uint8

// Column type codes as stored in the header.
const (
	TypeI8 ColumnType = iota + 1
	TypeU8
	TypeI16
	TypeU16
	TypeI32
	TypeU32
	TypeI64
	TypeU64
	TypeF32
	TypeF64
	TypeString
)

func (t ColumnType) isValid() bool {
	return t >= TypeI8 && t <= TypeString
}

// Width returns the fixed byte width of the type, or 0 for the
// variable-width string type.
func (t ColumnType) Width() int {
	switch t {
	case TypeI8, TypeU8:
		return 1
	case TypeI16, TypeU16:
		return 2
	case TypeI32, TypeU32, TypeF32:
		return 4
	case TypeI64, TypeU64, TypeF64:
		return 8
	default:
		return 0
	}
}

func (t ColumnType) String() string {
	switch t {
	case TypeI8:
		return "i8"
	case TypeU8:
		return "u8"
	case TypeI16:
		return "i16"
	case TypeU16:
		return "u16"
	case TypeI32:
		return "i32"
	case TypeU32:
		return "u32"
	case TypeI64:
		return "i64"
	case TypeU64:
		return "u64"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	case TypeString:
		return "string"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}
