package stctable

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// Value is a single decoded cell. Numeric kinds store their raw bits,
// sign-extended for the signed ones; the typed accessors return the native
// value and report whether the cell actually has that type.
type Value struct {
	typ   ColumnType
	num   uint64
	str   string
	ascii bool
}

// Type returns the column type of the cell.
func (v Value) Type() ColumnType { return v.typ }

func (v Value) Int8() (int8, bool) {
	return int8(v.num), v.typ == TypeI8
}

func (v Value) Uint8() (uint8, bool) {
	return uint8(v.num), v.typ == TypeU8
}

func (v Value) Int16() (int16, bool) {
	return int16(v.num), v.typ == TypeI16
}

func (v Value) Uint16() (uint16, bool) {
	return uint16(v.num), v.typ == TypeU16
}

func (v Value) Int32() (int32, bool) {
	return int32(v.num), v.typ == TypeI32
}

func (v Value) Uint32() (uint32, bool) {
	return uint32(v.num), v.typ == TypeU32
}

func (v Value) Int64() (int64, bool) {
	return int64(v.num), v.typ == TypeI64
}

func (v Value) Uint64() (uint64, bool) {
	return v.num, v.typ == TypeU64
}

func (v Value) Float32() (float32, bool) {
	return math.Float32frombits(uint32(v.num)), v.typ == TypeF32
}

func (v Value) Float64() (float64, bool) {
	return math.Float64frombits(v.num), v.typ == TypeF64
}

// Str returns the string content of a string cell.
func (v Value) Str() (string, bool) {
	return v.str, v.typ == TypeString
}

// IsASCII returns the producer's ascii hint of a string cell. The decoder
// carries the flag through without enforcing it.
func (v Value) IsASCII() bool { return v.ascii }

// String returns the textual form of the cell, as emitted into CSV.
func (v Value) String() string {
	switch v.typ {
	case TypeI8, TypeI16, TypeI32, TypeI64:
		return strconv.FormatInt(int64(v.num), 10)
	case TypeU8, TypeU16, TypeU32, TypeU64:
		return strconv.FormatUint(v.num, 10)
	case TypeF32:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(v.num))), 'g', -1, 32)
	case TypeF64:
		return strconv.FormatFloat(math.Float64frombits(v.num), 'g', -1, 64)
	case TypeString:
		return v.str
	default:
		return ""
	}
}

// Row is one decoded record, one cell per column in column-type order.
type Row []Value

// --------------------------------------------------------------------

// readValue decodes one cell of type t from the cursor.
func readValue(c *Cursor, t ColumnType) (Value, error) {
	switch t {
	case TypeI8:
		v, err := c.ReadI8()
		return Value{typ: t, num: uint64(int64(v))}, err
	case TypeU8:
		v, err := c.ReadU8()
		return Value{typ: t, num: uint64(v)}, err
	case TypeI16:
		v, err := c.ReadI16()
		return Value{typ: t, num: uint64(int64(v))}, err
	case TypeU16:
		v, err := c.ReadU16()
		return Value{typ: t, num: uint64(v)}, err
	case TypeI32:
		v, err := c.ReadI32()
		return Value{typ: t, num: uint64(int64(v))}, err
	case TypeU32:
		v, err := c.ReadU32()
		return Value{typ: t, num: uint64(v)}, err
	case TypeI64:
		v, err := c.ReadI64()
		return Value{typ: t, num: uint64(v)}, err
	case TypeU64:
		v, err := c.ReadU64()
		return Value{typ: t, num: v}, err
	case TypeF32:
		v, err := c.ReadU32()
		return Value{typ: t, num: uint64(v)}, err
	case TypeF64:
		v, err := c.ReadU64()
		return Value{typ: t, num: v}, err
	case TypeString:
		return readString(c)
	default:
		return Value{}, fmt.Errorf("%w: code %d", ErrUnknownColumnType, uint8(t))
	}
}

func readString(c *Cursor) (Value, error) {
	flag, err := c.ReadU8()
	if err != nil {
		return Value{}, err
	}
	n, err := c.ReadU16()
	if err != nil {
		return Value{}, err
	}
	p, err := c.ReadBytes(int(n))
	if err != nil {
		return Value{}, err
	}
	if !utf8.Valid(p) {
		return Value{}, fmt.Errorf("%w: %d byte cell at offset %d", ErrInvalidStringEncoding, n, c.Pos()-int(n))
	}
	return Value{typ: TypeString, str: string(p), ascii: flag != 0}, nil
}

// skipValue advances past one cell without materializing it.
func skipValue(c *Cursor, t ColumnType) error {
	if w := t.Width(); w > 0 {
		_, err := c.ReadBytes(w)
		return err
	}
	if t != TypeString {
		return fmt.Errorf("%w: code %d", ErrUnknownColumnType, uint8(t))
	}
	if _, err := c.ReadU8(); err != nil {
		return err
	}
	n, err := c.ReadU16()
	if err != nil {
		return err
	}
	_, err = c.ReadBytes(int(n))
	return err
}
