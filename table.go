package stctable

import (
	"fmt"
	"strings"
)

// Table is a fully materialized .stc table.
type Table struct {
	ID   uint16
	Cols []ColumnType
	Rows []Row
}

// ReadTable decodes every record in buf.
func ReadTable(buf []byte) (*Table, error) {
	r, err := NewReader(buf)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, r.NumRows())
	it := r.Iter()
	for it.Next() {
		rows = append(rows, it.Row())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	return &Table{ID: r.TableID(), Cols: r.Columns(), Rows: rows}, nil
}

// Value returns the cell at (row, col).
func (t *Table) Value(row, col int) (Value, error) {
	if row < 0 || row >= len(t.Rows) {
		return Value{}, fmt.Errorf("stctable: row %d not found", row)
	}
	cells := t.Rows[row]
	if col < 0 || col >= len(cells) {
		return Value{}, fmt.Errorf("stctable: column %d not found", col)
	}
	return cells[col], nil
}

// List splits a "v,v,v" style string cell on sep.
func (t *Table) List(row, col int, sep string) ([]string, error) {
	s, err := t.stringCell(row, col)
	if err != nil {
		return nil, err
	}
	return strings.Split(s, sep), nil
}

// Map splits a "k:v,k:v" style string cell into key/value pairs.
func (t *Table) Map(row, col int, pairSep, kvSep string) (map[string]string, error) {
	s, err := t.stringCell(row, col)
	if err != nil {
		return nil, err
	}

	m := make(map[string]string)
	for _, pair := range strings.Split(s, pairSep) {
		k, v, ok := strings.Cut(pair, kvSep)
		if !ok {
			return nil, fmt.Errorf("stctable: cell (%d,%d) has malformed pair %q", row, col, pair)
		}
		m[k] = v
	}
	return m, nil
}

func (t *Table) stringCell(row, col int) (string, error) {
	v, err := t.Value(row, col)
	if err != nil {
		return "", err
	}
	s, ok := v.Str()
	if !ok {
		return "", fmt.Errorf("stctable: cell (%d,%d) is %s, not a string", row, col, v.Type())
	}
	return s, nil
}

// --------------------------------------------------------------------

// NamedTable resolves records by their id column and columns by name,
// using an externally supplied definition. The first column must be the
// i32 record id.
type NamedTable struct {
	Name string

	tbl   *Table
	byID  map[int32]int
	byCol map[string]int
}

// Named binds a table name and column names to t.
func Named(t *Table, name string, columns []string) (*NamedTable, error) {
	if len(t.Cols) == 0 {
		return nil, fmt.Errorf("stctable: table %d has no columns", t.ID)
	}
	if len(columns) != len(t.Cols) {
		return nil, fmt.Errorf("stctable: %d column names for %d columns", len(columns), len(t.Cols))
	}

	byCol := make(map[string]int, len(columns))
	for i, c := range columns {
		byCol[c] = i
	}

	byID := make(map[int32]int, len(t.Rows))
	for i, row := range t.Rows {
		id, ok := row[0].Int32()
		if !ok {
			return nil, fmt.Errorf("stctable: record %d: first column is %s, want i32", i, row[0].Type())
		}
		byID[id] = i
	}

	return &NamedTable{Name: name, tbl: t, byID: byID, byCol: byCol}, nil
}

// Table returns the underlying table.
func (n *NamedTable) Table() *Table { return n.tbl }

// Value returns the named cell of the record with the given id.
func (n *NamedTable) Value(id int32, column string) (Value, error) {
	row, ok := n.byID[id]
	if !ok {
		return Value{}, fmt.Errorf("stctable: record %d not found", id)
	}
	col, ok := n.byCol[column]
	if !ok {
		return Value{}, fmt.Errorf("stctable: column %q not found", column)
	}
	return n.tbl.Value(row, col)
}

// List splits the named "v,v,v" style string cell on sep.
func (n *NamedTable) List(id int32, column, sep string) ([]string, error) {
	v, err := n.Value(id, column)
	if err != nil {
		return nil, err
	}
	s, ok := v.Str()
	if !ok {
		return nil, fmt.Errorf("stctable: column %q is %s, not a string", column, v.Type())
	}
	return strings.Split(s, sep), nil
}
