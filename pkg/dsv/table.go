// Package dsv provides the column-oriented table produced by a read.
//
// A Table holds one homogeneous column per header field. Each column's
// element type is either int64 or string, decided once from the first batch
// of rows and never revisited.
package dsv

import "fmt"

// Kind is the element type of a column.
type Kind int

const (
	// KindString marks a column of text values.
	KindString Kind = iota
	// KindInt marks a column of signed 64-bit integer values.
	KindInt
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// column is a single growing sequence of values. Exactly one of ints or strs
// is populated, according to kind.
type column struct {
	kind Kind
	ints []int64
	strs []string
}

// Table is an ordered collection of named, typed columns assembled once per
// complete read. The row count equals the number of data lines scanned; the
// header line is not a row.
type Table struct {
	names []string
	cols  []column
	rows  int
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.names)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return t.rows
}

// Names returns the column names in header order.
func (t *Table) Names() []string {
	return t.names
}

// Name returns the name of column i.
// Returns ("", false) if the index is out of bounds.
func (t *Table) Name(i int) (string, bool) {
	if i < 0 || i >= len(t.names) {
		return "", false
	}
	return t.names[i], true
}

// Kind returns the element type of column i.
// Returns (KindString, false) if the index is out of bounds.
func (t *Table) Kind(i int) (Kind, bool) {
	if i < 0 || i >= len(t.cols) {
		return KindString, false
	}
	return t.cols[i].kind, true
}

// Ints returns the values of integer column i.
// Returns (nil, false) if the index is out of bounds or the column is not
// an integer column.
func (t *Table) Ints(i int) ([]int64, bool) {
	if i < 0 || i >= len(t.cols) || t.cols[i].kind != KindInt {
		return nil, false
	}
	return t.cols[i].ints, true
}

// Strings returns the values of string column i.
// Returns (nil, false) if the index is out of bounds or the column is not
// a string column.
func (t *Table) Strings(i int) ([]string, bool) {
	if i < 0 || i >= len(t.cols) || t.cols[i].kind != KindString {
		return nil, false
	}
	return t.cols[i].strs, true
}

// Equal reports whether two tables have identical names, column types, and
// values.
func (t *Table) Equal(o *Table) bool {
	if t.rows != o.rows || len(t.names) != len(o.names) {
		return false
	}
	for i := range t.names {
		if t.names[i] != o.names[i] {
			return false
		}
	}
	for i := range t.cols {
		a, b := &t.cols[i], &o.cols[i]
		if a.kind != b.kind {
			return false
		}
		switch a.kind {
		case KindInt:
			for j := range a.ints {
				if a.ints[j] != b.ints[j] {
					return false
				}
			}
		case KindString:
			for j := range a.strs {
				if a.strs[j] != b.strs[j] {
					return false
				}
			}
		}
	}
	return true
}
