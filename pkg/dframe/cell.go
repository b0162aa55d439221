// Package dframe parses delimited text files into typed, columnar
// in-memory tables. Input is memory-mapped and tokenized by a byte-level
// state machine; with more than one shard the post-header region is split
// into line-aligned ranges that independent workers tokenize concurrently,
// each writing into its own disjoint slice of a single flat allocation.
package dframe

import (
	"strconv"
)

// CellType is the inferred type of a column. The values form a lattice
// ordered Null < I64 < F64 < String, so merging two observations is
// taking the larger of the two.
type CellType uint8

const (
	CellTypeNull CellType = iota
	CellTypeI64
	CellTypeF64
	CellTypeString
)

// String returns the display name of the type.
func (t CellType) String() string {
	switch t {
	case CellTypeNull:
		return "null"
	case CellTypeI64:
		return "i64"
	case CellTypeF64:
		return "f64"
	case CellTypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Merge combines two column type observations. It is commutative,
// associative and idempotent, with CellTypeNull as identity, which makes
// the final schema independent of shard count and fold order.
func Merge(a, b CellType) CellType {
	if a > b {
		return a
	}
	return b
}

// Cell is one parsed field value: Null, an int64, a float64 or a string.
// The zero value is Null, so a freshly allocated []Cell is a valid
// all-Null table region.
type Cell struct {
	typ CellType
	i   int64
	f   float64
	s   string
}

// NullCell returns the Null cell.
func NullCell() Cell { return Cell{} }

// IntCell returns a cell holding a 64-bit signed integer.
func IntCell(v int64) Cell { return Cell{typ: CellTypeI64, i: v} }

// FloatCell returns a cell holding a 64-bit float.
func FloatCell(v float64) Cell { return Cell{typ: CellTypeF64, f: v} }

// StringCell returns a cell holding text.
func StringCell(s string) Cell { return Cell{typ: CellTypeString, s: s} }

// Type returns the tag of the cell.
func (c Cell) Type() CellType { return c.typ }

// IsNull reports whether the cell is Null.
func (c Cell) IsNull() bool { return c.typ == CellTypeNull }

// Int returns the integer payload. Only meaningful when Type is I64.
func (c Cell) Int() int64 { return c.i }

// Float returns the float payload. Only meaningful when Type is F64.
func (c Cell) Float() float64 { return c.f }

// Str returns the string payload. Only meaningful when Type is String.
func (c Cell) Str() string { return c.s }

// Value returns the payload as an interface value, nil for Null.
func (c Cell) Value() interface{} {
	switch c.typ {
	case CellTypeI64:
		return c.i
	case CellTypeF64:
		return c.f
	case CellTypeString:
		return c.s
	default:
		return nil
	}
}

// String renders the cell for display.
func (c Cell) String() string {
	switch c.typ {
	case CellTypeI64:
		return strconv.FormatInt(c.i, 10)
	case CellTypeF64:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case CellTypeString:
		return c.s
	default:
		return "null"
	}
}
