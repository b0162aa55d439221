package dframe

// Table is the finished read view over one parse: a single contiguous
// row-major []Cell, the header, and the inferred type of every column.
// It is constructed once, after all workers have joined, and never
// mutated afterwards.
type Table struct {
	data   []Cell
	header []string
	dtypes []CellType
}

func newTable(data []Cell, header []string, dtypes []CellType) *Table {
	return &Table{data: data, header: header, dtypes: dtypes}
}

// RowCount returns the number of logical rows.
func (t *Table) RowCount() int {
	if len(t.header) == 0 {
		return 0
	}
	return len(t.data) / len(t.header)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.header) }

// Header returns the ordered column names.
func (t *Table) Header() []string { return t.header }

// ColumnTypes returns the inferred type of each column, in header order.
func (t *Table) ColumnTypes() []CellType { return t.dtypes }

// Row returns row i as a fixed-length view of length ColumnCount.
// Constant-time arithmetic indexing; no scan.
func (t *Table) Row(i int) []Cell {
	w := len(t.header)
	return t.data[i*w : (i+1)*w]
}

// Rows returns an iterator over successive row views.
func (t *Table) Rows() *RowIter {
	return &RowIter{data: t.data, width: len(t.header)}
}

// Column looks up a column by name with a linear search over the
// header. The second return is false when no such column exists.
func (t *Table) Column(name string) (*ColumnIter, bool) {
	for i, h := range t.header {
		if h == name {
			return &ColumnIter{
				data:   t.data,
				stride: len(t.header),
				offset: i,
				index:  i,
			}, true
		}
	}
	return nil, false
}

// RowIter lazily produces fixed-length row views over the flat table.
type RowIter struct {
	data  []Cell
	width int
	index int
}

// Next returns the next row view, or false when the rows are exhausted.
func (it *RowIter) Next() ([]Cell, bool) {
	if it.width == 0 || it.index >= len(it.data) {
		return nil, false
	}
	row := it.data[it.index : it.index+it.width]
	it.index += it.width
	return row, true
}

// Nth returns row n by arithmetic offset without advancing the
// iterator. Constant time.
func (it *RowIter) Nth(n int) ([]Cell, bool) {
	if it.width == 0 || n < 0 || n >= len(it.data)/it.width {
		return nil, false
	}
	start := n * it.width
	return it.data[start : start+it.width], true
}

// Remaining returns the number of rows not yet produced.
func (it *RowIter) Remaining() int {
	if it.width == 0 {
		return 0
	}
	return (len(it.data) - it.index) / it.width
}

// ColumnIter lazily produces one column's cells across all rows as a
// strided walk over the flat table.
type ColumnIter struct {
	data   []Cell
	stride int
	offset int
	index  int
}

// Next returns the next cell in the column, or false when exhausted.
func (it *ColumnIter) Next() (Cell, bool) {
	if it.index >= len(it.data) {
		return Cell{}, false
	}
	c := it.data[it.index]
	it.index += it.stride
	return c, true
}

// Nth returns the cell at row n of the column by arithmetic offset
// without advancing the iterator. Constant time.
func (it *ColumnIter) Nth(n int) (Cell, bool) {
	if n < 0 || n >= len(it.data)/it.stride {
		return Cell{}, false
	}
	return it.data[n*it.stride+it.offset], true
}

// Remaining returns the number of cells not yet produced.
func (it *ColumnIter) Remaining() int {
	if it.index >= len(it.data) {
		return 0
	}
	return (len(it.data)-it.index + it.stride - 1) / it.stride
}
