// Package table holds tabular data in memory between the readers and the
// pipeline stages. A Table is an ordered set of named columns over rows of
// loosely typed cells; it is the common currency every stage consumes and
// produces.
package table

// Table is an ordered collection of named columns and rows of cells.
// Column order is significant and preserved through every operation.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// New returns an empty table with the given columns, in order.
func New(columns ...string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range t.columns {
		t.index[name] = i
	}
	return t
}

// Columns returns the column names in order. The slice is shared; callers
// must not modify it.
func (t *Table) Columns() []string { return t.columns }

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool { return len(t.rows) == 0 }

// HasColumn reports whether a column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of a column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// AppendRow adds a row, padding with absent cells or truncating to the
// table's width.
func (t *Table) AppendRow(cells ...Cell) {
	row := make([]Cell, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Row returns the cells of one row. The slice is shared; callers must not
// modify it.
func (t *Table) Row(r int) []Cell { return t.rows[r] }

// Cell returns the value at a row and named column. Absent when the
// column does not exist.
func (t *Table) Cell(r int, column string) Cell {
	i, ok := t.index[column]
	if !ok {
		return Absent()
	}
	return t.rows[r][i]
}

// SetCell stores a value at a row and named column. Unknown columns are
// ignored.
func (t *Table) SetCell(r int, column string, v Cell) {
	if i, ok := t.index[column]; ok {
		t.rows[r][i] = v
	}
}

// AddColumn appends a column filled with the given value for existing rows.
// No-op when the column already exists.
func (t *Table) AddColumn(name string, fill Cell) {
	if t.HasColumn(name) {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for r := range t.rows {
		t.rows[r] = append(t.rows[r], fill)
	}
}

// EnsureColumns adds any missing columns filled with absent cells.
func (t *Table) EnsureColumns(names ...string) {
	for _, name := range names {
		t.AddColumn(name, Absent())
	}
}

// SetColumn stamps every row's value in a column, adding the column when
// missing.
func (t *Table) SetColumn(name string, v Cell) {
	t.AddColumn(name, v)
	i := t.index[name]
	for r := range t.rows {
		t.rows[r][i] = v
	}
}

// Rename renames columns according to the mapping. Names not present in
// the mapping are kept.
func (t *Table) Rename(mapping map[string]string) {
	for i, name := range t.columns {
		if renamed, ok := mapping[name]; ok {
			t.columns[i] = renamed
		}
	}
	t.index = make(map[string]int, len(t.columns))
	for i, name := range t.columns {
		t.index[name] = i
	}
}

// Select returns a copy containing the named columns in the given order.
// Names the table does not have are skipped.
func (t *Table) Select(names ...string) *Table {
	present := make([]string, 0, len(names))
	src := make([]int, 0, len(names))
	for _, name := range names {
		if i, ok := t.index[name]; ok {
			present = append(present, name)
			src = append(src, i)
		}
	}
	out := New(present...)
	for _, row := range t.rows {
		cells := make([]Cell, len(src))
		for j, i := range src {
			cells[j] = row[i]
		}
		out.AppendRow(cells...)
	}
	return out
}

// Reorder rearranges columns in place: the preferred names that exist come
// first in the given order, then the remaining columns in their current
// order.
func (t *Table) Reorder(preferred ...string) {
	order := make([]int, 0, len(t.columns))
	taken := make(map[int]bool, len(t.columns))
	for _, name := range preferred {
		if i, ok := t.index[name]; ok && !taken[i] {
			order = append(order, i)
			taken[i] = true
		}
	}
	for i := range t.columns {
		if !taken[i] {
			order = append(order, i)
		}
	}

	columns := make([]string, len(order))
	for j, i := range order {
		columns[j] = t.columns[i]
	}
	for r, row := range t.rows {
		cells := make([]Cell, len(order))
		for j, i := range order {
			cells[j] = row[i]
		}
		t.rows[r] = cells
	}
	t.columns = columns
	t.index = make(map[string]int, len(columns))
	for i, name := range columns {
		t.index[name] = i
	}
}

// AppendTable appends another table's rows, unioning schemas: columns new
// to the receiver are added (absent backfill for old rows) in the order
// the other table declares them. Cells for columns the other table lacks
// are absent.
func (t *Table) AppendTable(other *Table) {
	if other == nil || other.IsEmpty() {
		// Still union the schema so empty frames can contribute columns.
		if other != nil {
			t.EnsureColumns(other.columns...)
		}
		return
	}
	t.EnsureColumns(other.columns...)
	for _, row := range other.rows {
		cells := make([]Cell, len(t.columns))
		for j, name := range other.columns {
			cells[t.index[name]] = row[j]
		}
		t.rows = append(t.rows, cells)
	}
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := New(t.columns...)
	out.rows = make([][]Cell, len(t.rows))
	for r, row := range t.rows {
		out.rows[r] = append([]Cell(nil), row...)
	}
	return out
}

// FilterRows returns a copy keeping rows for which keep returns true.
func (t *Table) FilterRows(keep func(r int) bool) *Table {
	out := New(t.columns...)
	for r, row := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, append([]Cell(nil), row...))
		}
	}
	return out
}

// AppendRowFrom copies row r of src into the receiver, matching columns by
// name. Columns the receiver lacks are ignored; receiver columns missing
// in src become absent.
func (t *Table) AppendRowFrom(src *Table, r int) {
	cells := make([]Cell, len(t.columns))
	for j, name := range t.columns {
		if i, ok := src.index[name]; ok {
			cells[j] = src.rows[r][i]
		}
	}
	t.rows = append(t.rows, cells)
}
