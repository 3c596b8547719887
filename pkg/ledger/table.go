package ledger

import (
	"slices"
	"strings"
)

// Row maps a column name to its cell text.
type Row map[string]string

// Table is an ordered set of columns and rows loaded from a spreadsheet.
// Column order is preserved through every stage so the written output keeps
// the input layout.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(name string, columns ...string) *Table {
	return &Table{
		Name:    name,
		Columns: slices.Clone(columns),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// AppendRow adds a row from positional cells. Missing trailing cells are
// stored as empty text and surplus cells are dropped.
func (t *Table) AppendRow(cells ...string) {
	row := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(cells) {
			row[col] = cells[i]
		} else {
			row[col] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// Column resolves name against the table's columns ignoring case and
// runs of whitespace. It returns the column's actual spelling.
func (t *Table) Column(name string) (string, bool) {
	key := columnKey(name)
	for _, col := range t.Columns {
		if columnKey(col) == key {
			return col, true
		}
	}
	return "", false
}

// Missing returns the names that do not resolve to a column, in argument order.
func (t *Table) Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := t.Column(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// HasColumns reports whether every name resolves to a column.
func (t *Table) HasColumns(names ...string) bool {
	return len(t.Missing(names...)) == 0
}

// EnsureColumn returns the existing column matching name, or appends name
// as a new column initialised to empty text on every row.
func (t *Table) EnsureColumn(name string) string {
	if col, ok := t.Column(name); ok {
		return col
	}
	t.Columns = append(t.Columns, name)
	for _, row := range t.Rows {
		row[name] = ""
	}
	return name
}

// Cell returns the raw text at row i for the named column. Unknown columns
// and out-of-range rows yield "".
func (t *Table) Cell(i int, name string) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	col, ok := t.Column(name)
	if !ok {
		return ""
	}
	return t.Rows[i][col]
}

// Value returns the cell at row i as a Value.
func (t *Table) Value(i int, name string) Value {
	return Text(t.Cell(i, name))
}

// Set writes text into row i, adding the column if needed.
func (t *Table) Set(i int, name, text string) {
	col := t.EnsureColumn(name)
	t.Rows[i][col] = text
}

// Records returns the rows as positional cell slices in column order.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			cells[j] = row[col]
		}
		out = append(out, cells)
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	clone := &Table{
		Name:    t.Name,
		Columns: slices.Clone(t.Columns),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		copied := make(Row, len(row))
		for k, v := range row {
			copied[k] = v
		}
		clone.Rows[i] = copied
	}
	return clone
}

func columnKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
