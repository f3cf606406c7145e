package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Table represents file contents as a named, column-typed structure.
// The column count is fixed at construction.
type Table struct {
	// Name is table name derived from file path.
	name string
	// Header is table header.
	header Header
	// Records is table records.
	records []Record
	// ColumnInfo contains inferred type information for each column
	columnInfo []ColumnInfo
}

// NewTable create new Table.
//
// Column types are inferred from the non-missing values. Cells of INTEGER and
// REAL columns are stored without surrounding whitespace, the same way a
// parsed number would be.
func NewTable(
	name string,
	header Header,
	records []Record,
) *Table {
	columnInfo := InferColumnsInfo(header, records)

	for i, info := range columnInfo {
		if !info.Type.IsNumeric() {
			continue
		}
		for _, record := range records {
			if i < len(record) && !record[i].IsNull() {
				record[i] = NewCell(strings.TrimSpace(record[i].Raw()))
			}
		}
	}

	return &Table{
		name:       name,
		header:     header,
		records:    records,
		columnInfo: columnInfo,
	}
}

// Name return table name.
func (t *Table) Name() string {
	return t.name
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Records return table records.
func (t *Table) Records() []Record {
	return t.records
}

// ColumnInfo returns column information with inferred types
func (t *Table) ColumnInfo() []ColumnInfo {
	return t.columnInfo
}

// NumRows returns the number of records.
func (t *Table) NumRows() int {
	return len(t.records)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.header)
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	return t.NumRows(), t.NumColumns()
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns the cells of column i in row order.
func (t *Table) Column(i int) []Cell {
	cells := make([]Cell, 0, len(t.records))
	for _, record := range t.records {
		if i < len(record) {
			cells = append(cells, record[i])
		} else {
			cells = append(cells, NullCell())
		}
	}
	return cells
}

// NullCount returns the number of missing cells in column i.
func (t *Table) NullCount(i int) int {
	n := 0
	for _, c := range t.Column(i) {
		if c.IsNull() {
			n++
		}
	}
	return n
}

// NonNullCount returns the number of present cells in column i.
func (t *Table) NonNullCount(i int) int {
	return t.NumRows() - t.NullCount(i)
}

// MapColumn replaces every cell of column i with fn(cell), in place.
func (t *Table) MapColumn(i int, fn func(Cell) Cell) {
	for _, record := range t.records {
		if i < len(record) {
			record[i] = fn(record[i])
		}
	}
}

// Head returns up to n leading records.
func (t *Table) Head(n int) []Record {
	if n > len(t.records) {
		n = len(t.records)
	}
	if n < 0 {
		n = 0
	}
	return t.records[:n]
}

// Rename replaces the header. names must hold exactly one distinct name per column.
func (t *Table) Rename(names []string) error {
	if len(names) != len(t.header) {
		return fmt.Errorf("%w: table has %d columns, got %d names", ErrColumnCountMismatch, len(t.header), len(names))
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, name)
		}
		seen[name] = struct{}{}
	}

	t.header = NewHeader(append([]string(nil), names...))
	for i := range t.columnInfo {
		t.columnInfo[i].Name = names[i]
	}
	return nil
}

// Equal compare Table.
func (t *Table) Equal(t2 *Table) bool {
	if t.Name() != t2.Name() {
		return false
	}
	if !t.header.Equal(t2.header) {
		return false
	}
	if len(t.Records()) != len(t2.Records()) {
		return false
	}
	for i, record := range t.Records() {
		if !record.Equal(t2.Records()[i]) {
			return false
		}
	}
	return true
}

// TableFromFilePath creates table name from file path
func TableFromFilePath(filePath string) string {
	fileName := filepath.Base(filePath)
	for _, ext := range compressionExtensions {
		if strings.HasSuffix(fileName, ext) {
			fileName = strings.TrimSuffix(fileName, ext)
			break
		}
	}
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// compressionExtensions lists the suffixes stripped before the format extension.
var compressionExtensions = []string{".gz", ".bz2", ".xz", ".zst"}
