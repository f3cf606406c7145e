// Package model provides domain model for csveda
package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// NullMarker is how a missing cell is rendered.
const NullMarker = "<NA>"

// Header is table header.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// PositionalHeader returns the labels given to a headerless source: "0", "1", ...
func PositionalHeader(n int) Header {
	h := make(Header, n)
	for i := range n {
		h[i] = strconv.Itoa(i)
	}
	return h
}

// GenericHeader returns "col_0", "col_1", ... for n columns.
func GenericHeader(n int) Header {
	h := make(Header, n)
	for i := range n {
		h[i] = fmt.Sprintf("col_%d", i)
	}
	return h
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Cell is a single table value. The zero Cell is missing.
type Cell struct {
	value string
	valid bool
}

// NewCell returns a present cell holding s.
func NewCell(s string) Cell {
	return Cell{value: s, valid: true}
}

// NullCell returns the missing marker.
func NullCell() Cell {
	return Cell{}
}

// IsNull reports whether the cell is missing.
func (c Cell) IsNull() bool {
	return !c.valid
}

// Raw returns the stored string, or "" for a missing cell.
func (c Cell) Raw() string {
	return c.value
}

// String renders the cell for display.
func (c Cell) String() string {
	if !c.valid {
		return NullMarker
	}
	return c.value
}

// Value implements driver.Valuer so cells can be bound directly to SQL statements.
func (c Cell) Value() (driver.Value, error) {
	if !c.valid {
		return nil, nil
	}
	return c.value, nil
}

// Record is one table row.
type Record []Cell

// NewRecord create new Record. Every value is stored as a present cell.
func NewRecord(r []string) Record {
	record := make(Record, len(r))
	for i, v := range r {
		record[i] = NewCell(v)
	}
	return record
}

// Strings returns the rendered values of the record.
func (r Record) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// Equal compare Record.
func (r Record) Equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// ColumnType represents the inferred column type
type ColumnType int

const (
	// ColumnTypeText represents TEXT column type
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents INTEGER column type
	ColumnTypeInteger
	// ColumnTypeReal represents REAL column type
	ColumnTypeReal
	// ColumnTypeDatetime represents datetime stored as TEXT in ISO8601 format
	ColumnTypeDatetime
)

const (
	sqlTypeText     = "TEXT"
	sqlTypeInteger  = "INTEGER"
	sqlTypeReal     = "REAL"
	sqlTypeDatetime = "DATETIME"
)

// String returns the display name of the column type
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeInteger:
		return sqlTypeInteger
	case ColumnTypeReal:
		return sqlTypeReal
	case ColumnTypeDatetime:
		return sqlTypeDatetime
	default:
		return sqlTypeText
	}
}

// SQLType returns the SQLite column affinity for the type
func (ct ColumnType) SQLType() string {
	switch ct {
	case ColumnTypeInteger:
		return sqlTypeInteger
	case ColumnTypeReal:
		return sqlTypeReal
	default:
		return sqlTypeText // SQLite stores datetime as TEXT in ISO8601 format
	}
}

// IsTextual reports whether values of the type are kept as free text.
func (ct ColumnType) IsTextual() bool {
	return ct == ColumnTypeText || ct == ColumnTypeDatetime
}

// IsNumeric reports whether the type is INTEGER or REAL.
func (ct ColumnType) IsNumeric() bool {
	return ct == ColumnTypeInteger || ct == ColumnTypeReal
}

// ColumnInfo represents column information with name and inferred type
type ColumnInfo struct {
	Name string
	Type ColumnType
}
