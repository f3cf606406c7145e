// Package model provides domain model for csveda
package model

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datetimeLayouts pairs a cheap shape check with the layouts that may parse it.
var datetimeLayouts = []struct {
	shape   *regexp.Regexp
	layouts []string
}{
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339, time.RFC3339Nano},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.000", "2006-01-02 15:04:05", "2006-01-02 15:04:05.000"},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{"2006-01-02"},
	},
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		[]string{"1/2/2006", "01/02/2006"},
	},
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		[]string{"2.1.2006", "02.01.2006"},
	},
	{
		regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}$`),
		[]string{"15:04:05", "3:04:05"},
	},
}

// isDatetime checks if a string value represents a datetime
func isDatetime(value string) bool {
	for _, dl := range datetimeLayouts {
		if !dl.shape.MatchString(value) {
			continue
		}
		for _, layout := range dl.layouts {
			if _, err := time.Parse(layout, value); err == nil {
				return true
			}
		}
	}
	return false
}

// classifyValue returns the narrowest type that can hold a single non-empty value.
func classifyValue(value string) ColumnType {
	if isDatetime(value) {
		return ColumnTypeDatetime
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return ColumnTypeInteger
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		// ParseFloat accepts any spelling of NaN; such a value is not a number.
		if math.IsNaN(f) {
			return ColumnTypeText
		}
		return ColumnTypeReal
	}
	return ColumnTypeText
}

// InferColumnType infers the column type from a slice of string values.
// Empty values are ignored. Priority: TEXT > DATETIME > REAL > INTEGER.
func InferColumnType(values []string) ColumnType {
	seen := make(map[ColumnType]bool, 4)
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		t := classifyValue(value)
		if t == ColumnTypeText {
			return ColumnTypeText
		}
		seen[t] = true
	}

	switch {
	case seen[ColumnTypeDatetime]:
		return ColumnTypeDatetime
	case seen[ColumnTypeReal]:
		return ColumnTypeReal
	case seen[ColumnTypeInteger]:
		return ColumnTypeInteger
	default:
		return ColumnTypeText
	}
}

// InferColumnsInfo infers column information from header and data records.
// Missing cells take no part in inference.
func InferColumnsInfo(header Header, records []Record) []ColumnInfo {
	if len(header) == 0 {
		return nil
	}

	columns := make([]ColumnInfo, len(header))
	for i, name := range header {
		var values []string
		for _, record := range records {
			if i < len(record) && !record[i].IsNull() {
				values = append(values, record[i].Raw())
			}
		}
		columns[i] = ColumnInfo{Name: name, Type: InferColumnType(values)}
	}
	return columns
}
