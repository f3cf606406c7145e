package csveda

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"

	"github.com/nao1215/csveda/domain/model"
)

// DefaultNAValues are the field values loaded as missing cells.
// "?" is not one of them; the Cleaner converts it.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// rowsPerContextCheck is how many rows are parsed between cancellation checks.
const rowsPerContextCheck = 1024

// Loader reads a headerless tabular file into a model.Table.
//
// Columns are labelled "0", "1", ... in file order. Leading whitespace of
// every field is dropped and fields matching an NA value become missing cells.
type Loader struct {
	naValues         map[string]struct{}
	trimLeadingSpace bool
	logger           *slog.Logger
}

// NewLoader creates a Loader with DefaultNAValues and leading-space trimming.
func NewLoader() *Loader {
	l := &Loader{
		trimLeadingSpace: true,
		logger:           slog.Default(),
	}
	return l.WithNAValues(DefaultNAValues...)
}

// WithNAValues replaces the set of field values treated as missing.
func (l *Loader) WithNAValues(values ...string) *Loader {
	l.naValues = make(map[string]struct{}, len(values))
	for _, v := range values {
		l.naValues[v] = struct{}{}
	}
	return l
}

// WithLogger sets the logger used for load diagnostics.
func (l *Loader) WithLogger(logger *slog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load reads path with a default Loader.
func Load(ctx context.Context, path string) (*model.Table, error) {
	return NewLoader().Load(ctx, path)
}

// Load reads the file at path. The format is chosen from the extension and
// compressed files (.gz, .bz2, .xz, .zst) are decompressed on the fly.
//
// A missing file yields an error wrapping ErrFileNotFound. Malformed content
// wraps ErrInvalidData and is not recovered.
func (l *Loader) Load(ctx context.Context, path string) (*model.Table, error) {
	f := newFile(path)

	reader, closer, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closer(); err != nil {
			l.logger.Warn("failed to close input", "path", path, "error", err)
		}
	}()

	table, err := l.parse(ctx, reader, f.tableName(), f.fileType)
	if err != nil {
		return nil, NewErrorContext("load", path).WithDetails(f.fileType.String()).Error(err)
	}

	l.logger.Debug("loaded table",
		"path", path,
		"format", f.fileType.String(),
		"compression", f.compressionType.String(),
		"rows", table.NumRows(),
		"columns", table.NumColumns(),
	)
	return table, nil
}

// LoadReader reads an uncompressed source of the given type.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader, name string, fileType FileType) (*model.Table, error) {
	return l.parse(ctx, r, name, fileType)
}

func (l *Loader) parse(ctx context.Context, r io.Reader, name string, fileType FileType) (*model.Table, error) {
	switch fileType {
	case FileTypeCSV:
		return l.parseDelimited(ctx, r, name, ',')
	case FileTypeTSV:
		return l.parseDelimited(ctx, r, name, '\t')
	case FileTypeXLSX:
		return l.parseXLSX(r, name)
	case FileTypeParquet:
		return l.parseParquet(ctx, r, name)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, fileType)
	}
}

// cell converts one raw field to a table cell.
func (l *Loader) cell(v string) model.Cell {
	if l.trimLeadingSpace {
		v = strings.TrimLeft(v, " ")
	}
	if _, na := l.naValues[v]; na || isNaNSpelling(v) {
		return model.NullCell()
	}
	return model.NewCell(v)
}

// isNaNSpelling reports whether v is "nan" in any letter case, optionally signed.
func isNaNSpelling(v string) bool {
	if strings.HasPrefix(v, "+") || strings.HasPrefix(v, "-") {
		v = v[1:]
	}
	return strings.EqualFold(v, "nan")
}

func (l *Loader) record(fields []string, width int) model.Record {
	record := make(model.Record, width)
	for i := range width {
		if i < len(fields) {
			record[i] = l.cell(fields[i])
		} else {
			record[i] = model.NullCell()
		}
	}
	return record
}

// parseDelimited parses CSV or TSV data. Every row must have as many fields as the first.
func (l *Loader) parseDelimited(ctx context.Context, r io.Reader, name string, delimiter rune) (*model.Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	// encoding/csv would also eat a whitespace delimiter, so TSV is trimmed per field instead.
	csvReader.TrimLeadingSpace = l.trimLeadingSpace && !unicode.IsSpace(delimiter)

	var records []model.Record
	for {
		if len(records)%rowsPerContextCheck == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		fields, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		records = append(records, l.record(fields, len(fields)))
	}

	if len(records) == 0 {
		return nil, ErrEmptyData
	}

	return model.NewTable(name, model.PositionalHeader(len(records[0])), records), nil
}

// parseXLSX reads the first sheet of a workbook. Short rows are padded with missing cells.
func (l *Loader) parseXLSX(r io.Reader, name string) (*model.Table, error) {
	xlsxFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, ErrEmptyData
	}

	rows, err := xlsxFile.GetRows(sheetNames[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetNames[0], err)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return nil, ErrEmptyData
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		records = append(records, l.record(row, width))
	}

	return model.NewTable(name, model.PositionalHeader(width), records), nil
}

// parseParquet reads a Parquet file. Column names come from the file schema.
func (l *Loader) parseParquet(ctx context.Context, r io.Reader, name string) (*model.Table, error) {
	// Parquet requires random access
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	defer func() {
		_ = pqReader.Close()
	}()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	arrowTable, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet table: %w", err)
	}
	defer arrowTable.Release()

	if arrowTable.NumRows() == 0 {
		return nil, ErrEmptyData
	}

	fields := arrowTable.Schema().Fields()
	header := make(model.Header, len(fields))
	for i, field := range fields {
		header[i] = field.Name
	}

	tableReader := array.NewTableReader(arrowTable, 0)
	defer tableReader.Release()

	records := make([]model.Record, 0, arrowTable.NumRows())
	for tableReader.Next() {
		batch := tableReader.Record()
		for i := 0; i < int(batch.NumRows()); i++ {
			row := make(model.Record, len(header))
			for j, col := range batch.Columns() {
				if col.IsNull(i) {
					row[j] = model.NullCell()
					continue
				}
				row[j] = l.cell(col.ValueStr(i))
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("error reading parquet records: %w", err)
	}

	return model.NewTable(name, header, records), nil
}
