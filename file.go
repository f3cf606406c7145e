package csveda

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/csveda/domain/model"
)

// FileType represents supported input formats
type FileType int

const (
	// FileTypeCSV represents comma-separated text. Files with an unrecognised
	// extension (for example "adult.data") are read as CSV.
	FileTypeCSV FileType = iota
	// FileTypeTSV represents tab-separated text
	FileTypeTSV
	// FileTypeXLSX represents an Excel workbook; only the first sheet is read
	FileTypeXLSX
	// FileTypeParquet represents an Apache Parquet file
	FileTypeParquet
)

// File extensions
const (
	// ExtCSV is the CSV file extension
	ExtCSV = ".csv"
	// ExtTSV is the TSV file extension
	ExtTSV = ".tsv"
	// ExtXLSX is the Excel file extension
	ExtXLSX = ".xlsx"
	// ExtParquet is the Parquet file extension
	ExtParquet = ".parquet"
)

// String returns the format name
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeTSV:
		return "TSV"
	case FileTypeXLSX:
		return "XLSX"
	case FileTypeParquet:
		return "Parquet"
	default:
		return "unknown"
	}
}

// file is an input path with its detected format and compression
type file struct {
	path            string
	fileType        FileType
	compressionType CompressionType
}

// newFile creates a new file
func newFile(path string) *file {
	compressionType, base := compressionFromPath(path)
	return &file{
		path:            path,
		fileType:        detectFileType(base),
		compressionType: compressionType,
	}
}

// detectFileType detects the format from the extension of an uncompressed path
func detectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtTSV:
		return FileTypeTSV
	case ExtXLSX:
		return FileTypeXLSX
	case ExtParquet:
		return FileTypeParquet
	default:
		return FileTypeCSV
	}
}

// tableName returns the table name derived from the path
func (f *file) tableName() string {
	return model.TableFromFilePath(f.path)
}

// openReader opens the file and returns a reader that handles compression.
// A missing file is reported as ErrFileNotFound, an unreadable one as ErrPermissionDenied.
func (f *file) openReader() (io.Reader, func() error, error) {
	osFile, err := os.Open(f.path)
	if err != nil {
		ec := NewErrorContext("open", f.path).WithDetails(err.Error())
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, nil, ec.Error(ErrFileNotFound)
		case errors.Is(err, fs.ErrPermission):
			return nil, nil, ec.Error(ErrPermissionDenied)
		default:
			return nil, nil, ec.Error(err)
		}
	}

	reader, closeDecompressor, err := newDecompressingReader(osFile, f.compressionType)
	if err != nil {
		_ = osFile.Close()
		return nil, nil, NewErrorContext("decompress", f.path).Error(err)
	}

	return reader, func() error {
		if err := closeDecompressor(); err != nil {
			_ = osFile.Close()
			return err
		}
		return osFile.Close()
	}, nil
}
