// Package csveda loads a headerless tabular file, names and cleans its
// columns, and prints descriptive statistics about it.
//
// It is tuned for the census income ("Adult") dataset but works on any
// delimited, Excel or Parquet file.
//
// # Stages
//
//   - Loader reads the file into a model.Table. Columns are labelled by
//     position, leading whitespace is dropped and NA tokens become missing.
//     CSV, TSV, XLSX and Parquet are supported, optionally compressed with
//     gzip, bzip2, xz or zstandard.
//   - Cleaner assigns the 15 canonical column names when the table has 15
//     columns, or col_0, col_1, ... otherwise (with a warning). Textual
//     columns are trimmed and the "?" sentinel becomes missing.
//   - Reporter prints the shape, per-column types and non-null counts, the
//     first rows, missing counts, the income distribution and an age summary.
//     Aggregations run on an in-memory SQLite copy of the table.
//
// # Basic Usage
//
//	if err := csveda.Run(ctx, "adults.csv", os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// # Advanced Usage
//
//	pipeline, err := csveda.NewBuilder().
//	    SetPath("adult.data.gz").
//	    SetLogger(logger).
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := pipeline.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Failure Modes
//
// A missing input file prints a diagnostic and ends the run without error.
// A target column that never holds the positive class (">50K") stops the
// report with an error wrapping ErrCategoryNotFound.
package csveda
