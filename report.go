package csveda

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/csveda/domain/model"
	"github.com/nao1215/csveda/store"
)

// ReportOptions selects what the Reporter prints beyond the generic sections.
type ReportOptions struct {
	// PreviewRows is the number of leading rows printed.
	PreviewRows int
	// TargetColumn is the column whose class distribution is printed when present.
	TargetColumn string
	// PositiveClass is the TargetColumn value whose share is called out. It must be observed.
	PositiveClass string
	// PositiveClassLabel completes the sentence "NN.NN% of people <label>."
	PositiveClassLabel string
	// NumericColumn is the column summarised when present.
	NumericColumn string
}

// DefaultReportOptions returns the options for the census income dataset.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		PreviewRows:        5,
		TargetColumn:       "income",
		PositiveClass:      ">50K",
		PositiveClassLabel: "earn more than $50K",
		NumericColumn:      "age",
	}
}

// Reporter prints descriptive statistics of a cleaned table.
type Reporter struct {
	w    io.Writer
	opts ReportOptions
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer, opts ReportOptions) *Reporter {
	return &Reporter{w: w, opts: opts}
}

// Report writes, in order: shape, column info, the first rows, missing counts,
// the target distribution and the numeric summary. The last two are skipped
// when their column does not exist.
//
// If the target column exists but never holds PositiveClass, Report stops after
// printing the distribution and returns an error wrapping ErrCategoryNotFound.
func (r *Reporter) Report(ctx context.Context, t *model.Table) error {
	st, err := store.Open(ctx, t)
	if err != nil {
		return NewErrorContext("report", "").Error(err)
	}
	defer st.Close()

	fmt.Fprintln(r.w, "\n--- Exploratory Data Analysis (EDA) ---")

	rows, cols := t.Shape()
	fmt.Fprintf(r.w, "\nTable Shape: (%d, %d)\n", rows, cols)

	steps := []func() error{
		func() error { return r.writeInfo(t) },
		func() error { return r.writeHead(t) },
		func() error { return r.writeMissing(t) },
	}
	if _, ok := t.ColumnIndex(r.opts.TargetColumn); ok {
		steps = append(steps, func() error { return r.writeDistribution(ctx, st) })
	}
	if i, ok := t.ColumnIndex(r.opts.NumericColumn); ok {
		columnType := t.ColumnInfo()[i].Type
		steps = append(steps, func() error { return r.writeSummary(ctx, st, columnType) })
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
}

func (r *Reporter) writeInfo(t *model.Table) error {
	fmt.Fprintln(r.w, "\nTable Info:")
	if t.NumRows() == 0 {
		fmt.Fprintln(r.w, "RangeIndex: 0 entries")
	} else {
		fmt.Fprintf(r.w, "RangeIndex: %d entries, 0 to %d\n", t.NumRows(), t.NumRows()-1)
	}
	fmt.Fprintf(r.w, "Data columns (total %d columns):\n", t.NumColumns())

	tw := r.newTabWriter()
	fmt.Fprintln(tw, " #\tColumn\tNon-Null Count\tDtype")
	fmt.Fprintln(tw, "---\t------\t--------------\t-----")
	for i, info := range t.ColumnInfo() {
		fmt.Fprintf(tw, " %d\t%s\t%d non-null\t%s\n", i, info.Name, t.NonNullCount(i), info.Type)
	}
	return tw.Flush()
}

func (r *Reporter) writeHead(t *model.Table) error {
	fmt.Fprintf(r.w, "\nFirst %d Rows of the Data:\n", r.opts.PreviewRows)

	tw := r.newTabWriter()
	fmt.Fprintf(tw, "\t%s\n", strings.Join(t.Header(), "\t"))
	for i, record := range t.Head(r.opts.PreviewRows) {
		fmt.Fprintf(tw, "%d\t%s\n", i, strings.Join(record.Strings(), "\t"))
	}
	return tw.Flush()
}

func (r *Reporter) writeMissing(t *model.Table) error {
	fmt.Fprintln(r.w, "\nMissing Values Count:")

	tw := r.newTabWriter()
	for i, name := range t.Header() {
		fmt.Fprintf(tw, "%s\t%d\n", name, t.NullCount(i))
	}
	return tw.Flush()
}

func (r *Reporter) writeDistribution(ctx context.Context, st *store.Store) error {
	column := r.opts.TargetColumn
	counts, err := st.ValueCounts(ctx, column)
	if err != nil {
		return NewErrorContext("report", "").WithColumn(column).Error(err)
	}

	fmt.Fprintf(r.w, "\n%s Distribution:\n", titleCase(column))
	tw := r.newTabWriter()
	fmt.Fprintln(tw, column)
	for _, vc := range counts {
		fmt.Fprintf(tw, "%s\t%f\n", vc.Value, vc.Percent)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, vc := range counts {
		if vc.Value == r.opts.PositiveClass {
			fmt.Fprintf(r.w, "\n%.2f%% of people %s.\n", vc.Percent, r.opts.PositiveClassLabel)
			return nil
		}
	}
	return NewErrorContext("report", "").
		WithColumn(column).
		WithDetails(fmt.Sprintf("value %q never observed", r.opts.PositiveClass)).
		Error(ErrCategoryNotFound)
}

func (r *Reporter) writeSummary(ctx context.Context, st *store.Store, columnType model.ColumnType) error {
	column := r.opts.NumericColumn
	fmt.Fprintf(r.w, "\n%s Statistics:\n", titleCase(column))

	tw := r.newTabWriter()
	if columnType.IsNumeric() {
		values, err := st.NumericValues(ctx, column)
		if err != nil {
			return NewErrorContext("report", "").WithColumn(column).Error(err)
		}
		s := model.DescribeNumeric(values)
		fmt.Fprintf(tw, "count\t%f\n", float64(s.Count))
		fmt.Fprintf(tw, "mean\t%f\n", s.Mean)
		fmt.Fprintf(tw, "std\t%f\n", s.Std)
		fmt.Fprintf(tw, "min\t%f\n", s.Min)
		fmt.Fprintf(tw, "25%%\t%f\n", s.Q1)
		fmt.Fprintf(tw, "50%%\t%f\n", s.Median)
		fmt.Fprintf(tw, "75%%\t%f\n", s.Q3)
		fmt.Fprintf(tw, "max\t%f\n", s.Max)
	} else {
		counts, err := st.ValueCounts(ctx, column)
		if err != nil {
			return NewErrorContext("report", "").WithColumn(column).Error(err)
		}
		s := model.DescribeCategorical(counts)
		fmt.Fprintf(tw, "count\t%d\n", s.Count)
		fmt.Fprintf(tw, "unique\t%d\n", s.Unique)
		fmt.Fprintf(tw, "top\t%s\n", s.Top)
		fmt.Fprintf(tw, "freq\t%d\n", s.Freq)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(r.w, "Name: %s, dtype: %s\n", column, columnType)
	return nil
}

// titleCase upper-cases the first byte of an ASCII column name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
