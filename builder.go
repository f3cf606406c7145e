package csveda

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/csveda/store"
)

// DefaultFilePath is the dataset analysed when no other path is set.
const DefaultFilePath = "adults.csv"

// Builder configures a Pipeline. Use NewBuilder to create a new instance,
// chain setters, then call Build to validate the settings.
//
// The typical usage pattern is:
//
//	pipeline, err := csveda.NewBuilder().SetOutput(os.Stdout).Build(ctx)
//	if err != nil {
//		return err
//	}
//	return pipeline.Run(ctx)
type Builder struct {
	path          string
	output        io.Writer
	logger        *slog.Logger
	columnNames   []string
	missingToken  string
	naValues      []string
	reportOptions ReportOptions
}

// NewBuilder creates a Builder for DefaultFilePath writing to standard output.
func NewBuilder() *Builder {
	return &Builder{
		path:          DefaultFilePath,
		output:        os.Stdout,
		logger:        slog.Default(),
		columnNames:   AdultColumnNames,
		missingToken:  DefaultMissingToken,
		naValues:      DefaultNAValues,
		reportOptions: DefaultReportOptions(),
	}
}

// SetPath sets the input file.
func (b *Builder) SetPath(path string) *Builder {
	b.path = path
	return b
}

// SetOutput sets where progress lines and the report are written.
func (b *Builder) SetOutput(w io.Writer) *Builder {
	b.output = w
	return b
}

// SetLogger sets the logger shared by every stage.
func (b *Builder) SetLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// SetColumnNames sets the names assigned by the Cleaner when the column count matches.
func (b *Builder) SetColumnNames(names []string) *Builder {
	b.columnNames = names
	return b
}

// SetMissingToken sets the sentinel the Cleaner turns into a missing cell.
func (b *Builder) SetMissingToken(token string) *Builder {
	b.missingToken = token
	return b
}

// SetNAValues sets the field values the Loader reads as missing.
func (b *Builder) SetNAValues(values []string) *Builder {
	b.naValues = values
	return b
}

// SetReportOptions sets what the Reporter prints.
func (b *Builder) SetReportOptions(opts ReportOptions) *Builder {
	b.reportOptions = opts
	return b
}

// Build validates the configuration and returns a ready Pipeline.
func (b *Builder) Build(ctx context.Context) (*Pipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var errs []error
	if b.path == "" {
		errs = append(errs, errors.New("path is empty"))
	}
	if b.output == nil {
		errs = append(errs, errors.New("output is nil"))
	}
	if b.logger == nil {
		errs = append(errs, errors.New("logger is nil"))
	}
	if len(b.columnNames) == 0 {
		errs = append(errs, errors.New("no column names"))
	}
	for _, name := range b.columnNames {
		if store.IsReservedColumnName(name) {
			errs = append(errs, fmt.Errorf("column name %q is reserved", name))
		}
	}
	if b.reportOptions.PreviewRows < 0 {
		errs = append(errs, fmt.Errorf("preview rows must not be negative: %d", b.reportOptions.PreviewRows))
	}
	if b.reportOptions.TargetColumn == "" || b.reportOptions.NumericColumn == "" {
		errs = append(errs, errors.New("target and numeric columns must be named"))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	cleaner := NewCleaner().
		WithColumnNames(b.columnNames).
		WithMissingToken(b.missingToken).
		WithWarningOutput(b.output).
		WithLogger(b.logger)

	return &Pipeline{
		path:     b.path,
		out:      b.output,
		logger:   b.logger,
		loader:   NewLoader().WithNAValues(b.naValues...).WithLogger(b.logger),
		cleaner:  cleaner,
		reporter: NewReporter(b.output, b.reportOptions),
	}, nil
}

// Pipeline runs Loader, Cleaner and Reporter in sequence over one file.
type Pipeline struct {
	path     string
	out      io.Writer
	logger   *slog.Logger
	loader   *Loader
	cleaner  *Cleaner
	reporter *Reporter
}

// Run loads, cleans and reports on the configured file.
//
// A missing file is not an error: Run prints a diagnostic, skips every later
// stage and returns nil. Any other failure is returned.
func (p *Pipeline) Run(ctx context.Context) error {
	fmt.Fprintf(p.out, "Loading data from %s...\n", p.path)

	table, err := p.loader.Load(ctx, p.path)
	if errors.Is(err, ErrFileNotFound) {
		fmt.Fprintf(p.out, "ERROR: File not found at %s. Please check the path.\n", p.path)
		p.logger.Debug("analysis skipped", "path", p.path, "error", err)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, "\nCleaning and naming columns...")
	table, err = p.cleaner.Clean(table)
	if err != nil {
		return err
	}

	return p.reporter.Report(ctx, table)
}
