package csveda

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nao1215/csveda/domain/model"
)

// AdultColumnNames are the canonical column names of the census income dataset, in file order.
var AdultColumnNames = []string{
	"age", "workclass", "fnlwgt", "education", "education_num",
	"marital_status", "occupation", "relationship", "race", "sex",
	"capital_gain", "capital_loss", "hours_per_week", "native_country",
	"income",
}

// DefaultMissingToken is the sentinel the dataset uses for an unknown value.
const DefaultMissingToken = "?"

// Cleaner names the columns of a loaded table and normalises its text values.
type Cleaner struct {
	columnNames  []string
	missingToken string
	warnings     io.Writer
	logger       *slog.Logger
}

// NewCleaner creates a Cleaner using AdultColumnNames and DefaultMissingToken.
func NewCleaner() *Cleaner {
	return &Cleaner{
		columnNames:  AdultColumnNames,
		missingToken: DefaultMissingToken,
		logger:       slog.Default(),
	}
}

// WithColumnNames sets the names assigned when the column count matches.
func (c *Cleaner) WithColumnNames(names []string) *Cleaner {
	c.columnNames = append([]string(nil), names...)
	return c
}

// WithMissingToken sets the value replaced by the missing marker.
func (c *Cleaner) WithMissingToken(token string) *Cleaner {
	c.missingToken = token
	return c
}

// WithWarningOutput makes the column-count warning a "WARNING: ..." line on w.
// The log record is then demoted to debug level so it is not shown twice.
func (c *Cleaner) WithWarningOutput(w io.Writer) *Cleaner {
	c.warnings = w
	return c
}

// WithLogger sets the logger the column-count warning is written to.
func (c *Cleaner) WithLogger(logger *slog.Logger) *Cleaner {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Clean mutates t in place and returns it.
//
// The configured names are assigned only when the table has exactly that many
// columns. Otherwise a warning is emitted and the columns become col_0, col_1, ...
// Every textual column is then trimmed and cells equal to the missing token
// become missing. Numeric columns are left untouched and column types are not
// re-inferred.
func (c *Cleaner) Clean(t *model.Table) (*model.Table, error) {
	names := model.Header(c.columnNames)
	if t.NumColumns() != len(names) {
		c.warnColumnCount(len(names), t.NumColumns())
		names = model.GenericHeader(t.NumColumns())
	}
	if err := t.Rename(names); err != nil {
		return nil, fmt.Errorf("failed to name columns: %w", err)
	}

	for i, info := range t.ColumnInfo() {
		if !info.Type.IsTextual() {
			continue
		}
		t.MapColumn(i, c.cleanCell)
	}
	return t, nil
}

func (c *Cleaner) warnColumnCount(expected, found int) {
	msg := fmt.Sprintf("Expected %d columns but found %d. Using generic names.", expected, found)
	if c.warnings == nil {
		c.logger.Warn(msg, "expected", expected, "found", found)
		return
	}
	fmt.Fprintf(c.warnings, "WARNING: %s\n", msg)
	c.logger.Debug(msg, "expected", expected, "found", found)
}

func (c *Cleaner) cleanCell(cell model.Cell) model.Cell {
	if cell.IsNull() {
		return cell
	}
	v := strings.TrimSpace(cell.Raw())
	if v == c.missingToken {
		return model.NullCell()
	}
	return model.NewCell(v)
}
