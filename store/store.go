// Package store copies a model.Table into an in-memory SQLite database and
// answers the aggregate queries the report needs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/csveda/domain/model"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

var (
	// ErrColumnNotFound is returned when a query names a column the table does not have.
	ErrColumnNotFound = errors.New("store: column not found")

	// ErrReservedColumnName is returned when a column would shadow the SQLite rowid.
	ErrReservedColumnName = errors.New("store: reserved column name")
)

// IsReservedColumnName reports whether name is one of SQLite's rowid aliases.
// A user column with such a name hides the rowid that orders value-count ties.
func IsReservedColumnName(name string) bool {
	switch strings.ToLower(name) {
	case "rowid", "_rowid_", "oid":
		return true
	default:
		return false
	}
}

const (
	driverName       = "sqlite"
	inMemoryDSN      = ":memory:"
	defaultTableName = "data"
)

// Store is a read-mostly SQLite copy of one table.
type Store struct {
	db        *sql.DB
	tableName string
	columns   []model.ColumnInfo
}

// Open creates an in-memory database holding t. Column affinities follow the
// inferred column types and missing cells are stored as NULL.
func Open(ctx context.Context, t *model.Table) (*Store, error) {
	for _, col := range t.ColumnInfo() {
		if IsReservedColumnName(col.Name) {
			return nil, fmt.Errorf("%w: %s", ErrReservedColumnName, col.Name)
		}
	}

	db, err := sql.Open(driverName, inMemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:        db,
		tableName: t.Name(),
		columns:   t.ColumnInfo(),
	}
	if s.tableName == "" {
		s.tableName = defaultTableName
	}

	if err := s.load(ctx, t); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// DB returns the underlying database for ad hoc queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// TableName returns the name the table was created under.
func (s *Store) TableName() string {
	return s.tableName
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) load(ctx context.Context, t *model.Table) error {
	if _, err := s.db.ExecContext(ctx, s.buildCreateTableQuery()); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.tableName, err)
	}
	if len(t.Records()) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	stmt, err := tx.PrepareContext(ctx, s.buildInsertQuery())
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(s.columns))
	for _, record := range t.Records() {
		for i := range args {
			args[i] = nil
			if i < len(record) {
				v, err := record[i].Value()
				if err != nil {
					return err
				}
				args[i] = v
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// buildCreateTableQuery constructs a CREATE TABLE query for the stored table
func (s *Store) buildCreateTableQuery() string {
	columns := make([]string, 0, len(s.columns))
	for _, col := range s.columns {
		columns = append(columns, fmt.Sprintf("%s %s", quoteIdent(col.Name), col.Type.SQLType()))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(s.tableName), strings.Join(columns, ", "))
}

// buildInsertQuery constructs an INSERT query with one placeholder per column
func (s *Store) buildInsertQuery() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(s.tableName), placeholders)
}

func (s *Store) column(name string) (model.ColumnInfo, error) {
	for _, col := range s.columns {
		if col.Name == name {
			return col, nil
		}
	}
	return model.ColumnInfo{}, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}

// ValueCounts returns the frequency of each distinct non-missing value of the
// column, most frequent first. Ties keep the order of first appearance.
func (s *Store) ValueCounts(ctx context.Context, column string) ([]model.ValueCount, error) {
	col, err := s.column(column)
	if err != nil {
		return nil, err
	}

	c := quoteIdent(col.Name)
	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) AS n FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY n DESC, MIN(rowid)",
		c, quoteIdent(s.tableName), c, c,
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count values of %s: %w", column, err)
	}
	defer rows.Close()

	var (
		counts []model.ValueCount
		total  int
	)
	for rows.Next() {
		var vc model.ValueCount
		if err := rows.Scan(&vc.Value, &vc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan value count: %w", err)
		}
		total += vc.Count
		counts = append(counts, vc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range counts {
		counts[i].Percent = float64(counts[i].Count) * 100 / float64(total)
	}
	return counts, nil
}

// NumericValues returns the non-missing values of a numeric column in ascending order.
func (s *Store) NumericValues(ctx context.Context, column string) ([]float64, error) {
	col, err := s.column(column)
	if err != nil {
		return nil, err
	}
	if !col.Type.IsNumeric() {
		return nil, fmt.Errorf("column %s is %s, not numeric", column, col.Type)
	}

	c := quoteIdent(col.Name)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL ORDER BY %s", c, quoteIdent(s.tableName), c, c)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select values of %s: %w", column, err)
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// quoteIdent quotes an SQLite identifier
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
