package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/j-veylop/forge-insights-tui/internal/logger"
	"github.com/j-veylop/forge-insights-tui/internal/table"
)

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func nullString(s string) sql.NullString {
	if table.IsMissing(s) {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (db *DB) createEventsTable(columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("events table needs at least one column")
	}
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}

	query := fmt.Sprintf(`
	DROP TABLE IF EXISTS %[1]s;
	CREATE TABLE %[1]s (%[2]s);
	`, quoteIdent(EventsTable), strings.Join(defs, ", "))
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Columns returns the column names of the events table in declaration order.
func (db *DB) Columns(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", EventsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%s: no %q table", db.path, EventsTable)
	}
	return cols, nil
}

// CountEvents returns the number of rows in the events table.
func (db *DB) CountEvents(ctx context.Context) (int, error) {
	var n int
	query := "SELECT COUNT(*) FROM " + quoteIdent(EventsTable)
	if err := db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}

// LoadEvents reads the events table into memory in rowid order. NULL cells
// become empty strings. limit <= 0 reads every row.
func (db *DB) LoadEvents(ctx context.Context, limit int) (*table.Table, error) {
	cols, err := db.Columns(ctx)
	if err != nil {
		return nil, err
	}

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(quoted, ", "), quoteIdent(EventsTable))
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records [][]string
	cells := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		rec := make([]string, len(cols))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return table.New(cols, records)
}

// WriteEvents appends every row of t to the events table. Missing cells are
// stored as NULL.
func (db *DB) WriteEvents(ctx context.Context, t *table.Table) error {
	if db.readOnly {
		return fmt.Errorf("write events %s: database is read-only", db.path)
	}

	cols := t.Columns()
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
		marks[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(EventsTable), strings.Join(quoted, ", "), strings.Join(marks, ", "))

	records := t.Records()
	for start := 0; start < len(records); start += insertBatchSize {
		end := min(start+insertBatchSize, len(records))
		if err := db.insertBatch(ctx, query, records[start:end]); err != nil {
			return err
		}
		logger.Debug("wrote event batch", "path", db.path, "rows", end)
	}
	return nil
}

func (db *DB) insertBatch(ctx context.Context, query string, records [][]string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	args := make([]any, 0, 32)
	for _, rec := range records {
		args = args[:0]
		for _, v := range rec {
			args = append(args, nullString(v))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}
	return tx.Commit()
}
