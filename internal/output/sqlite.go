package output

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/rental-assist/internal/model"
)

// SQLiteWriter stores runs in a local SQLite database. Rewriting a run id
// replaces its rows.
type SQLiteWriter struct {
	db   *sql.DB
	cols []Column
}

// OpenSQLite opens the database at path, configures WAL mode and creates the
// tables for the given record layout.
func OpenSQLite(ctx context.Context, path string, cols []Column) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	w := &SQLiteWriter{db: db, cols: cols}
	if err := w.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func sqliteType(t string) string {
	switch t {
	case TypeInt, TypeBool:
		return "INTEGER"
	case TypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

func (w *SQLiteWriter) migrate(ctx context.Context) error {
	defs := []string{"run_id TEXT NOT NULL"}
	for _, c := range w.cols {
		defs = append(defs, fmt.Sprintf("%q %s", c.Name, sqliteType(c.Type)))
	}
	defs = append(defs, `PRIMARY KEY (run_id, "row")`)

	stmts := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", RecordsTable, strings.Join(defs, ", ")),
		`CREATE TABLE IF NOT EXISTS households (
			run_id       TEXT NOT NULL,
			household_id TEXT NOT NULL,
			members      INTEGER NOT NULL,
			wage_income  REAL NOT NULL,
			PRIMARY KEY (run_id, household_id)
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			started_at  DATETIME NOT NULL,
			finished_at DATETIME NOT NULL,
			stats       TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := w.db.ExecContext(ctx, stmt); err != nil {
			return eris.Wrap(err, "sqlite: migrate")
		}
	}
	return w.checkRecordColumns(ctx)
}

// checkRecordColumns fails when an existing records table was created for a
// different column layout, e.g. another set of enhancements.
func (w *SQLiteWriter) checkRecordColumns(ctx context.Context) error {
	rows, err := w.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", RecordsTable)
	if err != nil {
		return eris.Wrap(err, "sqlite: read records columns")
	}
	defer rows.Close() //nolint:errcheck

	var have []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return eris.Wrap(err, "sqlite: scan records columns")
		}
		have = append(have, name)
	}
	if err := rows.Err(); err != nil {
		return eris.Wrap(err, "sqlite: read records columns")
	}

	want := append([]string{"run_id"}, ColumnNames(w.cols)...)
	if !sameColumns(have, want) {
		return eris.Errorf("sqlite: %s table has columns %v, this run writes %v; use a new database or drop the table",
			RecordsTable, have, want)
	}
	return nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, c := range a {
		set[c] = true
	}
	for _, c := range b {
		if !set[c] {
			return false
		}
	}
	return true
}

// WriteRecords replaces the run's enriched records.
func (w *SQLiteWriter) WriteRecords(ctx context.Context, runID string, records []model.EnrichedRecord) error {
	names := make([]string, 0, len(w.cols)+1)
	names = append(names, "run_id")
	for _, c := range w.cols {
		names = append(names, fmt.Sprintf("%q", c.Name))
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		RecordsTable, strings.Join(names, ", "), placeholders(len(names)))

	err := w.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+RecordsTable+" WHERE run_id = ?", runID); err != nil {
			return eris.Wrap(err, "sqlite: clear records")
		}
		stmt, err := tx.PrepareContext(ctx, insert)
		if err != nil {
			return eris.Wrap(err, "sqlite: prepare insert")
		}
		defer stmt.Close() //nolint:errcheck

		args := make([]any, len(names))
		args[0] = runID
		for i := range records {
			for j, c := range w.cols {
				args[j+1] = c.Value(&records[i])
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return eris.Wrapf(err, "sqlite: insert row %d", records[i].Row)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("wrote records to sqlite", zap.String("run_id", runID), zap.Int("rows", len(records)))
	return nil
}

// WriteHouseholds upserts the run's household aggregates.
func (w *SQLiteWriter) WriteHouseholds(ctx context.Context, runID string, households []model.HouseholdAggregate) error {
	return w.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT OR REPLACE INTO households (run_id, household_id, members, wage_income) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return eris.Wrap(err, "sqlite: prepare household insert")
		}
		defer stmt.Close() //nolint:errcheck

		for _, h := range households {
			if _, err := stmt.ExecContext(ctx, runID, h.HouseholdID, h.Members, h.Total); err != nil {
				return eris.Wrapf(err, "sqlite: insert household %s", h.HouseholdID)
			}
		}
		return nil
	})
}

// WriteRun records the run summary.
func (w *SQLiteWriter) WriteRun(ctx context.Context, run Run) error {
	stats, err := json.Marshal(run.Stats)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal stats")
	}
	_, err = w.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, started_at, finished_at, stats) VALUES (?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), string(stats),
	)
	return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
}

// Close closes the database.
func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}

func (w *SQLiteWriter) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
