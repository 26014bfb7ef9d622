package output

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/db"
	"github.com/sells-group/rental-assist/internal/model"
)

// PostgresWriter stores runs in a Postgres schema. Records are loaded with
// COPY; households and runs are upserted.
type PostgresWriter struct {
	pool   db.Pool
	schema string
	cols   []Column
	closer func()
}

// NewPostgresWriter creates a writer on an existing pool.
func NewPostgresWriter(pool db.Pool, schema string, cols []Column) *PostgresWriter {
	if schema == "" {
		schema = "public"
	}
	return &PostgresWriter{pool: pool, schema: schema, cols: cols}
}

func pgType(t string) string {
	switch t {
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "double precision"
	case TypeBool:
		return "boolean"
	default:
		return "text"
	}
}

// RecordTableColumns returns the Postgres layout of the records table.
func RecordTableColumns(cols []Column) []db.Column {
	out := make([]db.Column, 0, len(cols)+1)
	out = append(out, db.Column{Name: "run_id", Type: "text NOT NULL"})
	for _, c := range cols {
		out = append(out, db.Column{Name: c.Name, Type: pgType(c.Type)})
	}
	return out
}

var householdTable = []db.Column{
	{Name: "run_id", Type: "text NOT NULL"},
	{Name: "household_id", Type: "text NOT NULL"},
	{Name: "members", Type: "integer NOT NULL"},
	{Name: "wage_income", Type: "double precision NOT NULL"},
}

var runTable = []db.Column{
	{Name: "id", Type: "text NOT NULL"},
	{Name: "started_at", Type: "timestamptz NOT NULL"},
	{Name: "finished_at", Type: "timestamptz NOT NULL"},
	{Name: "stats", Type: "jsonb"},
}

// WriteRecords replaces the run's records. The delete and the COPY share one
// transaction, so a failed load leaves the previous rows in place.
func (w *PostgresWriter) WriteRecords(ctx context.Context, runID string, records []model.EnrichedRecord) error {
	if err := db.EnsureTable(ctx, w.pool, w.schema, RecordsTable, RecordTableColumns(w.cols), []string{"run_id", "row"}); err != nil {
		return eris.Wrap(err, "output: ensure records table")
	}

	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "output: begin records tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	del := fmt.Sprintf("DELETE FROM %s WHERE run_id = $1", pgx.Identifier{w.schema, RecordsTable}.Sanitize())
	if _, err := tx.Exec(ctx, del, runID); err != nil {
		return eris.Wrapf(err, "output: clear run %s", runID)
	}

	rows := make([][]any, len(records))
	for i := range records {
		row := make([]any, 0, len(w.cols)+1)
		row = append(row, runID)
		for _, c := range w.cols {
			row = append(row, c.Value(&records[i]))
		}
		rows[i] = row
	}

	names := append([]string{"run_id"}, ColumnNames(w.cols)...)
	n, err := db.CopyFromSchema(ctx, tx, w.schema, RecordsTable, names, rows)
	if err != nil {
		return eris.Wrap(err, "output: copy records")
	}
	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "output: commit records")
	}

	zap.L().Info("wrote records to postgres",
		zap.String("run_id", runID),
		zap.String("schema", w.schema),
		zap.Int64("rows", n),
	)
	return nil
}

// WriteHouseholds upserts the run's household aggregates.
func (w *PostgresWriter) WriteHouseholds(ctx context.Context, runID string, households []model.HouseholdAggregate) error {
	if err := db.EnsureTable(ctx, w.pool, w.schema, HouseholdsTable, householdTable, []string{"run_id", "household_id"}); err != nil {
		return eris.Wrap(err, "output: ensure households table")
	}

	rows := make([][]any, len(households))
	for i, h := range households {
		rows[i] = append([]any{runID}, householdValues(h)...)
	}

	_, err := db.BulkUpsert(ctx, w.pool, db.UpsertConfig{
		Table:        w.schema + "." + HouseholdsTable,
		Columns:      append([]string{"run_id"}, householdColumns...),
		ConflictKeys: []string{"run_id", "household_id"},
	}, rows)
	return eris.Wrap(err, "output: upsert households")
}

// WriteRun upserts the run summary.
func (w *PostgresWriter) WriteRun(ctx context.Context, run Run) error {
	if err := db.EnsureTable(ctx, w.pool, w.schema, RunsTable, runTable, []string{"id"}); err != nil {
		return eris.Wrap(err, "output: ensure runs table")
	}

	stats, err := json.Marshal(run.Stats)
	if err != nil {
		return eris.Wrap(err, "output: marshal stats")
	}

	sql := fmt.Sprintf(`INSERT INTO %s (id, started_at, finished_at, stats) VALUES ($1, $2, $3, $4::jsonb)
		ON CONFLICT (id) DO UPDATE SET started_at = EXCLUDED.started_at, finished_at = EXCLUDED.finished_at, stats = EXCLUDED.stats`,
		pgx.Identifier{w.schema, RunsTable}.Sanitize())
	if _, err := w.pool.Exec(ctx, sql, run.ID, run.StartedAt, run.FinishedAt, string(stats)); err != nil {
		return eris.Wrapf(err, "output: insert run %s", run.ID)
	}
	return nil
}

// Close releases the pool when the writer opened it.
func (w *PostgresWriter) Close() error {
	if w.closer != nil {
		w.closer()
	}
	return nil
}
