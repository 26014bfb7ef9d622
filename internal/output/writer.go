package output

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/rental-assist/internal/config"
	"github.com/sells-group/rental-assist/internal/db"
	"github.com/sells-group/rental-assist/internal/model"
)

// Output formats.
const (
	FormatCSV      = "csv"
	FormatSQLite   = "sqlite"
	FormatPostgres = "postgres"
)

// Table names used by the database sinks.
const (
	RecordsTable    = "enriched_records"
	HouseholdsTable = "households"
	RunsTable       = "runs"
)

// Run describes one pipeline execution. Stats is stored as JSON.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Stats      any       `json:"stats"`
}

// Writer persists one run's results.
type Writer interface {
	WriteRun(ctx context.Context, run Run) error
	WriteRecords(ctx context.Context, runID string, records []model.EnrichedRecord) error
	WriteHouseholds(ctx context.Context, runID string, households []model.HouseholdAggregate) error
	Close() error
}

// Open creates the writer selected by cfg.Format.
func Open(ctx context.Context, cfg config.OutputConfig, cols []Column) (Writer, error) {
	switch strings.ToLower(cfg.Format) {
	case FormatCSV, "":
		return NewCSVWriter(cfg.Path, cols), nil
	case FormatSQLite:
		return OpenSQLite(ctx, cfg.Path, cols)
	case FormatPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "output: connect postgres")
		}
		w := NewPostgresWriter(pool, cfg.Schema, cols)
		w.closer = pool.Close
		return w, nil
	default:
		return nil, eris.Errorf("output: unknown format %q", cfg.Format)
	}
}

// siblingPath derives a companion file name from the records path:
// siblingPath("enriched.csv", "households", ".csv") is enriched_households.csv.
func siblingPath(recordsPath, suffix, ext string) string {
	base := strings.TrimSuffix(recordsPath, filepath.Ext(recordsPath))
	return base + "_" + suffix + ext
}
