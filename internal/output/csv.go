package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/model"
)

// CSVWriter writes records to Path and household aggregates next to it.
type CSVWriter struct {
	Path string
	cols []Column
}

// NewCSVWriter creates a CSV writer for the given column layout.
func NewCSVWriter(path string, cols []Column) *CSVWriter {
	return &CSVWriter{Path: path, cols: cols}
}

// WriteRecords writes the enriched records file. The run id is logged, not
// written; each file holds a single run.
func (w *CSVWriter) WriteRecords(_ context.Context, runID string, records []model.EnrichedRecord) error {
	if err := writeFile(w.Path, func(out io.Writer) error {
		return WriteRecordsCSV(out, w.cols, records)
	}); err != nil {
		return err
	}
	zap.L().Info("wrote records csv", zap.String("run_id", runID), zap.String("path", w.Path), zap.Int("rows", len(records)))
	return nil
}

// WriteHouseholds writes the household aggregate file.
func (w *CSVWriter) WriteHouseholds(_ context.Context, runID string, households []model.HouseholdAggregate) error {
	path := siblingPath(w.Path, HouseholdsTable, ".csv")
	if err := writeFile(path, func(out io.Writer) error {
		return WriteHouseholdsCSV(out, households)
	}); err != nil {
		return err
	}
	zap.L().Info("wrote households csv", zap.String("run_id", runID), zap.String("path", path), zap.Int("rows", len(households)))
	return nil
}

// WriteRun writes the run summary as JSON beside the records file.
func (w *CSVWriter) WriteRun(_ context.Context, run Run) error {
	return writeFile(siblingPath(w.Path, "run", ".json"), func(out io.Writer) error {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(run), "output: encode run")
	})
}

// Close is a no-op; files are closed after each write.
func (w *CSVWriter) Close() error { return nil }

// WriteRecordsCSV writes a header and one line per record.
func WriteRecordsCSV(out io.Writer, cols []Column, records []model.EnrichedRecord) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(ColumnNames(cols)); err != nil {
		return eris.Wrap(err, "output: write csv header")
	}

	line := make([]string, len(cols))
	for i := range records {
		for j, c := range cols {
			line[j] = formatCell(c.Value(&records[i]))
		}
		if err := cw.Write(line); err != nil {
			return eris.Wrapf(err, "output: write csv row %d", records[i].Row)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "output: flush csv")
}

// WriteHouseholdsCSV writes the household aggregates.
func WriteHouseholdsCSV(out io.Writer, households []model.HouseholdAggregate) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(householdColumns); err != nil {
		return eris.Wrap(err, "output: write csv header")
	}
	for _, h := range households {
		vals := householdValues(h)
		line := make([]string, len(vals))
		for i, v := range vals {
			line[i] = formatCell(v)
		}
		if err := cw.Write(line); err != nil {
			return eris.Wrapf(err, "output: write household %s", h.HouseholdID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "output: flush csv")
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "output: create %s", path)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "output: close %s", path)
}
