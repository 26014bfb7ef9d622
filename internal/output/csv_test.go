package output

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/rental-assist/internal/crosswalk"
	"github.com/sells-group/rental-assist/internal/model"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteRecordsCSV_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecordsCSV(&buf, RecordColumns(testEnhancements), testRecords()))
	newGoldie(t).Assert(t, "records", buf.Bytes())
}

func TestWriteHouseholdsCSV_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHouseholdsCSV(&buf, testHouseholds()))
	newGoldie(t).Assert(t, "households", buf.Bytes())
}

func TestWriteResolutionCSV_Golden(t *testing.T) {
	a := model.GeoKey{State: "36", SubArea: "03701"}
	b := model.GeoKey{State: "36", SubArea: "03702"}
	res := crosswalk.Resolution{
		Mapping: crosswalk.Mapping{
			a: {County: "36061", Fraction: 0.5},
			b: {County: "36047", Fraction: 1},
		},
		Order: []model.GeoKey{a, b},
		Ties: []crosswalk.Tie{
			{Key: a, Counties: []string{"36061", "36081"}, Chosen: "36061", Fraction: 0.5},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResolutionCSV(&buf, res))
	newGoldie(t).Assert(t, "resolution", buf.Bytes())
}

func TestCSVWriter_Files(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(filepath.Join(dir, "enriched.csv"), RecordColumns(testEnhancements))
	ctx := context.Background()

	require.NoError(t, w.WriteRecords(ctx, "run-1", testRecords()))
	require.NoError(t, w.WriteHouseholds(ctx, "run-1", testHouseholds()))
	require.NoError(t, w.WriteRun(ctx, Run{
		ID:         "run-1",
		StartedAt:  time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2020, 6, 1, 0, 1, 0, 0, time.UTC),
		Stats:      map[string]int{"persons": 2},
	}))
	require.NoError(t, w.Close())

	records, err := os.ReadFile(filepath.Join(dir, "enriched.csv"))
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(records, []byte("\n")))

	households, err := os.ReadFile(filepath.Join(dir, "enriched_households.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(households), "100,3,40000")

	raw, err := os.ReadFile(filepath.Join(dir, "enriched_run.json"))
	require.NoError(t, err)
	var run map[string]any
	require.NoError(t, json.Unmarshal(raw, &run))
	assert.Equal(t, "run-1", run["id"])
	assert.Equal(t, map[string]any{"persons": float64(2)}, run["stats"])
}

func TestCSVWriter_BadPath(t *testing.T) {
	w := NewCSVWriter(filepath.Join(t.TempDir(), "missing", "enriched.csv"), RecordColumns(nil))
	err := w.WriteRecords(context.Background(), "run-1", testRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output: create")
}

func TestRecordColumns(t *testing.T) {
	cols := RecordColumns(nil)
	names := ColumnNames(cols)
	assert.Equal(t, "row", names[0])
	assert.Equal(t, "household_wage_income", names[len(names)-1])
	assert.NotContains(t, names, "fpuc_monthly")

	withEnh := ColumnNames(RecordColumns(testEnhancements))
	assert.Len(t, withEnh, len(names)+2)
	assert.Equal(t, "fpuc_monthly", withEnh[len(withEnh)-3])

	seen := map[string]bool{}
	for _, n := range withEnh {
		assert.False(t, seen[n], "duplicate column %s", n)
		seen[n] = true
	}
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "x", formatCell("x"))
	assert.Equal(t, "7", formatCell(7))
	assert.Equal(t, "0.1", formatCell(0.1))
	assert.Equal(t, "1234567.5", formatCell(1234567.5))
	assert.Equal(t, "true", formatCell(true))
	assert.Equal(t, "", formatCell(struct{}{}))
}

func TestSiblingPath(t *testing.T) {
	assert.Equal(t, "out/enriched_households.csv", siblingPath("out/enriched.csv", "households", ".csv"))
	assert.Equal(t, "out/enriched_run.json", siblingPath("out/enriched.csv", "run", ".json"))
	assert.Equal(t, "enriched_households.csv", siblingPath("enriched", "households", ".csv"))
}
