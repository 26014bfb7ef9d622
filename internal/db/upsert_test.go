package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func householdUpsert() UpsertConfig {
	return UpsertConfig{
		Table:        "rental.households",
		Columns:      []string{"run_id", "household_id", "members", "wage_income"},
		ConflictKeys: []string{"run_id", "household_id"},
	}
}

func TestBulkUpsert_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE "_tmp_upsert_rental_households" \(LIKE "rental"\."households" INCLUDING DEFAULTS\) ON COMMIT DROP`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_rental_households"}, householdUpsert().Columns).WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO "rental"\."households" .* ON CONFLICT \("run_id", "household_id"\) DO UPDATE SET "members" = EXCLUDED\."members", "wage_income" = EXCLUDED\."wage_income"`).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	rows := [][]any{{"r1", "100", 3, 40000.0}, {"r1", "200", 1, 0.0}}
	n, err := BulkUpsert(context.Background(), mock, householdUpsert(), rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsert_DoNothingWhenOnlyKeys(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cfg := UpsertConfig{Table: "runs", Columns: []string{"run_id"}, ConflictKeys: []string{"run_id"}}

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_runs"}, cfg.Columns).WillReturnResult(1)
	mock.ExpectExec(`ON CONFLICT \("run_id"\) DO NOTHING`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	n, err := BulkUpsert(context.Background(), mock, cfg, [][]any{{"r1"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsert_CopyError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_rental_households"}, householdUpsert().Columns).
		WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	_, err = BulkUpsert(context.Background(), mock, householdUpsert(), [][]any{{"r1", "100", 1, 0.0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY into temp table for rental.households")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsert_BeginError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(fmt.Errorf("connection refused"))

	_, err = BulkUpsert(context.Background(), mock, householdUpsert(), [][]any{{"r1", "100", 1, 0.0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
}

func TestBulkUpsert_Validation(t *testing.T) {
	n, err := BulkUpsert(context.Background(), nil, householdUpsert(), nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = BulkUpsert(context.Background(), nil, UpsertConfig{Table: "t", ConflictKeys: []string{"id"}}, [][]any{{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns specified")

	_, err = BulkUpsert(context.Background(), nil, UpsertConfig{Table: "t", Columns: []string{"id"}}, [][]any{{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no conflict keys specified")
}

func TestSanitizeTable(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", `"simple"`},
		{"rental.households", `"rental"."households"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeTable(tt.input))
		})
	}
}

func TestQuoteAndJoin(t *testing.T) {
	assert.Equal(t, `"run_id", "household_id"`, quoteAndJoin([]string{"run_id", "household_id"}))
}
