package household

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/rental-assist/internal/model"
)

func member(hh string, pernum int, wage *float64) model.EnrichedRecord {
	return model.EnrichedRecord{
		PersonRecord: model.PersonRecord{HouseholdID: hh, PersonNumber: pernum},
		Derived:      model.Derived{WageIncome: wage},
	}
}

func TestAggregate_NullCountsAsZero(t *testing.T) {
	t.Parallel()
	records := []model.EnrichedRecord{
		member("A", 1, nil),
		member("A", 2, model.Float(2000)),
		member("A", 3, model.Float(3000)),
	}

	aggs, err := Aggregate(records)
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.Equal(t, model.HouseholdAggregate{HouseholdID: "A", Members: 3, Total: 5000}, aggs[0])

	for _, r := range records {
		assert.Equal(t, 5000.0, r.HouseholdWageIncome)
	}
}

func TestAggregate_InterleavedHouseholds(t *testing.T) {
	t.Parallel()
	records := []model.EnrichedRecord{
		member("A", 1, model.Float(100)),
		member("B", 1, model.Float(7)),
		member("A", 2, model.Float(50)),
		member("C", 1, nil),
		member("B", 2, model.Float(0)),
	}

	aggs, err := Aggregate(records)
	require.NoError(t, err)
	require.Len(t, aggs, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{aggs[0].HouseholdID, aggs[1].HouseholdID, aggs[2].HouseholdID})

	want := map[string]float64{"A": 150, "B": 7, "C": 0}
	for _, r := range records {
		assert.Equal(t, want[r.HouseholdID], r.HouseholdWageIncome, "household %s", r.HouseholdID)
	}
	assert.Equal(t, 2, aggs[0].Members)
	assert.Equal(t, 1, aggs[2].Members)
}

func TestAggregate_SinglePersonHousehold(t *testing.T) {
	t.Parallel()
	records := []model.EnrichedRecord{member("S", 1, model.Float(41000))}
	_, err := Aggregate(records)
	require.NoError(t, err)
	assert.Equal(t, 41000.0, records[0].HouseholdWageIncome)
}

func TestAggregate_EmptyHouseholdID(t *testing.T) {
	t.Parallel()
	records := []model.EnrichedRecord{member("A", 1, nil), member("", 1, nil)}
	_, err := Aggregate(records)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrStructural))
	assert.Contains(t, err.Error(), "no household id")
}

func TestSum_CustomField(t *testing.T) {
	t.Parallel()
	records := []model.EnrichedRecord{
		member("A", 1, nil),
		member("A", 2, nil),
	}
	records[0].RentPaid = model.Float(900)

	aggs, err := Sum(records, func(r *model.EnrichedRecord) *float64 { return r.RentPaid })
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.Equal(t, 900.0, aggs[0].Total)
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()
	aggs, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Empty(t, aggs)
}
