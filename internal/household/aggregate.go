// Package household rolls person-level values up to the household and
// broadcasts the totals back to every member.
package household

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/rental-assist/internal/model"
)

// Field selects the per-person value to sum. A nil result counts as zero.
type Field func(rec *model.EnrichedRecord) *float64

// WageIncome selects the cleaned wage income.
func WageIncome(rec *model.EnrichedRecord) *float64 { return rec.Derived.WageIncome }

// Sum groups records by household and totals field over the members. The
// aggregates are returned in first-seen household order.
func Sum(records []model.EnrichedRecord, field Field) ([]model.HouseholdAggregate, error) {
	index := make(map[string]int)
	var out []model.HouseholdAggregate

	for i := range records {
		id := records[i].HouseholdID
		if id == "" {
			return nil, eris.Wrapf(model.ErrStructural, "household: record at row %d has no household id", records[i].Row)
		}
		pos, ok := index[id]
		if !ok {
			pos = len(out)
			index[id] = pos
			out = append(out, model.HouseholdAggregate{HouseholdID: id})
		}
		out[pos].Members++
		out[pos].Total += model.FloatOr(field(&records[i]), 0)
	}

	return out, nil
}

// Aggregate sums wage income per household and writes the total onto every
// member's HouseholdWageIncome.
func Aggregate(records []model.EnrichedRecord) ([]model.HouseholdAggregate, error) {
	aggs, err := Sum(records, WageIncome)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(aggs))
	for _, a := range aggs {
		totals[a.HouseholdID] = a.Total
	}
	for i := range records {
		records[i].HouseholdWageIncome = totals[records[i].HouseholdID]
	}

	return aggs, nil
}
