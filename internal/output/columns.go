// Package output writes enriched person records and household aggregates to
// CSV files, SQLite or Postgres.
package output

import (
	"strconv"

	"github.com/sells-group/rental-assist/internal/model"
)

// Column types shared by the sinks.
const (
	TypeInt   = "int"
	TypeFloat = "float"
	TypeText  = "text"
	TypeBool  = "bool"
)

// Column is one output field. Value returns nil for a null cell.
type Column struct {
	Name  string
	Type  string
	Value func(r *model.EnrichedRecord) any
}

func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullBool(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// RecordColumns returns the enriched-record layout. One monthly column is
// appended per enhancement name, in order.
func RecordColumns(enhancements []string) []Column {
	cols := []Column{
		{"row", TypeInt, func(r *model.EnrichedRecord) any { return r.Row }},
		{"household_id", TypeText, func(r *model.EnrichedRecord) any { return r.HouseholdID }},
		{"person_number", TypeInt, func(r *model.EnrichedRecord) any { return r.PersonNumber }},
		{"state", TypeText, func(r *model.EnrichedRecord) any { return r.State }},
		{"sub_area", TypeText, func(r *model.EnrichedRecord) any { return r.SubArea }},
		{"household_size", TypeInt, func(r *model.EnrichedRecord) any { return r.HouseholdSize }},
		{"age", TypeInt, func(r *model.EnrichedRecord) any { return r.Age }},
		{"industry_code", TypeText, func(r *model.EnrichedRecord) any { return nullIfEmpty(r.IndustryCode) }},
		{"total_income", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.TotalIncome) }},
		{"wage_income", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.PersonRecord.WageIncome) }},
		{"household_income", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.PersonRecord.HouseholdIncome) }},
		{"tenure", TypeInt, func(r *model.EnrichedRecord) any { return r.Tenure }},
		{"rent_paid", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.RentPaid) }},
		{"employment_status", TypeInt, func(r *model.EnrichedRecord) any { return r.EmploymentStatus }},
		{"building_type", TypeInt, func(r *model.EnrichedRecord) any { return r.BuildingType }},
		{"mobility", TypeInt, func(r *model.EnrichedRecord) any { return r.Mobility }},
		{"population_type", TypeInt, func(r *model.EnrichedRecord) any { return r.PopulationType }},
		{"weight", TypeFloat, func(r *model.EnrichedRecord) any { return r.Weight }},

		{"county", TypeText, func(r *model.EnrichedRecord) any { return nullString(r.Joined.County) }},
		{"allocation_fraction", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.Joined.AllocationFraction) }},
		{"threshold_household_size", TypeInt, func(r *model.EnrichedRecord) any {
			if r.Joined.ThresholdSize == 0 {
				return nil
			}
			return r.Joined.ThresholdSize
		}},
		{"income_threshold", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.Joined.IncomeThreshold) }},
		{"industry_group", TypeText, func(r *model.EnrichedRecord) any { return nullString(r.Joined.IndustryGroup) }},
		{"job_loss_pct", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.Joined.JobLossPct) }},
		{"renter_job_loss_pct", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.Joined.RenterJobLossPct) }},

		{"wage_income_clean", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.Derived.WageIncome) }},
		{"household_income_clean", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.Derived.HouseholdIncome) }},
		{"renter", TypeBool, func(r *model.EnrichedRecord) any { return r.Derived.Renter }},
		{"gross_rent", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.Derived.GrossRent) }},
		{"rent_burden", TypeFloat, func(r *model.EnrichedRecord) any { return nullFloat(r.Derived.RentBurden) }},
		{"burdened", TypeBool, func(r *model.EnrichedRecord) any { return r.Derived.Burdened }},
		{"severely_burdened", TypeBool, func(r *model.EnrichedRecord) any { return r.Derived.SeverelyBurdened }},
		{"moderately_burdened", TypeBool, func(r *model.EnrichedRecord) any { return r.Derived.ModeratelyBurdened }},
		{"target_burden", TypeFloat, func(r *model.EnrichedRecord) any { return r.Derived.TargetBurden }},
		{"income_eligible", TypeBool, func(r *model.EnrichedRecord) any { return nullBool(r.Derived.IncomeEligible) }},
		{"mover_status", TypeText, func(r *model.EnrichedRecord) any { return r.Derived.MoverStatus }},
		{"recent_mover", TypeBool, func(r *model.EnrichedRecord) any { return r.Derived.RecentMover }},
		{"building_size", TypeText, func(r *model.EnrichedRecord) any { return r.Derived.BuildingSize }},

		{"quarterly_wage", TypeFloat, func(r *model.EnrichedRecord) any { return r.Benefit.QuarterlyWage }},
		{"benefit_tier", TypeText, func(r *model.EnrichedRecord) any { return nullIfEmpty(r.Benefit.Tier) }},
		{"weekly_benefit", TypeFloat, func(r *model.EnrichedRecord) any { return r.Benefit.Weekly }},
		{"monthly_benefit", TypeFloat, func(r *model.EnrichedRecord) any { return r.Benefit.Monthly }},
	}

	for _, name := range enhancements {
		cols = append(cols, Column{name + "_monthly", TypeFloat, func(r *model.EnrichedRecord) any {
			return r.Benefit.Enhancement(name)
		}})
	}

	return append(cols, Column{"household_wage_income", TypeFloat, func(r *model.EnrichedRecord) any {
		return r.HouseholdWageIncome
	}})
}

// ColumnNames returns the names of cols in order.
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// householdColumns is the household aggregate layout.
var householdColumns = []string{"household_id", "members", "wage_income"}

func householdValues(h model.HouseholdAggregate) []any {
	return []any{h.HouseholdID, h.Members, h.Total}
}

// formatCell renders a column value for text output. Null is empty.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
